package apimodel

// CurrentUser is the authenticated profile returned by the current-user endpoint.
type CurrentUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// PasswordChange is the body of the password-change endpoint.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MinPasswordLength is the shortest new password the backend accepts.
const MinPasswordLength = 8
