package apimodel

// PQRType identifies a petition, complaint, claim, suggestion or report.
type PQRType string

const (
	PQRPeticion   PQRType = "PETICION"
	PQRQueja      PQRType = "QUEJA"
	PQRReclamo    PQRType = "RECLAMO"
	PQRSugerencia PQRType = "SUGERENCIA"
	PQRDenuncia   PQRType = "DENUNCIA"
)

var pqrTypeLabels = map[PQRType]string{
	PQRPeticion:   "Petición",
	PQRQueja:      "Queja",
	PQRReclamo:    "Reclamo",
	PQRSugerencia: "Sugerencia",
	PQRDenuncia:   "Denuncia",
}

// PQRTypeLabel maps a form value to the label the API expects. Unknown
// values pass through unchanged.
func PQRTypeLabel(value string) string {
	if label, ok := pqrTypeLabels[PQRType(value)]; ok {
		return label
	}
	return value
}

// PQRCreate is the body of the PQR creation endpoint.
type PQRCreate struct {
	Type        string `json:"tipo"`
	Subject     string `json:"asunto"`
	Description string `json:"descripcion"`
	CustomerID  int    `json:"cliente_id"`
}

// PQR is a filed request as returned by the API.
type PQR struct {
	ID           int     `json:"id"`
	Type         string  `json:"tipo"`
	Subject      string  `json:"asunto"`
	Description  string  `json:"descripcion"`
	CustomerID   int     `json:"cliente_id"`
	CreatedOn    string  `json:"fecha_creacion"`
	RespondedOn  *string `json:"fecha_respuesta,omitempty"`
	Status       string  `json:"estado"`
	FilingNumber string  `json:"radicado"`
}
