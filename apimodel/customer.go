package apimodel

// Customer is a utility customer ("cliente") with its invoices.
type Customer struct {
	ID            int               `json:"id"`
	Name          string            `json:"nombre"`
	Address       string            `json:"direccion"`
	Phone         string            `json:"telefono"`
	Email         string            `json:"correo"`
	AccountNumber string            `json:"numero_cuenta"`
	Stratum       int               `json:"estrato"`
	Invoices      []InvoiceResponse `json:"facturas,omitempty"`
}
