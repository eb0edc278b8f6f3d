package apimodel

import (
	"sort"
	"time"

	"github.com/cunservicios/portal/internal/utils"
)

// InvoiceConcept is one billed line of an invoice.
type InvoiceConcept struct {
	ID      int     `json:"id"`
	Concept string  `json:"concepto"`
	Amount  float64 `json:"valor"`
}

// InvoiceResponse is an invoice ("factura") as served by the API.
type InvoiceResponse struct {
	ID           int              `json:"id"`
	TenantID     string           `json:"tenant_id"`
	Number       string           `json:"numero_factura"`
	IssueDate    string           `json:"fecha_emision"`
	DueDate      string           `json:"fecha_vencimiento"`
	Total        float64          `json:"valor_total"`
	Status       string           `json:"estado"`
	CustomerID   int              `json:"cliente_id"`
	Observations *string          `json:"observaciones,omitempty"`
	Concepts     []InvoiceConcept `json:"conceptos,omitempty"`
}

// PaymentRequest is the body of the invoice payment endpoint.
type PaymentRequest struct {
	Method    string  `json:"metodo_pago"`
	Amount    float64 `json:"valor"`
	Reference string  `json:"referencia,omitempty"`
}

// Invoice is the client-side view of an invoice.
type Invoice struct {
	ID           int
	TenantID     string
	Number       string
	IssuedAt     time.Time
	DueAt        time.Time
	Total        float64
	Status       string
	CustomerID   int
	Observations string
	Concepts     []InvoiceConcept
}

// MapInvoice converts the API representation into an Invoice. Missing
// observations become "" and missing concepts an empty slice.
func MapInvoice(in InvoiceResponse) Invoice {
	concepts := make([]InvoiceConcept, 0, len(in.Concepts))
	concepts = append(concepts, in.Concepts...)

	return Invoice{
		ID:           in.ID,
		TenantID:     in.TenantID,
		Number:       in.Number,
		IssuedAt:     parseDate(in.IssueDate),
		DueAt:        parseDate(in.DueDate),
		Total:        in.Total,
		Status:       in.Status,
		CustomerID:   in.CustomerID,
		Observations: utils.Value(in.Observations),
		Concepts:     concepts,
	}
}

// LatestInvoice returns the invoice with the most recent issue date. Ties
// keep input order. ok is false for an empty list.
func LatestInvoice(invoices []InvoiceResponse) (latest InvoiceResponse, ok bool) {
	if len(invoices) == 0 {
		return InvoiceResponse{}, false
	}
	sorted := append([]InvoiceResponse(nil), invoices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseDate(sorted[i].IssueDate).After(parseDate(sorted[j].IssueDate))
	})
	return sorted[0], true
}

// parseDate accepts ISO dates and RFC 3339 timestamps; anything else is the zero time.
func parseDate(value string) time.Time {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
