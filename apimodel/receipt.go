package apimodel

import "github.com/cunservicios/portal/internal/utils"

// ReceiptComponents are the public-lighting cost components (CAP) of a receipt.
type ReceiptComponents struct {
	CSEE float64 `json:"csee"`
	CINV float64 `json:"cinv"`
	CAOM float64 `json:"caom"`
	COTR float64 `json:"cotr"`
}

// Total is the sum of all components.
func (c ReceiptComponents) Total() float64 {
	return c.CSEE + c.CINV + c.CAOM + c.COTR
}

// ReceiptMetadata describes the billing entity printed on a receipt.
type ReceiptMetadata struct {
	BillingEntity string `json:"entidad_facturadora"`
	NIT           string `json:"nit,omitempty"`
	Address       string `json:"direccion,omitempty"`
	Contact       string `json:"contacto,omitempty"`
	DataSource    string `json:"fuente_datos"`
	Observations  string `json:"observaciones,omitempty"`
}

// ReceiptTemplate is both the template served by the API and the body used
// to create a simple receipt from it.
type ReceiptTemplate struct {
	Municipality string            `json:"municipio"`
	Period       string            `json:"periodo"`
	Methodology  string            `json:"metodologia"`
	Components   ReceiptComponents `json:"componentes"`
	Metadata     ReceiptMetadata   `json:"metadata"`
}

// DefaultReceiptTemplate returns the form defaults used before the server
// template is loaded.
func DefaultReceiptTemplate(municipality, contact string) ReceiptTemplate {
	return ReceiptTemplate{
		Municipality: municipality,
		Period:       "2026-01",
		Methodology:  "CREG 101 013 de 2022",
		Metadata: ReceiptMetadata{
			BillingEntity: "Cunservicios",
			Contact:       contact,
			DataSource:    "plantilla_manual_v1",
		},
	}
}

// Merge overlays the server template on t, keeping the values the user
// already filled in for municipality, contact, billing entity and data source.
func (t ReceiptTemplate) Merge(server ReceiptTemplate) ReceiptTemplate {
	merged := server
	if t.Municipality != "" {
		merged.Municipality = t.Municipality
	}
	merged.Metadata.Contact = utils.FirstNonEmpty(t.Metadata.Contact, server.Metadata.Contact)
	merged.Metadata.BillingEntity = utils.FirstNonEmpty(t.Metadata.BillingEntity, server.Metadata.BillingEntity)
	merged.Metadata.DataSource = utils.FirstNonEmpty(t.Metadata.DataSource, server.Metadata.DataSource)
	return merged
}

// SimpleReceipt is a generated receipt.
type SimpleReceipt struct {
	Number          string            `json:"numero_recibo"`
	TenantID        string            `json:"tenant_id"`
	Methodology     string            `json:"metodologia"`
	Municipality    string            `json:"municipio"`
	Period          string            `json:"periodo"`
	BillingEntity   string            `json:"entidad_facturadora"`
	DataSource      string            `json:"fuente_datos"`
	Components      ReceiptComponents `json:"componentes"`
	Total           float64           `json:"total"`
	TextContent     string            `json:"contenido_texto"`
	MarkdownContent string            `json:"contenido_markdown"`
}
