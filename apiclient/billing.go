package apiclient

import (
	"context"
	"net/url"

	"github.com/cunservicios/portal/apimodel"
)

const invoicesPath = "/facturas"

// ListInvoices returns the invoices of the active tenant.
func (c *Client) ListInvoices(ctx context.Context) ([]apimodel.InvoiceResponse, error) {
	var invoices []apimodel.InvoiceResponse
	if err := c.get(ctx, invoicesPath, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetInvoice looks an invoice up by its number.
func (c *Client) GetInvoice(ctx context.Context, number string) (*apimodel.InvoiceResponse, error) {
	var invoice apimodel.InvoiceResponse
	if err := c.get(ctx, invoicesPath+"/"+url.PathEscape(number), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// PayInvoice registers a payment. The backend's acknowledgement is returned
// as-is.
func (c *Client) PayInvoice(ctx context.Context, number string, payment apimodel.PaymentRequest) (map[string]any, error) {
	ack := map[string]any{}
	if err := c.post(ctx, invoicesPath+"/"+url.PathEscape(number)+"/pagar", payment, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}
