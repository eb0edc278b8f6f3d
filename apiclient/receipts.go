package apiclient

import (
	"context"

	"github.com/cunservicios/portal/apimodel"
)

const (
	receiptTemplatePath = "/alumbrado/recibo/plantilla"
	simpleReceiptPath   = "/alumbrado/recibo/simple/desde-plantilla"
)

// GetReceiptTemplate fetches the public-lighting receipt template of the
// active tenant.
func (c *Client) GetReceiptTemplate(ctx context.Context) (*apimodel.ReceiptTemplate, error) {
	var tmpl apimodel.ReceiptTemplate
	if err := c.get(ctx, receiptTemplatePath, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// CreateSimpleReceipt generates a receipt from a filled template.
func (c *Client) CreateSimpleReceipt(ctx context.Context, tmpl apimodel.ReceiptTemplate) (*apimodel.SimpleReceipt, error) {
	var receipt apimodel.SimpleReceipt
	if err := c.post(ctx, simpleReceiptPath, tmpl, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
