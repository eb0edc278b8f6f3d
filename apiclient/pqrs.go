package apiclient

import (
	"context"
	"net/url"

	"github.com/cunservicios/portal/apimodel"
)

const pqrsPath = "/pqrs"

func (c *Client) ListPQRs(ctx context.Context) ([]apimodel.PQR, error) {
	var pqrs []apimodel.PQR
	if err := c.get(ctx, pqrsPath, &pqrs); err != nil {
		return nil, err
	}
	return pqrs, nil
}

// GetPQR looks a request up by its filing number (radicado).
func (c *Client) GetPQR(ctx context.Context, filingNumber string) (*apimodel.PQR, error) {
	var pqr apimodel.PQR
	if err := c.get(ctx, pqrsPath+"/"+url.PathEscape(filingNumber), &pqr); err != nil {
		return nil, err
	}
	return &pqr, nil
}

// CreatePQR files a new request. Form values such as "QUEJA" are translated
// to the labels the API stores.
func (c *Client) CreatePQR(ctx context.Context, in apimodel.PQRCreate) (*apimodel.PQR, error) {
	in.Type = apimodel.PQRTypeLabel(in.Type)
	var pqr apimodel.PQR
	if err := c.post(ctx, pqrsPath, in, &pqr); err != nil {
		return nil, err
	}
	return &pqr, nil
}
