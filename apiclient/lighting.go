package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cunservicios/portal/apimodel"
)

const (
	lightingParametersPath  = "/alumbrado/parametros"
	lightingCalculationPath = "/alumbrado/calcular"
	calculatedReceiptPath   = "/alumbrado/recibo/simple/desde-calculo"
)

// GetLightingParameters returns the methodology constants for year.
func (c *Client) GetLightingParameters(ctx context.Context, year int) (*apimodel.LightingParameters, error) {
	if year < apimodel.MinLightingYear {
		return nil, fmt.Errorf("year %d: %w", year, ErrInvalidCalculation)
	}
	q := url.Values{"anno": {strconv.Itoa(year)}}

	var params apimodel.LightingParameters
	if err := c.get(ctx, lightingParametersPath+"?"+q.Encode(), &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// CalculateLighting runs the public-lighting cost calculation for the
// active tenant. The input is validated before it is sent.
func (c *Client) CalculateLighting(ctx context.Context, in apimodel.LightingInput) (*apimodel.LightingResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var result apimodel.LightingResult
	if err := c.post(ctx, lightingCalculationPath, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateReceiptFromCalculation calculates costs and renders a simple receipt
// from them in one request.
func (c *Client) CreateReceiptFromCalculation(ctx context.Context, in apimodel.LightingInput, metadata apimodel.ReceiptMetadata) (*apimodel.SimpleReceipt, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	body := apimodel.ReceiptFromCalculation{Calculation: in, Metadata: metadata}

	var receipt apimodel.SimpleReceipt
	if err := c.post(ctx, calculatedReceiptPath, body, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
