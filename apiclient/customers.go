package apiclient

import (
	"context"
	"net/url"

	"github.com/cunservicios/portal/apimodel"
)

const customersPath = "/clientes"

// ListCustomers returns the customers of the active tenant.
func (c *Client) ListCustomers(ctx context.Context) ([]apimodel.Customer, error) {
	var customers []apimodel.Customer
	if err := c.get(ctx, customersPath, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer looks a customer up by account number.
func (c *Client) GetCustomer(ctx context.Context, accountNumber string) (*apimodel.Customer, error) {
	var customer apimodel.Customer
	if err := c.get(ctx, customersPath+"/"+url.PathEscape(accountNumber), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
