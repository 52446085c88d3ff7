package client

import (
	"context"
	"net/http"

	"github.com/avolkov/custody-console/internal/domain"
)

const custodianRoot = "/v1/custodian/"

// ListCustodians returns all custodians in server-defined order.
func (c *Client) ListCustodians(ctx context.Context) ([]domain.Custodian, error) {
	var out []domain.Custodian
	if err := c.do(ctx, http.MethodGet, custodianRoot, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustodian fetches one custodian by server-assigned id.
func (c *Client) GetCustodian(ctx context.Context, id string) (domain.Custodian, error) {
	var out domain.Custodian
	if err := c.do(ctx, http.MethodGet, custodianRoot+id, nil, nil, &out); err != nil {
		return domain.Custodian{}, err
	}
	return out, nil
}

// CreateCustodian creates a custodian and returns it with server-assigned
// fields populated.
func (c *Client) CreateCustodian(ctx context.Context, req domain.CreateCustodianRequest) (domain.Custodian, error) {
	var out domain.Custodian
	if err := c.do(ctx, http.MethodPost, custodianRoot, nil, req, &out); err != nil {
		return domain.Custodian{}, err
	}
	return out, nil
}

// UpdateCustodian applies a partial update.
func (c *Client) UpdateCustodian(ctx context.Context, id string, req domain.UpdateCustodianRequest) (domain.Custodian, error) {
	var out domain.Custodian
	if err := c.do(ctx, http.MethodPut, custodianRoot+id, nil, req, &out); err != nil {
		return domain.Custodian{}, err
	}
	return out, nil
}

// DeleteCustodian removes a custodian.
func (c *Client) DeleteCustodian(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, custodianRoot+id, nil, nil, nil)
}
