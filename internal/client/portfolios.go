package client

import (
	"context"
	"net/http"

	"github.com/avolkov/custody-console/internal/domain"
)

func portfoliosPath(custodianID string) string {
	return custodianRoot + custodianID + "/portfolios"
}

// ListPortfolios returns the portfolios of one custodian.
func (c *Client) ListPortfolios(ctx context.Context, custodianID string) ([]domain.Portfolio, error) {
	var out []domain.Portfolio
	if err := c.do(ctx, http.MethodGet, portfoliosPath(custodianID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPortfolio fetches one portfolio by server-assigned id.
func (c *Client) GetPortfolio(ctx context.Context, custodianID, id string) (domain.Portfolio, error) {
	var out domain.Portfolio
	if err := c.do(ctx, http.MethodGet, portfoliosPath(custodianID)+"/"+id, nil, nil, &out); err != nil {
		return domain.Portfolio{}, err
	}
	return out, nil
}

// CreatePortfolio creates a portfolio under the custodian named in the
// request.
func (c *Client) CreatePortfolio(ctx context.Context, req domain.CreatePortfolioRequest) (domain.Portfolio, error) {
	var out domain.Portfolio
	if err := c.do(ctx, http.MethodPost, portfoliosPath(req.CustodianID), nil, req, &out); err != nil {
		return domain.Portfolio{}, err
	}
	return out, nil
}

// UpdatePortfolio applies a partial update.
func (c *Client) UpdatePortfolio(ctx context.Context, custodianID, id string, req domain.UpdatePortfolioRequest) (domain.Portfolio, error) {
	var out domain.Portfolio
	if err := c.do(ctx, http.MethodPut, portfoliosPath(custodianID)+"/"+id, nil, req, &out); err != nil {
		return domain.Portfolio{}, err
	}
	return out, nil
}

// DeletePortfolio removes a portfolio.
func (c *Client) DeletePortfolio(ctx context.Context, custodianID, id string) error {
	return c.do(ctx, http.MethodDelete, portfoliosPath(custodianID)+"/"+id, nil, nil, nil)
}
