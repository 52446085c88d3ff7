package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/avolkov/custody-console/internal/domain"
)

func positionsPath(custodianID string) string {
	return custodianRoot + custodianID + "/positions"
}

// PositionFilter narrows a position listing. Zero-valued predicates are
// omitted; set predicates are ANDed together.
type PositionFilter struct {
	PortfolioID string
	AccountID   string
	SecurityID  string
}

func (f PositionFilter) query() url.Values {
	q := url.Values{}
	if f.PortfolioID != "" {
		q.Set("portfolio_id", f.PortfolioID)
	}
	if f.AccountID != "" {
		q.Set("account_id", f.AccountID)
	}
	if f.SecurityID != "" {
		q.Set("isin", f.SecurityID)
	}
	return q
}

// ListPositions returns position snapshots for one custodian, narrowed by the
// filter.
func (c *Client) ListPositions(ctx context.Context, custodianID string, filter PositionFilter) ([]domain.Position, error) {
	var out []domain.Position
	if err := c.do(ctx, http.MethodGet, positionsPath(custodianID), filter.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPosition fetches one position snapshot by server-assigned id.
func (c *Client) GetPosition(ctx context.Context, custodianID, id string) (domain.Position, error) {
	var out domain.Position
	if err := c.do(ctx, http.MethodGet, positionsPath(custodianID)+"/"+id, nil, nil, &out); err != nil {
		return domain.Position{}, err
	}
	return out, nil
}

// CreatePosition records a position snapshot. Positions are append-only:
// there is no update or delete.
func (c *Client) CreatePosition(ctx context.Context, custodianID string, req domain.CreatePositionRequest) (domain.Position, error) {
	var out domain.Position
	if err := c.do(ctx, http.MethodPost, positionsPath(custodianID), nil, req, &out); err != nil {
		return domain.Position{}, err
	}
	return out, nil
}
