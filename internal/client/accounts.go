package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/avolkov/custody-console/internal/domain"
)

func accountsPath(custodianID string) string {
	return custodianRoot + custodianID + "/accounts"
}

// AccountFilter narrows an account listing. Zero-valued predicates are
// omitted; set predicates are ANDed together.
type AccountFilter struct {
	PortfolioID string
}

func (f AccountFilter) query() url.Values {
	q := url.Values{}
	if f.PortfolioID != "" {
		q.Set("portfolio_id", f.PortfolioID)
	}
	return q
}

// ListAccounts returns the accounts of one custodian, optionally narrowed to
// a portfolio.
func (c *Client) ListAccounts(ctx context.Context, custodianID string, filter AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	if err := c.do(ctx, http.MethodGet, accountsPath(custodianID), filter.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAccount fetches one account by server-assigned id.
func (c *Client) GetAccount(ctx context.Context, custodianID, id string) (domain.Account, error) {
	var out domain.Account
	if err := c.do(ctx, http.MethodGet, accountsPath(custodianID)+"/"+id, nil, nil, &out); err != nil {
		return domain.Account{}, err
	}
	return out, nil
}

// CreateAccount creates an account under the custodian named in the request.
func (c *Client) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (domain.Account, error) {
	var out domain.Account
	if err := c.do(ctx, http.MethodPost, accountsPath(req.CustodianID), nil, req, &out); err != nil {
		return domain.Account{}, err
	}
	return out, nil
}

// UpdateAccount applies a partial update.
func (c *Client) UpdateAccount(ctx context.Context, custodianID, id string, req domain.UpdateAccountRequest) (domain.Account, error) {
	var out domain.Account
	if err := c.do(ctx, http.MethodPut, accountsPath(custodianID)+"/"+id, nil, req, &out); err != nil {
		return domain.Account{}, err
	}
	return out, nil
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, custodianID, id string) error {
	return c.do(ctx, http.MethodDelete, accountsPath(custodianID)+"/"+id, nil, nil, nil)
}
