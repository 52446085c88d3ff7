package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/avolkov/custody-console/internal/domain"
)

func transactionsPath(custodianID string) string {
	return custodianRoot + custodianID + "/transactions"
}

// TransactionFilter narrows a transaction listing. Zero-valued predicates are
// omitted; set predicates are ANDed together.
type TransactionFilter struct {
	PortfolioID string
	AccountID   string
	Type        domain.TransactionType
	FromDate    string
	ToDate      string
	SecurityID  string
}

func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	if f.PortfolioID != "" {
		q.Set("portfolio_id", f.PortfolioID)
	}
	if f.AccountID != "" {
		q.Set("account_id", f.AccountID)
	}
	if f.Type != "" {
		q.Set("type", f.Type.String())
	}
	if f.FromDate != "" {
		q.Set("from_date", f.FromDate)
	}
	if f.ToDate != "" {
		q.Set("to_date", f.ToDate)
	}
	if f.SecurityID != "" {
		q.Set("isin", f.SecurityID)
	}
	return q
}

// ListTransactions returns transactions for one custodian, narrowed by the
// filter.
func (c *Client) ListTransactions(ctx context.Context, custodianID string, filter TransactionFilter) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := c.do(ctx, http.MethodGet, transactionsPath(custodianID), filter.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTransaction fetches one transaction by server-assigned id.
func (c *Client) GetTransaction(ctx context.Context, custodianID, id string) (domain.Transaction, error) {
	var out domain.Transaction
	if err := c.do(ctx, http.MethodGet, transactionsPath(custodianID)+"/"+id, nil, nil, &out); err != nil {
		return domain.Transaction{}, err
	}
	return out, nil
}

// CreateTransaction records a transaction. Transactions are append-only:
// there is no update or delete.
func (c *Client) CreateTransaction(ctx context.Context, custodianID string, req domain.CreateTransactionRequest) (domain.Transaction, error) {
	var out domain.Transaction
	if err := c.do(ctx, http.MethodPost, transactionsPath(custodianID), nil, req, &out); err != nil {
		return domain.Transaction{}, err
	}
	return out, nil
}
