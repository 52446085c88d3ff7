package domain

// Portfolio groups accounts under a custodian. PortfolioID is the
// human-assigned identifier, unique within a custodian; ID is server-assigned.
type Portfolio struct {
	ID          string `json:"id"`
	PortfolioID string `json:"portfolio_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency"`
	CustodianID string `json:"custodian_id"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// CreatePortfolioRequest is the payload for creating a portfolio.
type CreatePortfolioRequest struct {
	PortfolioID string `json:"portfolio_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency"`
	CustodianID string `json:"custodian_id"`
}

// UpdatePortfolioRequest carries a partial portfolio update.
type UpdatePortfolioRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency,omitempty"`
}
