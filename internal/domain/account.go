package domain

import "github.com/shopspring/decimal"

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeSecurities AccountType = "SECURITIES"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeMargin     AccountType = "MARGIN"
	AccountTypeCredit     AccountType = "CREDIT"
)

// String returns the string representation.
func (a AccountType) String() string {
	return string(a)
}

// IsValid checks if the AccountType value is valid.
func (a AccountType) IsValid() bool {
	switch a {
	case AccountTypeSecurities, AccountTypeCash, AccountTypeMargin, AccountTypeCredit:
		return true
	}
	return false
}

// AccountTypes lists the valid account types in display order.
func AccountTypes() []AccountType {
	return []AccountType{AccountTypeSecurities, AccountTypeCash, AccountTypeMargin, AccountTypeCredit}
}

// Account is a custody account scoped to a custodian and portfolio. The flat
// schema of early screen generations (no custodian/portfolio scope) is
// superseded; this is the only shape the client understands.
type Account struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	CustodianID string          `json:"custodian_id"`
	PortfolioID string          `json:"portfolio_id,omitempty"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"account_type"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	CustodianID string           `json:"custodian_id"`
	PortfolioID string           `json:"portfolio_id,omitempty"`
	AccountID   string           `json:"account_id"`
	Name        string           `json:"name"`
	AccountType AccountType      `json:"account_type"`
	Currency    string           `json:"currency"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
}

// UpdateAccountRequest carries a partial account update.
type UpdateAccountRequest struct {
	Name        string           `json:"name,omitempty"`
	AccountType AccountType      `json:"account_type,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
}
