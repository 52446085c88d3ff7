package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SecurityType classifies the instrument a position or transaction references.
type SecurityType string

const (
	SecurityTypeEquity SecurityType = "EQUITY"
	SecurityTypeBond   SecurityType = "BOND"
	SecurityTypeFund   SecurityType = "FUND"
	SecurityTypeETF    SecurityType = "ETF"
)

// String returns the string representation.
func (s SecurityType) String() string {
	return string(s)
}

// IsValid checks if the SecurityType value is valid.
func (s SecurityType) IsValid() bool {
	switch s {
	case SecurityTypeEquity, SecurityTypeBond, SecurityTypeFund, SecurityTypeETF:
		return true
	}
	return false
}

// SecurityTypes lists the valid security types in display order.
func SecurityTypes() []SecurityType {
	return []SecurityType{SecurityTypeEquity, SecurityTypeBond, SecurityTypeFund, SecurityTypeETF}
}

// Position is a point-in-time holding snapshot, not a ledger event. Multiple
// positions for the same security are distinct records keyed by AsOfDate.
// Unrealized P&L is server-computed and passed through.
type Position struct {
	ID           string           `json:"id"`
	PositionID   string           `json:"position_id"`
	CustodianID  string           `json:"custodian_id"`
	PortfolioID  string           `json:"portfolio_id"`
	AccountID    string           `json:"account_id"`
	SecurityID   string           `json:"security_id"`
	SecurityType SecurityType     `json:"security_type"`
	Name         string           `json:"name,omitempty"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MarketValue  decimal.Decimal  `json:"market_value"`
	Currency     string           `json:"currency"`
	CostBasis    *decimal.Decimal `json:"cost_basis,omitempty"`
	UnrealizedPL *decimal.Decimal `json:"unrealized_pnl,omitempty"`
	AsOfDate     string           `json:"as_of_date,omitempty"`
	CreatedAt    string           `json:"created_at,omitempty"`
	UpdatedAt    string           `json:"updated_at,omitempty"`
}

// UnmarshalJSON folds the flat mock-era field names (isin, marketValue,
// profitLoss, accountId) into the canonical shape. Canonical fields win when
// both are present.
func (p *Position) UnmarshalJSON(data []byte) error {
	type alias Position
	aux := struct {
		*alias
		LegacyISIN        string           `json:"isin"`
		LegacyMarketValue *decimal.Decimal `json:"marketValue"`
		LegacyProfitLoss  *decimal.Decimal `json:"profitLoss"`
		LegacyAccountID   string           `json:"accountId"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if p.SecurityID == "" {
		p.SecurityID = aux.LegacyISIN
	}
	if p.MarketValue.IsZero() && aux.LegacyMarketValue != nil {
		p.MarketValue = *aux.LegacyMarketValue
	}
	if p.UnrealizedPL == nil && aux.LegacyProfitLoss != nil {
		p.UnrealizedPL = aux.LegacyProfitLoss
	}
	if p.AccountID == "" {
		p.AccountID = aux.LegacyAccountID
	}
	return nil
}

// CreatePositionRequest is the payload for recording a position snapshot.
// Positions are append-only in this client.
type CreatePositionRequest struct {
	PortfolioID  string           `json:"portfolio_id"`
	AccountID    string           `json:"account_id"`
	PositionID   string           `json:"position_id"`
	SecurityID   string           `json:"security_id"`
	SecurityType SecurityType     `json:"security_type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MarketValue  decimal.Decimal  `json:"market_value"`
	Currency     string           `json:"currency"`
	CostBasis    *decimal.Decimal `json:"cost_basis,omitempty"`
	AsOfDate     string           `json:"as_of_date,omitempty"`
}
