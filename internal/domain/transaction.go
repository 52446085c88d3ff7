package domain

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of ledger event types.
type TransactionType string

const (
	TransactionTypeBuy      TransactionType = "BUY"
	TransactionTypeSell     TransactionType = "SELL"
	TransactionTypeDividend TransactionType = "DIVIDEND"
	TransactionTypeFee      TransactionType = "FEE"
)

// String returns the string representation.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the TransactionType value is valid.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeDividend, TransactionTypeFee:
		return true
	}
	return false
}

// TransactionTypes lists the valid transaction types in display order.
func TransactionTypes() []TransactionType {
	return []TransactionType{TransactionTypeBuy, TransactionTypeSell, TransactionTypeDividend, TransactionTypeFee}
}

// ParseTransactionType converts a raw string to a TransactionType,
// case-insensitively.
func ParseTransactionType(raw string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", errors.Errorf("unknown transaction type %q", raw)
	}
	return t, nil
}

// Transaction is an append-only ledger event. Amount is signed: debits
// negative, credits positive.
type Transaction struct {
	ID             string           `json:"id"`
	TransactionID  string           `json:"transaction_id"`
	CustodianID    string           `json:"custodian_id"`
	PortfolioID    string           `json:"portfolio_id"`
	AccountID      string           `json:"account_id"`
	Type           TransactionType  `json:"transaction_type"`
	SecurityID     string           `json:"security_id,omitempty"`
	SecurityType   SecurityType     `json:"security_type,omitempty"`
	Name           string           `json:"name,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	TradeDate      string           `json:"trade_date"`
	SettlementDate string           `json:"settlement_date,omitempty"`
	Description    string           `json:"description,omitempty"`
	CreatedAt      string           `json:"created_at,omitempty"`
	UpdatedAt      string           `json:"updated_at,omitempty"`
}

// UnmarshalJSON folds legacy field names (type, isin, date, accountId) into
// the canonical shape. Canonical fields win when both are present.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		LegacyType      TransactionType `json:"type"`
		LegacyISIN      string          `json:"isin"`
		LegacyDate      string          `json:"date"`
		LegacyAccountID string          `json:"accountId"`
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if t.Type == "" {
		t.Type = aux.LegacyType
	}
	if t.SecurityID == "" {
		t.SecurityID = aux.LegacyISIN
	}
	if t.TradeDate == "" {
		t.TradeDate = aux.LegacyDate
	}
	if t.AccountID == "" {
		t.AccountID = aux.LegacyAccountID
	}
	return nil
}

// CreateTransactionRequest is the payload for recording a transaction.
// Transactions are append-only in this client.
type CreateTransactionRequest struct {
	PortfolioID    string           `json:"portfolio_id"`
	AccountID      string           `json:"account_id"`
	TransactionID  string           `json:"transaction_id"`
	Type           TransactionType  `json:"transaction_type"`
	SecurityID     string           `json:"security_id,omitempty"`
	SecurityType   SecurityType     `json:"security_type,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	TradeDate      string           `json:"trade_date"`
	SettlementDate string           `json:"settlement_date,omitempty"`
	Description    string           `json:"description,omitempty"`
}
