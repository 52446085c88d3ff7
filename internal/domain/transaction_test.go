package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    TransactionType
		wantErr bool
	}{
		{name: "canonical", raw: "BUY", want: TransactionTypeBuy},
		{name: "lowercase", raw: "sell", want: TransactionTypeSell},
		{name: "padded", raw: " dividend ", want: TransactionTypeDividend},
		{name: "fee", raw: "FEE", want: TransactionTypeFee},
		{name: "unknown", raw: "TRANSFER", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionType(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionUnmarshalLegacyFields(t *testing.T) {
	raw := `{
		"id": "tx-1",
		"type": "BUY",
		"isin": "US0378331005",
		"date": "2024-03-01",
		"accountId": "acc-1",
		"amount": "-1500.25",
		"currency": "USD"
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	assert.Equal(t, TransactionTypeBuy, tx.Type)
	assert.Equal(t, "US0378331005", tx.SecurityID)
	assert.Equal(t, "2024-03-01", tx.TradeDate)
	assert.Equal(t, "acc-1", tx.AccountID)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-1500.25")))
}

func TestTransactionUnmarshalCanonicalWins(t *testing.T) {
	raw := `{
		"id": "tx-2",
		"transaction_type": "SELL",
		"type": "BUY",
		"security_id": "DE0005557508",
		"isin": "US0378331005",
		"trade_date": "2024-04-02",
		"date": "2020-01-01",
		"account_id": "acc-2",
		"accountId": "acc-legacy",
		"amount": 10,
		"currency": "EUR"
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	assert.Equal(t, TransactionTypeSell, tx.Type)
	assert.Equal(t, "DE0005557508", tx.SecurityID)
	assert.Equal(t, "2024-04-02", tx.TradeDate)
	assert.Equal(t, "acc-2", tx.AccountID)
}

func TestPositionUnmarshalLegacyFields(t *testing.T) {
	raw := `{
		"id": "pos-1",
		"isin": "US0378331005",
		"accountId": "acc-1",
		"quantity": 100,
		"marketValue": "18000.50",
		"profitLoss": "250.75",
		"currency": "USD"
	}`

	var p Position
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "US0378331005", p.SecurityID)
	assert.Equal(t, "acc-1", p.AccountID)
	assert.True(t, p.MarketValue.Equal(decimal.RequireFromString("18000.50")))
	require.NotNil(t, p.UnrealizedPL)
	assert.True(t, p.UnrealizedPL.Equal(decimal.RequireFromString("250.75")))
}

func TestAccountTypeIsValid(t *testing.T) {
	for _, at := range AccountTypes() {
		assert.True(t, at.IsValid(), at.String())
	}
	assert.False(t, AccountType("CHECKING").IsValid())
}

func TestSecurityTypeIsValid(t *testing.T) {
	for _, st := range SecurityTypes() {
		assert.True(t, st.IsValid(), st.String())
	}
	assert.False(t, SecurityType("CRYPTO").IsValid())
}
