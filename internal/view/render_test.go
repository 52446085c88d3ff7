package view

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avolkov/custody-console/internal/domain"
	"github.com/avolkov/custody-console/internal/notify"
	"github.com/avolkov/custody-console/internal/services/drilldown"
	"github.com/avolkov/custody-console/pkg/format"
)

func TestRenderCustodiansView(t *testing.T) {
	snap := drilldown.Snapshot{
		View: drilldown.ViewCustodians,
		Custodians: drilldown.Panel[domain.Custodian]{
			Status: drilldown.StatusReady,
			Items: []domain.Custodian{
				{ID: "1", Code: "UBS", Name: "UBS Zurich", CreatedAt: "2024-01-15T09:00:00Z"},
			},
		},
	}

	out := Render(snap, nil, nil)
	assert.Contains(t, out, "CUSTODY CONSOLE")
	assert.Contains(t, out, "Custodians")
	assert.Contains(t, out, "UBS Zurich")
	assert.Contains(t, out, "Jan 15, 2024")
	assert.NotContains(t, out, "refreshing...")
}

func TestRenderPositionsViewPanelsAreIndependent(t *testing.T) {
	c := domain.Custodian{ID: "1", Name: "UBS Zurich"}
	p := domain.Portfolio{ID: "p1", PortfolioID: "P1", Name: "Growth"}
	snap := drilldown.Snapshot{
		View:              drilldown.ViewPositions,
		SelectedCustodian: &c,
		SelectedPortfolio: &p,
		Positions: drilldown.Panel[domain.Position]{
			Status: drilldown.StatusFailed,
			Err:    "positions backend down",
		},
		Accounts: drilldown.Panel[domain.Account]{
			Status: drilldown.StatusReady,
			Items: []domain.Account{
				{ID: "a1", AccountID: "A1", Name: "Main", AccountType: domain.AccountTypeSecurities,
					Currency: "USD", Balance: decimal.NewFromFloat(1234.5)},
			},
		},
		Transactions: drilldown.Panel[domain.Transaction]{
			Status: drilldown.StatusLoading,
		},
	}

	out := Render(snap, nil, nil)

	// breadcrumb reflects the drill-down path
	assert.Contains(t, out, "Custodians › UBS Zurich › Growth")
	// failed panel shows its own error while siblings display normally
	assert.Contains(t, out, "positions backend down")
	assert.Contains(t, out, "1,234.50")
	assert.Contains(t, out, "loading...")
	// the aggregate flag shows while any panel is still fetching
	assert.Contains(t, out, "refreshing...")
}

func TestRenderOrphanedReferenceFallback(t *testing.T) {
	snap := drilldown.Snapshot{
		View: drilldown.ViewPortfolios,
		Portfolios: drilldown.Panel[domain.Portfolio]{
			Status: drilldown.StatusReady,
			// record with a missing name renders a placeholder, not a blank
			Items: []domain.Portfolio{{ID: "p1", PortfolioID: "P1", Currency: "USD"}},
		},
	}

	out := Render(snap, nil, nil)
	assert.Contains(t, out, format.Placeholder)
}

func TestRenderNotificationsInInsertionOrder(t *testing.T) {
	snap := drilldown.Snapshot{View: drilldown.ViewCustodians}
	notes := []notify.Notification{
		{ID: "1", Message: "first message", Kind: notify.KindInfo},
		{ID: "2", Message: "second message", Kind: notify.KindError},
	}

	out := Render(snap, nil, notes)
	first := strings.Index(out, "first message")
	second := strings.Index(out, "second message")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestRenderTransactionFilterBadge(t *testing.T) {
	snap := drilldown.Snapshot{
		View:              drilldown.ViewPositions,
		TransactionFilter: domain.TransactionTypeBuy,
		Transactions: drilldown.Panel[domain.Transaction]{
			Status: drilldown.StatusReady,
			Items: []domain.Transaction{
				{ID: "1", TransactionID: "T1", Type: domain.TransactionTypeBuy, Amount: decimal.NewFromInt(-100), Currency: "USD"},
				{ID: "2", TransactionID: "T2", Type: domain.TransactionTypeSell, Amount: decimal.NewFromInt(100), Currency: "USD"},
			},
		},
	}
	filtered := []domain.Transaction{snap.Transactions.Items[0]}

	out := Render(snap, filtered, nil)
	assert.Contains(t, out, "Transactions (BUY)")
	assert.Contains(t, out, "T1")
	assert.NotContains(t, out, "T2")
}
