package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/avolkov/custody-console/internal/domain"
	"github.com/avolkov/custody-console/internal/notify"
	"github.com/avolkov/custody-console/internal/services/drilldown"
	"github.com/avolkov/custody-console/pkg/format"
)

// Render draws the whole console screen for one snapshot. transactions is the
// filter-applied slice for the transaction tab.
func Render(snap drilldown.Snapshot, transactions []domain.Transaction, notes []notify.Notification) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("CUSTODY CONSOLE"))
	b.WriteString("\n")
	b.WriteString(breadcrumbStyle.Render(breadcrumb(snap)))
	b.WriteString("\n")

	if snap.Loading() {
		b.WriteString(mutedStyle.Render("refreshing..."))
		b.WriteString("\n")
	}

	for _, n := range notes {
		style, ok := notificationStyles[n.Kind]
		if !ok {
			style = mutedStyle
		}
		b.WriteString(style.Render("• " + n.Message))
		b.WriteString("\n")
	}

	switch snap.View {
	case drilldown.ViewCustodians:
		b.WriteString(renderCustodians(snap.Custodians))
	case drilldown.ViewPortfolios:
		b.WriteString(renderPortfolios(snap.Portfolios))
	case drilldown.ViewPositions:
		b.WriteString(renderPositions(snap.Positions))
		b.WriteString(renderAccounts(snap.Accounts))
		b.WriteString(renderTransactions(snap.Transactions, transactions, snap.TransactionFilter))
	}

	return b.String()
}

func breadcrumb(snap drilldown.Snapshot) string {
	parts := []string{"Custodians"}
	if snap.SelectedCustodian != nil {
		parts = append(parts, orPlaceholder(snap.SelectedCustodian.Name))
	}
	if snap.SelectedPortfolio != nil {
		parts = append(parts, orPlaceholder(snap.SelectedPortfolio.Name))
	}
	return strings.Join(parts, " › ")
}

// orPlaceholder guards against orphaned or missing parent references.
func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return format.Placeholder
	}
	return s
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(headers...)
}

// renderPanel wraps a collection table with the panel's own loading/error
// state so sibling panels render independently.
func renderPanel[T any](title string, p drilldown.Panel[T], tbl func(items []T) *table.Table) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	switch p.Status {
	case drilldown.StatusLoading:
		b.WriteString(mutedStyle.Render("loading..."))
		b.WriteString("\n")
	case drilldown.StatusFailed:
		b.WriteString(errStyle.Render("error: " + p.Err))
		b.WriteString("\n")
	default:
		if len(p.Items) == 0 {
			b.WriteString(mutedStyle.Render("no records"))
			b.WriteString("\n")
		} else {
			b.WriteString(tbl(p.Items).Render())
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCustodians(p drilldown.Panel[domain.Custodian]) string {
	return renderPanel("Custodians", p, func(items []domain.Custodian) *table.Table {
		t := newTable("Code", "Name", "Description", "Created")
		for _, c := range items {
			t.Row(orPlaceholder(c.Code), orPlaceholder(c.Name), orPlaceholder(c.Description), format.Date(c.CreatedAt, format.DateMedium))
		}
		return t
	})
}

func renderPortfolios(p drilldown.Panel[domain.Portfolio]) string {
	return renderPanel("Portfolios", p, func(items []domain.Portfolio) *table.Table {
		t := newTable("Portfolio ID", "Name", "Currency", "Created")
		for _, pf := range items {
			t.Row(orPlaceholder(pf.PortfolioID), orPlaceholder(pf.Name), orPlaceholder(pf.Currency), format.Date(pf.CreatedAt, format.DateMedium))
		}
		return t
	})
}

func renderPositions(p drilldown.Panel[domain.Position]) string {
	return renderPanel("Positions", p, func(items []domain.Position) *table.Table {
		t := newTable("Position ID", "Security", "Type", "Quantity", "Market Value", "Unrealized P&L", "As Of")
		for _, pos := range items {
			pl := format.Placeholder
			if pos.UnrealizedPL != nil {
				pl = format.Currency(*pos.UnrealizedPL, pos.Currency)
			}
			t.Row(
				orPlaceholder(pos.PositionID),
				orPlaceholder(pos.SecurityID),
				orPlaceholder(pos.SecurityType.String()),
				pos.Quantity.String(),
				format.Currency(pos.MarketValue, pos.Currency),
				pl,
				format.Date(pos.AsOfDate, format.DateMedium),
			)
		}
		return t
	})
}

func renderAccounts(p drilldown.Panel[domain.Account]) string {
	return renderPanel("Accounts", p, func(items []domain.Account) *table.Table {
		t := newTable("Account ID", "Name", "Type", "Currency", "Balance")
		for _, a := range items {
			t.Row(
				orPlaceholder(a.AccountID),
				orPlaceholder(a.Name),
				orPlaceholder(a.AccountType.String()),
				orPlaceholder(a.Currency),
				format.Currency(a.Balance, a.Currency),
			)
		}
		return t
	})
}

func renderTransactions(p drilldown.Panel[domain.Transaction], filtered []domain.Transaction, filter domain.TransactionType) string {
	title := "Transactions"
	if filter != "" {
		title += " (" + filter.String() + ")"
	}
	// keep the panel's own status but show only filtered rows
	shown := p
	shown.Items = filtered
	return renderPanel(title, shown, func(items []domain.Transaction) *table.Table {
		t := newTable("Transaction ID", "Type", "Security", "Quantity", "Amount", "Trade Date", "Description")
		for _, tx := range items {
			qty := format.Placeholder
			if tx.Quantity != nil {
				qty = tx.Quantity.String()
			}
			t.Row(
				orPlaceholder(tx.TransactionID),
				orPlaceholder(tx.Type.String()),
				orPlaceholder(tx.SecurityID),
				qty,
				format.Currency(tx.Amount, tx.Currency),
				format.Date(tx.TradeDate, format.DateMedium),
				orPlaceholder(tx.Description),
			)
		}
		return t
	})
}
