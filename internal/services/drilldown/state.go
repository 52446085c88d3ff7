package drilldown

import (
	"github.com/avolkov/custody-console/internal/domain"
)

// View names the screen the console is on. ViewPositions bundles the
// position, account and transaction panels as tabs of one portfolio scope.
type View string

const (
	ViewCustodians View = "custodians"
	ViewPortfolios View = "portfolios"
	ViewPositions  View = "positions"
)

// Status is the lifecycle of one fetch panel. Panels load and fail
// independently so sibling tabs never block each other.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// Panel is one fetchable collection plus its own loading/error state.
type Panel[T any] struct {
	Status Status
	Err    string
	Items  []T
}

func (p Panel[T]) clone() Panel[T] {
	out := p
	out.Items = make([]T, len(p.Items))
	copy(out.Items, p.Items)
	return out
}

func loadingPanel[T any]() Panel[T] {
	return Panel[T]{Status: StatusLoading}
}

// Snapshot is an immutable copy of the orchestrator state for rendering.
type Snapshot struct {
	View              View
	SelectedCustodian *domain.Custodian
	SelectedPortfolio *domain.Portfolio

	Custodians   Panel[domain.Custodian]
	Portfolios   Panel[domain.Portfolio]
	Positions    Panel[domain.Position]
	Accounts     Panel[domain.Account]
	Transactions Panel[domain.Transaction]

	// TransactionFilter is the in-memory type filter; empty means ALL.
	TransactionFilter domain.TransactionType
}

// Loading reports whether any panel is still fetching. Display never waits
// on this; it is the aggregate flag only.
func (s Snapshot) Loading() bool {
	return s.Custodians.Status == StatusLoading ||
		s.Portfolios.Status == StatusLoading ||
		s.Positions.Status == StatusLoading ||
		s.Accounts.Status == StatusLoading ||
		s.Transactions.Status == StatusLoading
}
