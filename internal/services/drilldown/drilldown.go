// Package drilldown is the view-state machine behind the console: it
// sequences the dependent fetches of the custodian → portfolio →
// positions/accounts/transactions hierarchy and owns the resulting composite
// loading/error state. All mutation goes through its handlers; renderers only
// ever see snapshots.
package drilldown

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/avolkov/custody-console/internal/client"
	"github.com/avolkov/custody-console/internal/domain"
	"github.com/avolkov/custody-console/internal/notify"
)

// API is the slice of the resource client the orchestrator consumes.
type API interface {
	ListCustodians(ctx context.Context) ([]domain.Custodian, error)
	CreateCustodian(ctx context.Context, req domain.CreateCustodianRequest) (domain.Custodian, error)
	UpdateCustodian(ctx context.Context, id string, req domain.UpdateCustodianRequest) (domain.Custodian, error)
	DeleteCustodian(ctx context.Context, id string) error

	ListPortfolios(ctx context.Context, custodianID string) ([]domain.Portfolio, error)
	CreatePortfolio(ctx context.Context, req domain.CreatePortfolioRequest) (domain.Portfolio, error)
	UpdatePortfolio(ctx context.Context, custodianID, id string, req domain.UpdatePortfolioRequest) (domain.Portfolio, error)
	DeletePortfolio(ctx context.Context, custodianID, id string) error

	ListAccounts(ctx context.Context, custodianID string, filter client.AccountFilter) ([]domain.Account, error)
	CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (domain.Account, error)
	UpdateAccount(ctx context.Context, custodianID, id string, req domain.UpdateAccountRequest) (domain.Account, error)
	DeleteAccount(ctx context.Context, custodianID, id string) error

	ListPositions(ctx context.Context, custodianID string, filter client.PositionFilter) ([]domain.Position, error)
	CreatePosition(ctx context.Context, custodianID string, req domain.CreatePositionRequest) (domain.Position, error)

	ListTransactions(ctx context.Context, custodianID string, filter client.TransactionFilter) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, custodianID string, req domain.CreateTransactionRequest) (domain.Transaction, error)
}

// Orchestrator owns the navigable view state. Safe for concurrent use; the
// mutex is the only guard, and sub-fetches commit their panels through it.
type Orchestrator struct {
	mu       sync.Mutex
	api      API
	notifier *notify.Store
	logger   *zap.Logger

	view              View
	selectedCustodian *domain.Custodian
	selectedPortfolio *domain.Portfolio

	custodians   Panel[domain.Custodian]
	portfolios   Panel[domain.Portfolio]
	positions    Panel[domain.Position]
	accounts     Panel[domain.Account]
	transactions Panel[domain.Transaction]

	txFilter domain.TransactionType

	// scope is bumped on every selection change; in-flight fetches carry the
	// value they started under and their commits are discarded on mismatch.
	// Superseded requests are not cancelled, only ignored.
	scope uint64
}

// New creates an orchestrator starting in the custodians view.
func New(api API, notifier *notify.Store, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		api:      api,
		notifier: notifier,
		logger:   logger,
		view:     ViewCustodians,
	}
}

// Snapshot returns an immutable copy of the current view state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		View:              o.view,
		Custodians:        o.custodians.clone(),
		Portfolios:        o.portfolios.clone(),
		Positions:         o.positions.clone(),
		Accounts:          o.accounts.clone(),
		Transactions:      o.transactions.clone(),
		TransactionFilter: o.txFilter,
	}
	if o.selectedCustodian != nil {
		c := *o.selectedCustodian
		snap.SelectedCustodian = &c
	}
	if o.selectedPortfolio != nil {
		p := *o.selectedPortfolio
		snap.SelectedPortfolio = &p
	}
	return snap
}

// LoadCustodians fetches the top-level custodian list. An empty result is not
// an error; it raises an informational notification.
func (o *Orchestrator) LoadCustodians(ctx context.Context) error {
	o.mu.Lock()
	token := o.scope
	o.custodians.Status = StatusLoading
	o.custodians.Err = ""
	o.mu.Unlock()

	items, err := o.api.ListCustodians(ctx)

	o.mu.Lock()
	if token != o.scope {
		o.mu.Unlock()
		o.logger.Debug("discarding stale custodian list", zap.Uint64("token", token))
		return nil
	}
	if err != nil {
		o.custodians.Status = StatusFailed
		o.custodians.Err = err.Error()
		o.mu.Unlock()
		o.logger.Error("failed to fetch custodians", zap.Error(err))
		o.notifier.Add("Failed to fetch custodians. Please try again later.", notify.KindError)
		return err
	}
	o.custodians.Status = StatusReady
	o.custodians.Items = items
	o.mu.Unlock()

	if len(items) == 0 {
		o.notifier.Add("There are no custodians in the system.", notify.KindInfo)
	}
	return nil
}

// SelectCustodian fetches the custodian's portfolios and, on success,
// transitions to the portfolios view. On failure the view stays put and the
// error is surfaced as a notification. Empty portfolio lists still transition.
func (o *Orchestrator) SelectCustodian(ctx context.Context, c domain.Custodian) error {
	o.mu.Lock()
	o.scope++
	token := o.scope
	o.portfolios = loadingPanel[domain.Portfolio]()
	o.mu.Unlock()

	items, err := o.api.ListPortfolios(ctx, c.ID)

	o.mu.Lock()
	if token != o.scope {
		o.mu.Unlock()
		o.logger.Debug("discarding stale portfolio list",
			zap.String("custodian_id", c.ID), zap.Uint64("token", token))
		return nil
	}
	if err != nil {
		o.portfolios = Panel[domain.Portfolio]{Status: StatusFailed, Err: err.Error()}
		o.mu.Unlock()
		o.logger.Error("failed to fetch portfolios", zap.String("custodian_id", c.ID), zap.Error(err))
		o.notifier.Add("Failed to fetch portfolios. Please try again later.", notify.KindError)
		return err
	}

	o.selectedCustodian = &c
	o.selectedPortfolio = nil
	o.clearPortfolioChildrenLocked()
	o.portfolios = Panel[domain.Portfolio]{Status: StatusReady, Items: items}
	o.view = ViewPortfolios
	o.mu.Unlock()

	if len(items) == 0 {
		o.notifier.Add(fmt.Sprintf("There are no portfolios for custodian %s.", c.Name), notify.KindInfo)
	}
	return nil
}

// SelectPortfolio transitions to the positions view and fetches the three
// portfolio-scoped collections in parallel. Each panel commits on its own: a
// failure in one never blocks the other two. The call returns once all three
// fetches have landed (or been superseded).
func (o *Orchestrator) SelectPortfolio(ctx context.Context, p domain.Portfolio) error {
	o.mu.Lock()
	if o.selectedPortfolio != nil && o.selectedPortfolio.ID == p.ID && o.anyPortfolioChildLoadingLocked() {
		// same scope already in flight
		o.mu.Unlock()
		return nil
	}
	o.scope++
	token := o.scope
	o.selectedPortfolio = &p
	o.view = ViewPositions
	o.positions = loadingPanel[domain.Position]()
	o.accounts = loadingPanel[domain.Account]()
	o.transactions = loadingPanel[domain.Transaction]()
	o.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		items, err := o.api.ListPositions(ctx, p.CustodianID, client.PositionFilter{PortfolioID: p.PortfolioID})
		o.commitPositions(token, p, items, err)
	}()
	go func() {
		defer wg.Done()
		items, err := o.api.ListAccounts(ctx, p.CustodianID, client.AccountFilter{PortfolioID: p.PortfolioID})
		o.commitAccounts(token, p, items, err)
	}()
	go func() {
		defer wg.Done()
		items, err := o.api.ListTransactions(ctx, p.CustodianID, client.TransactionFilter{PortfolioID: p.PortfolioID})
		o.commitTransactions(token, p, items, err)
	}()

	wg.Wait()
	return nil
}

func (o *Orchestrator) commitPositions(token uint64, p domain.Portfolio, items []domain.Position, err error) {
	o.mu.Lock()
	if token != o.scope {
		o.mu.Unlock()
		o.logger.Debug("discarding stale positions", zap.String("portfolio_id", p.PortfolioID))
		return
	}
	if err != nil {
		o.positions = Panel[domain.Position]{Status: StatusFailed, Err: err.Error()}
		o.mu.Unlock()
		o.logger.Error("failed to fetch positions", zap.String("portfolio_id", p.PortfolioID), zap.Error(err))
		o.notifier.Add("Failed to fetch positions. Please try again later.", notify.KindError)
		return
	}
	o.positions = Panel[domain.Position]{Status: StatusReady, Items: items}
	o.mu.Unlock()

	if len(items) == 0 {
		o.notifier.Add(fmt.Sprintf("There are no positions for portfolio %s.", p.Name), notify.KindInfo)
	}
}

func (o *Orchestrator) commitAccounts(token uint64, p domain.Portfolio, items []domain.Account, err error) {
	o.mu.Lock()
	if token != o.scope {
		o.mu.Unlock()
		o.logger.Debug("discarding stale accounts", zap.String("portfolio_id", p.PortfolioID))
		return
	}
	if err != nil {
		o.accounts = Panel[domain.Account]{Status: StatusFailed, Err: err.Error()}
		o.mu.Unlock()
		o.logger.Error("failed to fetch accounts", zap.String("portfolio_id", p.PortfolioID), zap.Error(err))
		o.notifier.Add("Failed to fetch accounts. Please try again later.", notify.KindError)
		return
	}
	o.accounts = Panel[domain.Account]{Status: StatusReady, Items: items}
	o.mu.Unlock()
}

func (o *Orchestrator) commitTransactions(token uint64, p domain.Portfolio, items []domain.Transaction, err error) {
	o.mu.Lock()
	if token != o.scope {
		o.mu.Unlock()
		o.logger.Debug("discarding stale transactions", zap.String("portfolio_id", p.PortfolioID))
		return
	}
	if err != nil {
		o.transactions = Panel[domain.Transaction]{Status: StatusFailed, Err: err.Error()}
		o.mu.Unlock()
		o.logger.Error("failed to fetch transactions", zap.String("portfolio_id", p.PortfolioID), zap.Error(err))
		o.notifier.Add("Failed to fetch transactions. Please try again later.", notify.KindError)
		return
	}
	o.transactions = Panel[domain.Transaction]{Status: StatusReady, Items: items}
	o.mu.Unlock()
}

// Back returns to the top-level custodians view, clearing the current
// selections and their dependent collections so stale children can never show
// under a new parent.
func (o *Orchestrator) Back() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scope++
	o.view = ViewCustodians
	o.selectedCustodian = nil
	o.selectedPortfolio = nil
	o.portfolios = Panel[domain.Portfolio]{}
	o.clearPortfolioChildrenLocked()
}

// BackToPortfolios steps one level up from the positions view.
func (o *Orchestrator) BackToPortfolios() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.view != ViewPositions {
		return
	}
	o.scope++
	o.view = ViewPortfolios
	o.selectedPortfolio = nil
	o.clearPortfolioChildrenLocked()
}

// SetTransactionFilter narrows the transaction tab to one type; the zero
// value shows all.
func (o *Orchestrator) SetTransactionFilter(t domain.TransactionType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.txFilter = t
}

// FilteredTransactions applies the in-memory type filter to the committed
// transaction collection.
func (o *Orchestrator) FilteredTransactions() []domain.Transaction {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.txFilter == "" {
		out := make([]domain.Transaction, len(o.transactions.Items))
		copy(out, o.transactions.Items)
		return out
	}
	return lo.Filter(o.transactions.Items, func(tx domain.Transaction, _ int) bool {
		return tx.Type == o.txFilter
	})
}

func (o *Orchestrator) clearPortfolioChildrenLocked() {
	o.positions = Panel[domain.Position]{}
	o.accounts = Panel[domain.Account]{}
	o.transactions = Panel[domain.Transaction]{}
	o.txFilter = ""
}

func (o *Orchestrator) anyPortfolioChildLoadingLocked() bool {
	return o.positions.Status == StatusLoading ||
		o.accounts.Status == StatusLoading ||
		o.transactions.Status == StatusLoading
}
