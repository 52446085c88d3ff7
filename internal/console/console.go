// Package console runs the interactive session: render the current snapshot,
// ask for one intent, dispatch it to the orchestrator, repeat.
package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/avolkov/custody-console/internal/domain"
	"github.com/avolkov/custody-console/internal/notify"
	"github.com/avolkov/custody-console/internal/services/drilldown"
	"github.com/avolkov/custody-console/internal/view"
)

// Console drives the drill-down UI on a terminal.
type Console struct {
	orch     *drilldown.Orchestrator
	notifier *notify.Store
	logger   *zap.Logger
	out      io.Writer
}

// New creates a console writing rendered screens to out.
func New(orch *drilldown.Orchestrator, notifier *notify.Store, logger *zap.Logger, out io.Writer) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{orch: orch, notifier: notifier, logger: logger, out: out}
}

// Run loops until the user quits or ctx is cancelled. Fetch failures never
// abort the loop; they surface as notifications and the user retries.
func (c *Console) Run(ctx context.Context) error {
	// initial load failure is recoverable via the refresh action
	_ = c.orch.LoadCustodians(ctx) //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.render()

		quit, err := c.step(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			c.logger.Error("prompt failed", zap.Error(err))
			return err
		}
		if quit {
			c.logger.Info("session ended by user")
			return nil
		}
	}
}

func (c *Console) render() {
	snap := c.orch.Snapshot()
	fmt.Fprint(c.out, "\033[H\033[2J") // clear screen
	fmt.Fprintln(c.out, view.Render(snap, c.orch.FilteredTransactions(), c.notifier.List()))
}

func (c *Console) step(ctx context.Context) (quit bool, err error) {
	switch c.orch.Snapshot().View {
	case drilldown.ViewPortfolios:
		return c.portfoliosStep(ctx)
	case drilldown.ViewPositions:
		return c.positionsStep(ctx)
	default:
		return c.custodiansStep(ctx)
	}
}

const (
	actionOpen    = "open"
	actionCreate  = "create"
	actionEdit    = "edit"
	actionDelete  = "delete"
	actionRefresh = "refresh"
	actionBack    = "back"
	actionQuit    = "quit"
)

func pick(title string, opts ...huh.Option[string]) (string, error) {
	var choice string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(opts...).Value(&choice),
	)).Run()
	return choice, err
}

func (c *Console) custodiansStep(ctx context.Context) (bool, error) {
	choice, err := pick("Custodians",
		huh.NewOption("Open custodian", actionOpen),
		huh.NewOption("New custodian", actionCreate),
		huh.NewOption("Edit custodian", actionEdit),
		huh.NewOption("Delete custodian", actionDelete),
		huh.NewOption("Refresh", actionRefresh),
		huh.NewOption("Quit", actionQuit),
	)
	if err != nil {
		return false, err
	}

	switch choice {
	case actionOpen:
		custodian, ok, err := c.chooseCustodian("Select custodian")
		if err != nil || !ok {
			return false, err
		}
		_ = c.orch.SelectCustodian(ctx, custodian) //nolint:errcheck // surfaced as notification
	case actionCreate:
		c.createCustodian(ctx)
	case actionEdit:
		custodian, ok, err := c.chooseCustodian("Edit custodian")
		if err != nil || !ok {
			return false, err
		}
		c.editCustodian(ctx, custodian)
	case actionDelete:
		custodian, ok, err := c.chooseCustodian("Delete custodian")
		if err != nil || !ok {
			return false, err
		}
		if c.confirmDelete("custodian " + custodian.Name) {
			_ = c.orch.DeleteCustodian(ctx, custodian.ID) //nolint:errcheck
		}
	case actionRefresh:
		_ = c.orch.LoadCustodians(ctx) //nolint:errcheck
	case actionQuit:
		return true, nil
	}
	return false, nil
}

func (c *Console) chooseCustodian(title string) (domain.Custodian, bool, error) {
	snap := c.orch.Snapshot()
	if len(snap.Custodians.Items) == 0 {
		c.notifier.Add("There are no custodians to select.", notify.KindInfo)
		return domain.Custodian{}, false, nil
	}
	custodian, err := pickOne(title, snap.Custodians.Items, func(cu domain.Custodian) string {
		return cu.Name + " (" + cu.Code + ")"
	})
	if err != nil {
		return domain.Custodian{}, false, err
	}
	return custodian, true, nil
}

func (c *Console) portfoliosStep(ctx context.Context) (bool, error) {
	choice, err := pick("Portfolios",
		huh.NewOption("Open portfolio", actionOpen),
		huh.NewOption("New portfolio", actionCreate),
		huh.NewOption("Edit portfolio", actionEdit),
		huh.NewOption("Delete portfolio", actionDelete),
		huh.NewOption("Back to custodians", actionBack),
		huh.NewOption("Quit", actionQuit),
	)
	if err != nil {
		return false, err
	}

	switch choice {
	case actionOpen:
		portfolio, ok, err := c.choosePortfolio("Select portfolio")
		if err != nil || !ok {
			return false, err
		}
		_ = c.orch.SelectPortfolio(ctx, portfolio) //nolint:errcheck
	case actionCreate:
		c.createPortfolio(ctx)
	case actionEdit:
		portfolio, ok, err := c.choosePortfolio("Edit portfolio")
		if err != nil || !ok {
			return false, err
		}
		c.editPortfolio(ctx, portfolio)
	case actionDelete:
		portfolio, ok, err := c.choosePortfolio("Delete portfolio")
		if err != nil || !ok {
			return false, err
		}
		if c.confirmDelete("portfolio " + portfolio.Name) {
			_ = c.orch.DeletePortfolio(ctx, portfolio.CustodianID, portfolio.ID) //nolint:errcheck
		}
	case actionBack:
		c.orch.Back()
	case actionQuit:
		return true, nil
	}
	return false, nil
}

func (c *Console) choosePortfolio(title string) (domain.Portfolio, bool, error) {
	snap := c.orch.Snapshot()
	if len(snap.Portfolios.Items) == 0 {
		c.notifier.Add("There are no portfolios to select.", notify.KindInfo)
		return domain.Portfolio{}, false, nil
	}
	portfolio, err := pickOne(title, snap.Portfolios.Items, func(p domain.Portfolio) string {
		return p.Name + " (" + p.PortfolioID + ")"
	})
	if err != nil {
		return domain.Portfolio{}, false, err
	}
	return portfolio, true, nil
}

func (c *Console) positionsStep(ctx context.Context) (bool, error) {
	choice, err := pick("Portfolio detail",
		huh.NewOption("New position", "create-position"),
		huh.NewOption("New account", "create-account"),
		huh.NewOption("New transaction", "create-transaction"),
		huh.NewOption("Edit account", "edit-account"),
		huh.NewOption("Delete account", "delete-account"),
		huh.NewOption("Filter transactions", "filter"),
		huh.NewOption("Back to portfolios", actionBack),
		huh.NewOption("Back to custodians", "top"),
		huh.NewOption("Quit", actionQuit),
	)
	if err != nil {
		return false, err
	}

	switch choice {
	case "create-position":
		c.createPosition(ctx)
	case "create-account":
		c.createAccount(ctx)
	case "create-transaction":
		c.createTransaction(ctx)
	case "edit-account":
		account, ok, err := c.chooseAccount("Edit account")
		if err != nil || !ok {
			return false, err
		}
		c.editAccount(ctx, account)
	case "delete-account":
		account, ok, err := c.chooseAccount("Delete account")
		if err != nil || !ok {
			return false, err
		}
		if c.confirmDelete("account " + account.Name) {
			_ = c.orch.DeleteAccount(ctx, account.CustodianID, account.ID) //nolint:errcheck
		}
	case "filter":
		c.filterTransactions()
	case actionBack:
		c.orch.BackToPortfolios()
	case "top":
		c.orch.Back()
	case actionQuit:
		return true, nil
	}
	return false, nil
}

func (c *Console) chooseAccount(title string) (domain.Account, bool, error) {
	snap := c.orch.Snapshot()
	if len(snap.Accounts.Items) == 0 {
		c.notifier.Add("There are no accounts to select.", notify.KindInfo)
		return domain.Account{}, false, nil
	}
	account, err := pickOne(title, snap.Accounts.Items, func(a domain.Account) string {
		return a.Name + " (" + a.AccountID + ")"
	})
	if err != nil {
		return domain.Account{}, false, err
	}
	return account, true, nil
}

// pickOne selects by index so entity types with map fields stay pickable.
func pickOne[T any](title string, items []T, label func(T) string) (T, error) {
	opts := lo.Map(items, func(item T, i int) huh.Option[int] {
		return huh.NewOption(label(item), i)
	})
	var idx int
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title(title).Options(opts...).Value(&idx),
	)).Run()
	if err != nil {
		var zero T
		return zero, err
	}
	return items[idx], nil
}

// create flows re-open the form with the draft intact when the server rejects
// the submission, so the user corrects instead of retyping.

func (c *Console) createCustodian(ctx context.Context) {
	var draft view.CustodianDraft
	for {
		if err := draft.Run(); err != nil {
			return
		}
		if _, err := c.orch.CreateCustodian(ctx, draft.Request()); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) createPortfolio(ctx context.Context) {
	snap := c.orch.Snapshot()
	if snap.SelectedCustodian == nil {
		return
	}
	var draft view.PortfolioDraft
	for {
		if err := draft.Run(); err != nil {
			return
		}
		if _, err := c.orch.CreatePortfolio(ctx, draft.Request(snap.SelectedCustodian.ID)); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) createAccount(ctx context.Context) {
	snap := c.orch.Snapshot()
	if snap.SelectedCustodian == nil || snap.SelectedPortfolio == nil {
		return
	}
	var draft view.AccountDraft
	for {
		if err := draft.Run(); err != nil {
			return
		}
		req := draft.Request(snap.SelectedCustodian.ID, snap.SelectedPortfolio.PortfolioID)
		if _, err := c.orch.CreateAccount(ctx, req); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) createPosition(ctx context.Context) {
	snap := c.orch.Snapshot()
	if snap.SelectedCustodian == nil || snap.SelectedPortfolio == nil {
		return
	}
	var draft view.PositionDraft
	for {
		if err := draft.Run(snap.Accounts.Items); err != nil {
			return
		}
		req := draft.Request(snap.SelectedPortfolio.PortfolioID)
		if _, err := c.orch.CreatePosition(ctx, snap.SelectedCustodian.ID, req); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) createTransaction(ctx context.Context) {
	snap := c.orch.Snapshot()
	if snap.SelectedCustodian == nil || snap.SelectedPortfolio == nil {
		return
	}
	var draft view.TransactionDraft
	for {
		if err := draft.Run(); err != nil {
			return
		}
		req := draft.Request(snap.SelectedPortfolio.PortfolioID)
		if _, err := c.orch.CreateTransaction(ctx, snap.SelectedCustodian.ID, req); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

// edit flows open the form pre-filled from the current record and follow the
// same confirm-retry loop as creation.

func (c *Console) editCustodian(ctx context.Context, cu domain.Custodian) {
	draft := view.NewCustodianDraft(cu)
	for {
		if err := draft.Run(); err != nil {
			return
		}
		if _, err := c.orch.UpdateCustodian(ctx, cu.ID, draft.UpdateRequest()); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) editPortfolio(ctx context.Context, p domain.Portfolio) {
	draft := view.NewPortfolioDraft(p)
	for {
		if err := draft.Run(); err != nil {
			return
		}
		if _, err := c.orch.UpdatePortfolio(ctx, p.CustodianID, p.ID, draft.UpdateRequest()); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) editAccount(ctx context.Context, a domain.Account) {
	draft := view.NewAccountDraft(a)
	for {
		if err := draft.Run(); err != nil {
			return
		}
		if _, err := c.orch.UpdateAccount(ctx, a.CustodianID, a.ID, draft.UpdateRequest()); err == nil {
			return
		}
		if !c.retryForm() {
			return
		}
	}
}

func (c *Console) confirmDelete(what string) bool {
	confirmed := false
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Delete " + what + "?").
			Description("This cannot be undone.").
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed),
	)).Run(); err != nil {
		return false
	}
	return confirmed
}

func (c *Console) retryForm() bool {
	retry := true
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Submission failed").
			Description("Correct the form and resubmit?").
			Affirmative("Edit").
			Negative("Discard").
			Value(&retry),
	)).Run(); err != nil {
		return false
	}
	return retry
}

func (c *Console) filterTransactions() {
	opts := []huh.Option[domain.TransactionType]{huh.NewOption("ALL", domain.TransactionType(""))}
	for _, t := range domain.TransactionTypes() {
		opts = append(opts, huh.NewOption(t.String(), t))
	}

	var choice domain.TransactionType
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[domain.TransactionType]().Title("Transaction type").Options(opts...).Value(&choice),
	)).Run(); err != nil {
		return
	}
	c.orch.SetTransactionFilter(choice)
}
