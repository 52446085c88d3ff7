package drilldown

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/avolkov/custody-console/internal/domain"
	"github.com/avolkov/custody-console/internal/notify"
)

// Record creation appends the server-returned entity to the collection
// matching the current scope and never changes the view. On failure the error
// is surfaced and returned so the originating form can stay open with its
// input preserved; nothing is rolled back.

// CreateCustodian creates a custodian and appends it to the custodian list.
func (o *Orchestrator) CreateCustodian(ctx context.Context, req domain.CreateCustodianRequest) (domain.Custodian, error) {
	created, err := o.api.CreateCustodian(ctx, req)
	if err != nil {
		o.logger.Error("failed to create custodian", zap.String("code", req.Code), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to create custodian: %v", err), notify.KindError)
		return domain.Custodian{}, err
	}

	o.mu.Lock()
	o.custodians.Items = append(o.custodians.Items, created)
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully created custodian: %s", created.Name), notify.KindSuccess)
	return created, nil
}

// CreatePortfolio creates a portfolio; the in-memory list grows only when the
// created record belongs to the currently selected custodian.
func (o *Orchestrator) CreatePortfolio(ctx context.Context, req domain.CreatePortfolioRequest) (domain.Portfolio, error) {
	created, err := o.api.CreatePortfolio(ctx, req)
	if err != nil {
		o.logger.Error("failed to create portfolio", zap.String("portfolio_id", req.PortfolioID), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to create portfolio: %v", err), notify.KindError)
		return domain.Portfolio{}, err
	}

	o.mu.Lock()
	if o.selectedCustodian != nil && o.selectedCustodian.ID == created.CustodianID {
		o.portfolios.Items = append(o.portfolios.Items, created)
	}
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully created portfolio: %s", created.Name), notify.KindSuccess)
	return created, nil
}

// CreateAccount creates an account; the account panel grows when the record
// matches the current scope. Sibling panels are untouched.
func (o *Orchestrator) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (domain.Account, error) {
	created, err := o.api.CreateAccount(ctx, req)
	if err != nil {
		o.logger.Error("failed to create account", zap.String("account_id", req.AccountID), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to create account: %v", err), notify.KindError)
		return domain.Account{}, err
	}

	o.mu.Lock()
	if o.inScopeLocked(created.CustodianID, created.PortfolioID) {
		o.accounts.Items = append(o.accounts.Items, created)
	}
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully created account: %s", created.Name), notify.KindSuccess)
	return created, nil
}

// CreatePosition records a position snapshot under the selected portfolio.
func (o *Orchestrator) CreatePosition(ctx context.Context, custodianID string, req domain.CreatePositionRequest) (domain.Position, error) {
	created, err := o.api.CreatePosition(ctx, custodianID, req)
	if err != nil {
		o.logger.Error("failed to create position", zap.String("position_id", req.PositionID), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to create position: %v", err), notify.KindError)
		return domain.Position{}, err
	}

	o.mu.Lock()
	if o.inScopeLocked(custodianID, created.PortfolioID) {
		o.positions.Items = append(o.positions.Items, created)
	}
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully created position: %s", created.PositionID), notify.KindSuccess)
	return created, nil
}

// CreateTransaction records a transaction under the selected portfolio.
func (o *Orchestrator) CreateTransaction(ctx context.Context, custodianID string, req domain.CreateTransactionRequest) (domain.Transaction, error) {
	created, err := o.api.CreateTransaction(ctx, custodianID, req)
	if err != nil {
		o.logger.Error("failed to create transaction", zap.String("transaction_id", req.TransactionID), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to create transaction: %v", err), notify.KindError)
		return domain.Transaction{}, err
	}

	o.mu.Lock()
	if o.inScopeLocked(custodianID, created.PortfolioID) {
		o.transactions.Items = append(o.transactions.Items, created)
	}
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully created transaction: %s", created.TransactionID), notify.KindSuccess)
	return created, nil
}

// UpdateCustodian applies a partial update and reconciles the in-memory list.
func (o *Orchestrator) UpdateCustodian(ctx context.Context, id string, req domain.UpdateCustodianRequest) (domain.Custodian, error) {
	updated, err := o.api.UpdateCustodian(ctx, id, req)
	if err != nil {
		o.logger.Error("failed to update custodian", zap.String("id", id), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to update custodian: %v", err), notify.KindError)
		return domain.Custodian{}, err
	}

	o.mu.Lock()
	o.custodians.Items = lo.Map(o.custodians.Items, func(c domain.Custodian, _ int) domain.Custodian {
		if c.ID == updated.ID {
			return updated
		}
		return c
	})
	if o.selectedCustodian != nil && o.selectedCustodian.ID == updated.ID {
		o.selectedCustodian = &updated
	}
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully updated custodian: %s", updated.Name), notify.KindSuccess)
	return updated, nil
}

// DeleteCustodian removes a custodian. Deleting the selected custodian
// returns the console to the top-level view.
func (o *Orchestrator) DeleteCustodian(ctx context.Context, id string) error {
	if err := o.api.DeleteCustodian(ctx, id); err != nil {
		o.logger.Error("failed to delete custodian", zap.String("id", id), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to delete custodian: %v", err), notify.KindError)
		return err
	}

	o.mu.Lock()
	o.custodians.Items = lo.Reject(o.custodians.Items, func(c domain.Custodian, _ int) bool {
		return c.ID == id
	})
	resetView := o.selectedCustodian != nil && o.selectedCustodian.ID == id
	o.mu.Unlock()

	if resetView {
		o.Back()
	}
	o.notifier.Add("Custodian deleted.", notify.KindSuccess)
	return nil
}

// UpdatePortfolio applies a partial update and reconciles the in-memory list.
func (o *Orchestrator) UpdatePortfolio(ctx context.Context, custodianID, id string, req domain.UpdatePortfolioRequest) (domain.Portfolio, error) {
	updated, err := o.api.UpdatePortfolio(ctx, custodianID, id, req)
	if err != nil {
		o.logger.Error("failed to update portfolio", zap.String("id", id), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to update portfolio: %v", err), notify.KindError)
		return domain.Portfolio{}, err
	}

	o.mu.Lock()
	o.portfolios.Items = lo.Map(o.portfolios.Items, func(p domain.Portfolio, _ int) domain.Portfolio {
		if p.ID == updated.ID {
			return updated
		}
		return p
	})
	if o.selectedPortfolio != nil && o.selectedPortfolio.ID == updated.ID {
		o.selectedPortfolio = &updated
	}
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully updated portfolio: %s", updated.Name), notify.KindSuccess)
	return updated, nil
}

// DeletePortfolio removes a portfolio. Deleting the selected portfolio steps
// back to the portfolio list.
func (o *Orchestrator) DeletePortfolio(ctx context.Context, custodianID, id string) error {
	if err := o.api.DeletePortfolio(ctx, custodianID, id); err != nil {
		o.logger.Error("failed to delete portfolio", zap.String("id", id), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to delete portfolio: %v", err), notify.KindError)
		return err
	}

	o.mu.Lock()
	o.portfolios.Items = lo.Reject(o.portfolios.Items, func(p domain.Portfolio, _ int) bool {
		return p.ID == id
	})
	stepBack := o.selectedPortfolio != nil && o.selectedPortfolio.ID == id
	o.mu.Unlock()

	if stepBack {
		o.BackToPortfolios()
	}
	o.notifier.Add("Portfolio deleted.", notify.KindSuccess)
	return nil
}

// UpdateAccount applies a partial update and reconciles the account panel.
func (o *Orchestrator) UpdateAccount(ctx context.Context, custodianID, id string, req domain.UpdateAccountRequest) (domain.Account, error) {
	updated, err := o.api.UpdateAccount(ctx, custodianID, id, req)
	if err != nil {
		o.logger.Error("failed to update account", zap.String("id", id), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to update account: %v", err), notify.KindError)
		return domain.Account{}, err
	}

	o.mu.Lock()
	o.accounts.Items = lo.Map(o.accounts.Items, func(a domain.Account, _ int) domain.Account {
		if a.ID == updated.ID {
			return updated
		}
		return a
	})
	o.mu.Unlock()

	o.notifier.Add(fmt.Sprintf("Successfully updated account: %s", updated.Name), notify.KindSuccess)
	return updated, nil
}

// DeleteAccount removes an account from the server and the account panel.
func (o *Orchestrator) DeleteAccount(ctx context.Context, custodianID, id string) error {
	if err := o.api.DeleteAccount(ctx, custodianID, id); err != nil {
		o.logger.Error("failed to delete account", zap.String("id", id), zap.Error(err))
		o.notifier.Add(fmt.Sprintf("Failed to delete account: %v", err), notify.KindError)
		return err
	}

	o.mu.Lock()
	o.accounts.Items = lo.Reject(o.accounts.Items, func(a domain.Account, _ int) bool {
		return a.ID == id
	})
	o.mu.Unlock()

	o.notifier.Add("Account deleted.", notify.KindSuccess)
	return nil
}

// inScopeLocked reports whether a record's parents match the current
// selection. The panels it guards are portfolio-scoped, so a record without a
// matching portfolio id is never appended, even when the custodian matches.
func (o *Orchestrator) inScopeLocked(custodianID, portfolioID string) bool {
	if o.selectedCustodian == nil || o.selectedCustodian.ID != custodianID {
		return false
	}
	return o.selectedPortfolio != nil && o.selectedPortfolio.PortfolioID == portfolioID
}
