package view

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/avolkov/custody-console/internal/domain"
)

// Drafts hold raw form input as strings so a rejected submission can re-open
// the form with everything the user typed still in place.

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.Errorf("%s is required", field)
		}
		return nil
	}
}

func currencyCode(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 3 {
		return errors.New("currency must be a 3-letter ISO 4217 code")
	}
	return nil
}

func optionalDecimal(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
			return errors.Errorf("%s must be a number", field)
		}
		return nil
	}
}

func requiredDecimal(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.Errorf("%s is required", field)
		}
		return optionalDecimal(field)(s)
	}
}

func parseDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// CustodianDraft is the create-custodian form state.
type CustodianDraft struct {
	Name        string
	Code        string
	Description string
	Email       string
	Phone       string
	Address     string
}

// Run collects the draft interactively. Returns huh.ErrUserAborted when the
// user backs out.
func (d *CustodianDraft) Run() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&d.Name).Validate(required("name")),
			huh.NewInput().Title("Code").Description("Unique custodian code").Value(&d.Code).Validate(required("code")),
			huh.NewInput().Title("Description").Value(&d.Description),
		),
		huh.NewGroup(
			huh.NewInput().Title("Contact email").Value(&d.Email),
			huh.NewInput().Title("Contact phone").Value(&d.Phone),
			huh.NewInput().Title("Contact address").Value(&d.Address),
		),
	).Run()
}

// Request converts the draft to the API payload.
func (d *CustodianDraft) Request() domain.CreateCustodianRequest {
	contact := map[string]string{}
	if d.Email != "" {
		contact["email"] = d.Email
	}
	if d.Phone != "" {
		contact["phone"] = d.Phone
	}
	if d.Address != "" {
		contact["address"] = d.Address
	}
	return domain.CreateCustodianRequest{
		Name:        strings.TrimSpace(d.Name),
		Code:        strings.TrimSpace(d.Code),
		Description: strings.TrimSpace(d.Description),
		ContactInfo: contact,
	}
}

// NewCustodianDraft pre-fills a draft from an existing record for editing.
func NewCustodianDraft(c domain.Custodian) CustodianDraft {
	return CustodianDraft{
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Email:       c.ContactInfo["email"],
		Phone:       c.ContactInfo["phone"],
		Address:     c.ContactInfo["address"],
	}
}

// UpdateRequest converts the draft to a partial-update payload.
func (d *CustodianDraft) UpdateRequest() domain.UpdateCustodianRequest {
	req := d.Request()
	return domain.UpdateCustodianRequest{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ContactInfo: req.ContactInfo,
	}
}

// PortfolioDraft is the create-portfolio form state.
type PortfolioDraft struct {
	PortfolioID string
	Name        string
	Description string
	Currency    string
}

func (d *PortfolioDraft) Run() error {
	if d.Currency == "" {
		d.Currency = "USD"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Portfolio ID").Description("Unique within the custodian").Value(&d.PortfolioID).Validate(required("portfolio_id")),
			huh.NewInput().Title("Name").Value(&d.Name).Validate(required("name")),
			huh.NewInput().Title("Description").Value(&d.Description),
			huh.NewInput().Title("Currency").Value(&d.Currency).Validate(currencyCode),
		),
	).Run()
}

func (d *PortfolioDraft) Request(custodianID string) domain.CreatePortfolioRequest {
	return domain.CreatePortfolioRequest{
		PortfolioID: strings.TrimSpace(d.PortfolioID),
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Currency:    strings.ToUpper(strings.TrimSpace(d.Currency)),
		CustodianID: custodianID,
	}
}

// NewPortfolioDraft pre-fills a draft from an existing record for editing.
// The human-assigned portfolio id is shown but not updatable.
func NewPortfolioDraft(p domain.Portfolio) PortfolioDraft {
	return PortfolioDraft{
		PortfolioID: p.PortfolioID,
		Name:        p.Name,
		Description: p.Description,
		Currency:    p.Currency,
	}
}

// UpdateRequest converts the draft to a partial-update payload.
func (d *PortfolioDraft) UpdateRequest() domain.UpdatePortfolioRequest {
	return domain.UpdatePortfolioRequest{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Currency:    strings.ToUpper(strings.TrimSpace(d.Currency)),
	}
}

// AccountDraft is the create-account form state.
type AccountDraft struct {
	AccountID   string
	Name        string
	AccountType domain.AccountType
	Currency    string
	Balance     string
}

func (d *AccountDraft) Run() error {
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if d.AccountType == "" {
		d.AccountType = domain.AccountTypeSecurities
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Account ID").Value(&d.AccountID).Validate(required("account_id")),
			huh.NewInput().Title("Name").Value(&d.Name).Validate(required("name")),
			huh.NewSelect[domain.AccountType]().
				Title("Account type").
				Options(lo.Map(domain.AccountTypes(), func(t domain.AccountType, _ int) huh.Option[domain.AccountType] {
					return huh.NewOption(t.String(), t)
				})...).
				Value(&d.AccountType),
			huh.NewInput().Title("Currency").Value(&d.Currency).Validate(currencyCode),
			huh.NewInput().Title("Opening balance").Placeholder("0").Value(&d.Balance).Validate(optionalDecimal("balance")),
		),
	).Run()
}

func (d *AccountDraft) Request(custodianID, portfolioID string) domain.CreateAccountRequest {
	return domain.CreateAccountRequest{
		CustodianID: custodianID,
		PortfolioID: portfolioID,
		AccountID:   strings.TrimSpace(d.AccountID),
		Name:        strings.TrimSpace(d.Name),
		AccountType: d.AccountType,
		Currency:    strings.ToUpper(strings.TrimSpace(d.Currency)),
		Balance:     parseDecimal(d.Balance),
	}
}

// NewAccountDraft pre-fills a draft from an existing record for editing.
func NewAccountDraft(a domain.Account) AccountDraft {
	return AccountDraft{
		AccountID:   a.AccountID,
		Name:        a.Name,
		AccountType: a.AccountType,
		Currency:    a.Currency,
		Balance:     a.Balance.String(),
	}
}

// UpdateRequest converts the draft to a partial-update payload.
func (d *AccountDraft) UpdateRequest() domain.UpdateAccountRequest {
	return domain.UpdateAccountRequest{
		Name:        strings.TrimSpace(d.Name),
		AccountType: d.AccountType,
		Currency:    strings.ToUpper(strings.TrimSpace(d.Currency)),
		Balance:     parseDecimal(d.Balance),
	}
}

// PositionDraft is the create-position form state.
type PositionDraft struct {
	PositionID   string
	AccountID    string
	SecurityID   string
	SecurityType domain.SecurityType
	Quantity     string
	MarketValue  string
	Currency     string
	CostBasis    string
	AsOfDate     string
}

func (d *PositionDraft) Run(accounts []domain.Account) error {
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if d.SecurityType == "" {
		d.SecurityType = domain.SecurityTypeEquity
	}

	accountField := huh.NewInput().Title("Account ID").Value(&d.AccountID).Validate(required("account_id"))
	group := []huh.Field{
		huh.NewInput().Title("Position ID").Value(&d.PositionID).Validate(required("position_id")),
	}
	if len(accounts) > 0 {
		group = append(group, huh.NewSelect[string]().
			Title("Account").
			Options(lo.Map(accounts, func(a domain.Account, _ int) huh.Option[string] {
				return huh.NewOption(a.Name+" ("+a.AccountID+")", a.AccountID)
			})...).
			Value(&d.AccountID))
	} else {
		group = append(group, accountField)
	}
	group = append(group,
		huh.NewInput().Title("Security ID").Description("ISIN or internal identifier").Value(&d.SecurityID).Validate(required("security_id")),
		huh.NewSelect[domain.SecurityType]().
			Title("Security type").
			Options(lo.Map(domain.SecurityTypes(), func(t domain.SecurityType, _ int) huh.Option[domain.SecurityType] {
				return huh.NewOption(t.String(), t)
			})...).
			Value(&d.SecurityType),
		huh.NewInput().Title("Quantity").Value(&d.Quantity).Validate(requiredDecimal("quantity")),
		huh.NewInput().Title("Market value").Value(&d.MarketValue).Validate(requiredDecimal("market_value")),
		huh.NewInput().Title("Currency").Value(&d.Currency).Validate(currencyCode),
		huh.NewInput().Title("Cost basis").Placeholder("optional").Value(&d.CostBasis).Validate(optionalDecimal("cost_basis")),
		huh.NewInput().Title("As-of date").Placeholder("YYYY-MM-DD").Value(&d.AsOfDate),
	)

	return huh.NewForm(huh.NewGroup(group...)).Run()
}

func (d *PositionDraft) Request(portfolioID string) domain.CreatePositionRequest {
	qty := parseDecimal(d.Quantity)
	if qty == nil {
		z := decimal.Zero
		qty = &z
	}
	mv := parseDecimal(d.MarketValue)
	if mv == nil {
		z := decimal.Zero
		mv = &z
	}
	return domain.CreatePositionRequest{
		PortfolioID:  portfolioID,
		AccountID:    strings.TrimSpace(d.AccountID),
		PositionID:   strings.TrimSpace(d.PositionID),
		SecurityID:   strings.TrimSpace(d.SecurityID),
		SecurityType: d.SecurityType,
		Quantity:     *qty,
		MarketValue:  *mv,
		Currency:     strings.ToUpper(strings.TrimSpace(d.Currency)),
		CostBasis:    parseDecimal(d.CostBasis),
		AsOfDate:     strings.TrimSpace(d.AsOfDate),
	}
}

// TransactionDraft is the create-transaction form state.
type TransactionDraft struct {
	TransactionID string
	AccountID     string
	Type          domain.TransactionType
	SecurityID    string
	Quantity      string
	Price         string
	Amount        string
	Currency      string
	TradeDate     string
	Description   string
}

func (d *TransactionDraft) Run() error {
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if d.Type == "" {
		d.Type = domain.TransactionTypeBuy
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Transaction ID").Value(&d.TransactionID).Validate(required("transaction_id")),
			huh.NewInput().Title("Account ID").Value(&d.AccountID).Validate(required("account_id")),
			huh.NewSelect[domain.TransactionType]().
				Title("Type").
				Options(lo.Map(domain.TransactionTypes(), func(t domain.TransactionType, _ int) huh.Option[domain.TransactionType] {
					return huh.NewOption(t.String(), t)
				})...).
				Value(&d.Type),
			huh.NewInput().Title("Security ID").Placeholder("optional").Value(&d.SecurityID),
			huh.NewInput().Title("Quantity").Placeholder("optional").Value(&d.Quantity).Validate(optionalDecimal("quantity")),
			huh.NewInput().Title("Price").Placeholder("optional").Value(&d.Price).Validate(optionalDecimal("price")),
			huh.NewInput().Title("Amount").Description("Signed: debits negative, credits positive").Value(&d.Amount).Validate(requiredDecimal("amount")),
			huh.NewInput().Title("Currency").Value(&d.Currency).Validate(currencyCode),
			huh.NewInput().Title("Trade date").Placeholder("YYYY-MM-DD").Value(&d.TradeDate).Validate(required("trade_date")),
			huh.NewInput().Title("Description").Placeholder("optional").Value(&d.Description),
		),
	).Run()
}

func (d *TransactionDraft) Request(portfolioID string) domain.CreateTransactionRequest {
	amount := parseDecimal(d.Amount)
	if amount == nil {
		z := decimal.Zero
		amount = &z
	}
	return domain.CreateTransactionRequest{
		PortfolioID:   portfolioID,
		AccountID:     strings.TrimSpace(d.AccountID),
		TransactionID: strings.TrimSpace(d.TransactionID),
		Type:          d.Type,
		SecurityID:    strings.TrimSpace(d.SecurityID),
		Quantity:      parseDecimal(d.Quantity),
		Price:         parseDecimal(d.Price),
		Amount:        *amount,
		Currency:      strings.ToUpper(strings.TrimSpace(d.Currency)),
		TradeDate:     strings.TrimSpace(d.TradeDate),
		Description:   strings.TrimSpace(d.Description),
	}
}
