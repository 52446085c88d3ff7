package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avolkov/custody-console/internal/domain"
)

// newFakeAPI spins up an httptest server with the custody API surface the
// client expects and returns a client pointed at it.
func newFakeAPI(t *testing.T, register func(r *mux.Router)) *Client {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListCustodians(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusOK, []domain.Custodian{
				{ID: "1", Code: "UBS", Name: "UBS Zurich"},
				{ID: "2", Code: "SQ", Name: "Swissquote"},
			})
		}).Methods(http.MethodGet)
	})

	got, err := c.ListCustodians(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "UBS", got[0].Code)
	assert.Equal(t, "Swissquote", got[1].Name)
}

func TestGetCustodianNotFound(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{id}", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "custodian not found"})
		}).Methods(http.MethodGet)
	})

	_, err := c.GetCustodian(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePortfolioValidationError(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{custodianId}/portfolios", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, http.StatusUnprocessableEntity, map[string]string{
				"detail": "portfolio_id already exists for this custodian",
			})
		}).Methods(http.MethodPost)
	})

	_, err := c.CreatePortfolio(context.Background(), domain.CreatePortfolioRequest{
		CustodianID: "1", PortfolioID: "P1", Name: "Growth", Currency: "USD",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, http.StatusUnprocessableEntity, verr.StatusCode)
	assert.Equal(t, "portfolio_id already exists for this custodian", verr.Message)
}

func TestServerErrorIsTransient(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/", func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}).Methods(http.MethodGet)
	})

	_, err := c.ListCustodians(context.Background())

	var terr *TransientError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
}

func TestNetworkErrorIsTransient(t *testing.T) {
	// point at a closed port
	c := New("http://127.0.0.1:1", time.Second, zap.NewNop())

	_, err := c.ListCustodians(context.Background())

	var terr *TransientError
	require.True(t, errors.As(err, &terr))
	assert.Zero(t, terr.StatusCode)
	assert.Error(t, terr.Cause)
}

func TestListTransactionsFilterEncoding(t *testing.T) {
	var gotQuery map[string][]string
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{custodianId}/transactions", func(w http.ResponseWriter, req *http.Request) {
			gotQuery = req.URL.Query()
			writeJSON(t, w, http.StatusOK, []domain.Transaction{})
		}).Methods(http.MethodGet)
	})

	_, err := c.ListTransactions(context.Background(), "1", TransactionFilter{
		PortfolioID: "P1",
		AccountID:   "A1",
		Type:        domain.TransactionTypeBuy,
		FromDate:    "2024-01-01",
		ToDate:      "2024-12-31",
		SecurityID:  "US0378331005",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"P1"}, gotQuery["portfolio_id"])
	assert.Equal(t, []string{"A1"}, gotQuery["account_id"])
	assert.Equal(t, []string{"BUY"}, gotQuery["type"])
	assert.Equal(t, []string{"2024-01-01"}, gotQuery["from_date"])
	assert.Equal(t, []string{"2024-12-31"}, gotQuery["to_date"])
	assert.Equal(t, []string{"US0378331005"}, gotQuery["isin"])
}

func TestListTransactionsEmptyFilterOmitsQuery(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{custodianId}/transactions", func(w http.ResponseWriter, req *http.Request) {
			assert.Empty(t, req.URL.RawQuery)
			writeJSON(t, w, http.StatusOK, []domain.Transaction{})
		}).Methods(http.MethodGet)
	})

	_, err := c.ListTransactions(context.Background(), "1", TransactionFilter{})
	require.NoError(t, err)
}

func TestListTransactionsReconcilesLegacyFields(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{custodianId}/transactions", func(w http.ResponseWriter, req *http.Request) {
			// legacy-shaped record straight from an older API generation
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"t1","type":"SELL","isin":"US5949181045","date":"2024-06-01","amount":"2500.00","currency":"USD"}]`)) //nolint:errcheck
		}).Methods(http.MethodGet)
	})

	got, err := c.ListTransactions(context.Background(), "1", TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TransactionTypeSell, got[0].Type)
	assert.Equal(t, "US5949181045", got[0].SecurityID)
	assert.Equal(t, "2024-06-01", got[0].TradeDate)
}

func TestCreateAccountRoundTrip(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{custodianId}/accounts", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "1", mux.Vars(req)["custodianId"])

			var body domain.CreateAccountRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "A1", body.AccountID)
			assert.Equal(t, domain.AccountTypeSecurities, body.AccountType)

			writeJSON(t, w, http.StatusCreated, domain.Account{
				ID:          "srv-9",
				AccountID:   body.AccountID,
				CustodianID: body.CustodianID,
				PortfolioID: body.PortfolioID,
				Name:        body.Name,
				AccountType: body.AccountType,
				Currency:    body.Currency,
				Balance:     decimal.Zero,
				CreatedAt:   "2024-07-01T10:00:00Z",
			})
		}).Methods(http.MethodPost)
	})

	got, err := c.CreateAccount(context.Background(), domain.CreateAccountRequest{
		CustodianID: "1",
		PortfolioID: "P1",
		AccountID:   "A1",
		Name:        "Main",
		AccountType: domain.AccountTypeSecurities,
		Currency:    "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-9", got.ID)
	assert.Equal(t, "Main", got.Name)
}

func TestDeletePortfolio(t *testing.T) {
	deleted := false
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{custodianId}/portfolios/{id}", func(w http.ResponseWriter, req *http.Request) {
			deleted = true
			assert.Equal(t, "P1", mux.Vars(req)["id"])
			w.WriteHeader(http.StatusNoContent)
		}).Methods(http.MethodDelete)
	})

	require.NoError(t, c.DeletePortfolio(context.Background(), "1", "P1"))
	assert.True(t, deleted)
}

func TestUpdateCustodian(t *testing.T) {
	c := newFakeAPI(t, func(r *mux.Router) {
		r.HandleFunc("/v1/custodian/{id}", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			// partial update: untouched fields stay out of the body
			assert.Equal(t, map[string]any{"name": "UBS Geneva"}, body)

			writeJSON(t, w, http.StatusOK, domain.Custodian{ID: "1", Code: "UBS", Name: "UBS Geneva"})
		}).Methods(http.MethodPut)
	})

	got, err := c.UpdateCustodian(context.Background(), "1", domain.UpdateCustodianRequest{Name: "UBS Geneva"})
	require.NoError(t, err)
	assert.Equal(t, "UBS Geneva", got.Name)
}
