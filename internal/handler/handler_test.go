package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/loan-backoffice/internal/auth"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/handler"
	"github.com/segyhp/loan-backoffice/internal/mocks"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	admin    = domain.Principal{ID: 1, Name: "Admin", NationalID: "100", Role: domain.RoleAdmin}
	operator = domain.Principal{ID: 2, Name: "Operador", NationalID: "200", Role: domain.RoleOperator}
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type fixture struct {
	router   http.Handler
	tokens   *auth.Manager
	users    *mocks.MockUserService
	clients  *mocks.MockClientService
	rates    *mocks.MockRateService
	loans    *mocks.MockLoanService
	payments *mocks.MockPaymentService
	reports  *mocks.MockReportService
	exports  *mocks.MockExportService
}

func newFixture(t *testing.T, db handler.Pinger) *fixture {
	t.Helper()

	f := &fixture{
		tokens:   auth.NewManager("test-secret", "loan-backoffice", time.Hour),
		users:    &mocks.MockUserService{},
		clients:  &mocks.MockClientService{},
		rates:    &mocks.MockRateService{},
		loans:    &mocks.MockLoanService{},
		payments: &mocks.MockPaymentService{},
		reports:  &mocks.MockReportService{},
		exports:  &mocks.MockExportService{},
	}
	if db == nil {
		db = stubPinger{}
	}

	f.router = handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(f.users),
		Users:    handler.NewUserHandler(f.users),
		Clients:  handler.NewClientHandler(f.clients),
		Rates:    handler.NewRateHandler(f.rates),
		Loans:    handler.NewLoanHandler(f.loans),
		Payments: handler.NewPaymentHandler(f.payments),
		Account:  handler.NewAccountHandler(f.reports),
		Exports:  handler.NewExportHandler(f.exports),
		Health:   handler.NewHealthHandler(db, nil, time.Second),
	}, f.tokens)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, as *domain.Principal, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, err := f.tokens.Issue(*as)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRouter_AccessGate(t *testing.T) {
	f := newFixture(t, nil)
	f.clients.On("List", mock.Anything).Return([]*domain.Client{}, nil)
	f.users.On("List", mock.Anything).Return([]*domain.User{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		as     *domain.Principal
		status int
	}{
		{name: "no token", method: http.MethodGet, path: "/api/clientes", status: http.StatusUnauthorized},
		{name: "operator on staff route", method: http.MethodGet, path: "/api/clientes", as: &operator, status: http.StatusOK},
		{name: "operator on users", method: http.MethodGet, path: "/api/usuarios", as: &operator, status: http.StatusForbidden},
		{name: "admin on users", method: http.MethodGet, path: "/api/usuarios", as: &admin, status: http.StatusOK},
		{name: "operator registers rate", method: http.MethodPost, path: "/api/tasas", as: &operator, status: http.StatusForbidden},
		{name: "operator registers user", method: http.MethodPost, path: "/api/auth/register", as: &operator, status: http.StatusForbidden},
		{name: "unknown route", method: http.MethodGet, path: "/api/desconocido", as: &admin, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, tt.as, nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_TokenFromAnotherSecretIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	other := auth.NewManager("other-secret", "loan-backoffice", time.Hour)
	token, err := other.Issue(admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/clientes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.clients.AssertNotCalled(t, "List", mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	f := newFixture(t, nil)
	f.users.On("Login", mock.Anything, domain.LoginRequest{NationalID: "100", Password: "secreto"}).
		Return(&domain.LoginResponse{AccessToken: "signed", User: admin}, nil)
	f.users.On("Login", mock.Anything, domain.LoginRequest{NationalID: "100", Password: "mal"}).
		Return(nil, customError.WrapInvalidCredentials())

	rec := f.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"cedula": "100", "password": "secreto"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
	assert.Equal(t, "signed", resp.AccessToken)

	rec = f.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"cedula": "100", "password": "mal"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, customError.ErrCodeInvalidCredentials, decodeEnvelope(t, rec).Error)

	rec = f.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"cedula": "100"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientHandler_Create(t *testing.T) {
	f := newFixture(t, nil)
	req := domain.CreateClientRequest{Name: "Ana", NationalID: "12345", Phone: "5550001"}
	f.clients.On("Create", mock.Anything, req, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == operator.ID
	})).Return(&domain.Client{ID: 9, Name: "Ana", NationalID: "12345", UserID: &operator.ID}, nil)
	f.clients.On("Create", mock.Anything, domain.CreateClientRequest{Name: "Ana", NationalID: "999", Phone: "1"}, mock.Anything).
		Return(nil, customError.WrapDuplicateNationalID("999"))

	t.Run("records the operator", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/clientes", &operator, map[string]string{"nombre": "Ana", "cedula": "12345", "telefono": "5550001"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Cliente creado correctamente.", env.Message)
		var client domain.Client
		require.NoError(t, json.Unmarshal(env.Data, &client))
		assert.Equal(t, int64(9), client.ID)
	})

	t.Run("duplicate cedula", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/clientes", &operator, map[string]string{"nombre": "Ana", "cedula": "999", "telefono": "1"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/clientes", &operator, map[string]string{"nombre": "Ana"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeEnvelope(t, rec).Message, "cedula")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/clientes", &operator, "{nombre")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClientHandler_UpdateAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	phone := "5559999"
	f.clients.On("Update", mock.Anything, int64(3), domain.ClientPatch{Phone: &phone}).
		Return(&domain.Client{ID: 3, Phone: phone}, nil)
	f.clients.On("Delete", mock.Anything, int64(4)).Return(customError.WrapClientNotFound(4))

	rec := f.do(t, http.MethodPut, "/api/clientes/3", &operator, map[string]string{"telefono": phone})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/api/clientes/4", &operator, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cliente no encontrado.", decodeEnvelope(t, rec).Message)
}

func TestRateHandler_List(t *testing.T) {
	f := newFixture(t, nil)
	f.rates.On("Latest", mock.Anything).Return(nil, nil)
	f.rates.On("List", mock.Anything).Return([]*domain.Rate{{ID: 1, Value: decimal.NewFromInt(36)}}, nil)

	rec := f.do(t, http.MethodGet, "/api/tasas?ultima=true", &operator, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(decodeEnvelope(t, rec).Data))

	rec = f.do(t, http.MethodGet, "/api/tasas", &operator, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rates []domain.Rate
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &rates))
	require.Len(t, rates, 1)
	assert.True(t, rates[0].Value.Equal(decimal.NewFromInt(36)))
}

func TestRateHandler_CreateValidatesValue(t *testing.T) {
	f := newFixture(t, nil)
	f.rates.On("Create", mock.Anything, mock.MatchedBy(func(req domain.CreateRateRequest) bool {
		return req.Value.Equal(decimal.RequireFromString("36.5"))
	})).Return(&domain.Rate{ID: 2, Value: decimal.RequireFromString("36.5")}, nil)

	rec := f.do(t, http.MethodPost, "/api/tasas", &admin, `{"valor": 36.5}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/tasas", &admin, `{"valor": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/tasas", &admin, `{"valor": -3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/tasas", &admin, `{"valor": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/tasas", &admin, `{"valor": 36.12345}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoanHandler(t *testing.T) {
	f := newFixture(t, nil)
	clientID := int64(5)
	f.loans.On("List", mock.Anything, domain.LoanFilter{ClientID: &clientID}).Return([]*domain.Loan{{ID: 1, ClientID: 5}}, nil)
	f.loans.On("List", mock.Anything, domain.LoanFilter{}).Return([]*domain.Loan{}, nil)
	f.loans.On("Create", mock.Anything, mock.MatchedBy(func(req domain.CreateLoanRequest) bool {
		return req.ClientID == 5 && req.Principal.Equal(decimal.NewFromInt(1000)) && req.Percentage.Equal(decimal.NewFromInt(10))
	})).Return(&domain.Loan{ID: 7, ClientID: 5, TotalAmount: decimal.NewFromInt(1100), PendingBalance: decimal.NewFromInt(1100), Status: domain.LoanStatusPending}, nil)
	f.loans.On("Create", mock.Anything, mock.MatchedBy(func(req domain.CreateLoanRequest) bool {
		return req.ClientID == 6
	})).Return(nil, customError.WrapNoRateOnFile())

	t.Run("filter by client", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/prestamos?clienteId=5", &operator, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var loans []domain.Loan
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &loans))
		assert.Len(t, loans, 1)
	})

	t.Run("unfiltered", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/prestamos", &operator, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad client filter", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/prestamos?clienteId=abc", &operator, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/prestamos", &operator, `{"clienteId": 5, "montoPrestado": 1000, "porcentaje": 10}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var loan domain.Loan
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &loan))
		assert.True(t, loan.PendingBalance.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("no rate on file", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/prestamos", &operator, `{"clienteId": 6, "montoPrestado": 1000, "porcentaje": 10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, customError.ErrCodeNoRateOnFile, decodeEnvelope(t, rec).Error)
	})

	t.Run("non-positive principal", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/prestamos", &operator, `{"clienteId": 5, "montoPrestado": 0, "porcentaje": 10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("terms beyond stored precision", func(t *testing.T) {
		for _, body := range []string{
			`{"clienteId": 5, "montoPrestado": 1000.005, "porcentaje": 10}`,
			`{"clienteId": 5, "montoPrestado": 1000, "porcentaje": 10.00001}`,
			`{"clienteId": 5, "montoPrestado": 1000, "porcentaje": 100000}`,
		} {
			rec := f.do(t, http.MethodPost, "/api/prestamos", &operator, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, customError.ErrCodeValidation, decodeEnvelope(t, rec).Error, body)
		}

		rec := f.do(t, http.MethodPut, "/api/prestamos/7", &operator, `{"montoPrestado": 99.999}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler(t *testing.T) {
	f := newFixture(t, nil)
	f.payments.On("Apply", mock.Anything, mock.MatchedBy(func(req domain.CreatePaymentRequest) bool {
		return req.LoanID == 7 && req.Amount.Equal(decimal.NewFromInt(300))
	})).Return(&domain.PaymentResult{
		Payment:    &domain.Payment{ID: 1, LoanID: 7, Amount: decimal.NewFromInt(300)},
		NewBalance: decimal.NewFromInt(800),
		LoanStatus: domain.LoanStatusPending,
	}, nil)
	f.payments.On("Apply", mock.Anything, mock.MatchedBy(func(req domain.CreatePaymentRequest) bool {
		return req.LoanID == 7 && req.Amount.Equal(decimal.NewFromInt(5000))
	})).Return(nil, customError.WrapOverpayment("800.00"))
	f.payments.On("Apply", mock.Anything, mock.MatchedBy(func(req domain.CreatePaymentRequest) bool {
		return req.LoanID == 7 && req.Amount.Equal(decimal.RequireFromString("300.5"))
	})).Return(&domain.PaymentResult{
		Payment:    &domain.Payment{ID: 3, LoanID: 7, Amount: decimal.RequireFromString("300.5")},
		NewBalance: decimal.RequireFromString("799.5"),
		LoanStatus: domain.LoanStatusPending,
	}, nil)
	f.payments.On("List", mock.Anything, 5).Return([]*domain.Payment{}, nil)
	f.payments.On("List", mock.Anything, 0).Return([]*domain.Payment{}, nil)
	f.payments.On("Get", mock.Anything, int64(1)).Return(&domain.Payment{ID: 1}, nil)
	f.payments.On("ListByLoan", mock.Anything, int64(7)).Return([]*domain.Payment{{ID: 1}}, nil)
	f.payments.On("Delete", mock.Anything, int64(1)).Return(&domain.PaymentResult{NewBalance: decimal.NewFromInt(1100), LoanStatus: domain.LoanStatusPending}, nil)
	f.payments.On("Edit", mock.Anything, int64(2), mock.Anything).Return(nil, customError.WrapNegativeBalance("100.00"))

	t.Run("apply", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/pagos", &operator, `{"prestamoId": 7, "monto": 300}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var result domain.PaymentResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(800)))
		assert.Equal(t, domain.LoanStatusPending, result.LoanStatus)
	})

	t.Run("overpayment", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/pagos", &operator, `{"prestamoId": 7, "monto": 5000}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, customError.ErrCodeOverpayment, env.Error)
		assert.Contains(t, env.Message, "800.00")
	})

	t.Run("missing amount", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/pagos", &operator, `{"prestamoId": 7}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("amount with cents", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/pagos", &operator, `{"prestamoId": 7, "monto": 300.50}`)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("amount below a cent", func(t *testing.T) {
		for _, body := range []string{
			`{"prestamoId": 7, "monto": 0.004}`,
			`{"prestamoId": 7, "monto": 1099.995}`,
		} {
			rec := f.do(t, http.MethodPost, "/api/pagos", &operator, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, customError.ErrCodeValidation, decodeEnvelope(t, rec).Error, body)
		}

		rec := f.do(t, http.MethodPut, "/api/pagos/1", &operator, `{"monto": 10.001}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.payments.AssertNotCalled(t, "Edit", mock.Anything, int64(1), mock.Anything)
	})

	t.Run("list with limit", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/pagos?limit=5", &operator, nil).Code)
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/pagos", &operator, nil).Code)
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/pagos?limit=-1", &operator, nil).Code)
	})

	t.Run("lookups", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/pagos/pago/1", &operator, nil).Code)
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/pagos/prestamo/7", &operator, nil).Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, "/api/pagos/1", &operator, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var result domain.PaymentResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("edit to negative balance", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/pagos/2", &operator, `{"monto": 900}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, customError.ErrCodeNegativeBalance, decodeEnvelope(t, rec).Error)
	})

	t.Run("zero id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/api/pagos/0", &operator, nil).Code)
	})
}

func TestAccountHandler(t *testing.T) {
	f := newFixture(t, nil)
	f.reports.On("Totals", mock.Anything).Return(&domain.Totals{Principal: decimal.Zero, PendingBalance: decimal.Zero, Collected: decimal.Zero}, nil)
	f.reports.On("CashFlow", mock.Anything, domain.CashFlowMonthly).Return([]domain.CashFlowBucket{}, nil)
	f.reports.On("CashFlow", mock.Anything, domain.CashFlowAnnual).Return([]domain.CashFlowBucket{
		{Period: "2025", Inflow: decimal.NewFromInt(100), Outflow: decimal.NewFromInt(1000)},
		{Period: "2026", Inflow: decimal.NewFromInt(75), Outflow: decimal.NewFromInt(300)},
	}, nil)
	f.reports.On("MonthlyMetrics", mock.Anything).Return(nil, errors.New("connection reset"))

	rec := f.do(t, http.MethodGet, "/api/estado-cuenta/totales", &operator, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals domain.Totals
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &totals))
	assert.Equal(t, int64(0), totals.TotalLoans)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/estado-cuenta/flujo-caja", &operator, nil).Code)

	rec = f.do(t, http.MethodGet, "/api/estado-cuenta/flujo-caja?periodo=anual", &operator, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var series []domain.CashFlowBucket
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &series))
	assert.Len(t, series, 2)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/estado-cuenta/flujo-caja?periodo=semanal", &operator, nil).Code)

	rec = f.do(t, http.MethodGet, "/api/estado-cuenta/metricas", &operator, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestExportHandler(t *testing.T) {
	f := newFixture(t, nil)
	f.exports.On("General", mock.Anything).Return(&domain.Document{
		FileName:    "reporte_general_20261018_093000.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/reportes/general", &operator, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reporte_general_20261018_093000.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	healthy := newFixture(t, stubPinger{})
	rec := healthy.do(t, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)

	down := newFixture(t, stubPinger{err: errors.New("dial tcp: refused")})
	rec = down.do(t, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.Equal(t, http.StatusOK, down.do(t, http.MethodGet, "/health", nil, nil).Code)
}
