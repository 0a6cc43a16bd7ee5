package handler

import (
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/auth"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/gorilla/mux"
)

// Handlers groups every resource handler the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Clients  *ClientHandler
	Rates    *RateHandler
	Loans    *LoanHandler
	Payments *PaymentHandler
	Account  *AccountHandler
	Exports  *ExportHandler
	Health   *HealthHandler
}

// Authenticator attaches the caller's principal or rejects the request.
type Authenticator interface {
	Authenticate(next http.Handler) http.Handler
}

var (
	adminOnly = auth.Authorize(domain.RoleAdmin)
	staff     = auth.Authorize(domain.RoleAdmin, domain.RoleOperator)
)

// NewRouter mounts the API under /api. Everything except login and the
// health probes requires a bearer token.
func NewRouter(h Handlers, authn Authenticator) http.Handler {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(authn.Authenticate)

	handle := func(path, method string, gate func(http.Handler) http.Handler, fn http.HandlerFunc) {
		private.Handle(path, gate(fn)).Methods(method)
	}

	handle("/auth/register", http.MethodPost, adminOnly, h.Auth.Register)

	handle("/usuarios", http.MethodGet, adminOnly, h.Users.List)
	handle("/usuarios", http.MethodPost, adminOnly, h.Users.Create)
	handle("/usuarios/{id:[0-9]+}", http.MethodGet, adminOnly, h.Users.Get)
	handle("/usuarios/{id:[0-9]+}", http.MethodPut, adminOnly, h.Users.Update)
	handle("/usuarios/{id:[0-9]+}", http.MethodDelete, adminOnly, h.Users.Delete)

	handle("/clientes", http.MethodPost, staff, h.Clients.Create)
	handle("/clientes", http.MethodGet, staff, h.Clients.List)
	handle("/clientes/{id:[0-9]+}", http.MethodPut, staff, h.Clients.Update)
	handle("/clientes/{id:[0-9]+}", http.MethodDelete, staff, h.Clients.Delete)

	handle("/tasas", http.MethodPost, adminOnly, h.Rates.Create)
	handle("/tasas", http.MethodGet, staff, h.Rates.List)
	handle("/tasas/{id:[0-9]+}", http.MethodPut, adminOnly, h.Rates.Update)

	handle("/prestamos", http.MethodPost, staff, h.Loans.Create)
	handle("/prestamos", http.MethodGet, staff, h.Loans.List)
	handle("/prestamos/{id:[0-9]+}", http.MethodPut, staff, h.Loans.Update)
	handle("/prestamos/{id:[0-9]+}", http.MethodDelete, staff, h.Loans.Delete)

	handle("/pagos", http.MethodPost, staff, h.Payments.Create)
	handle("/pagos", http.MethodGet, staff, h.Payments.List)
	handle("/pagos/pago/{id:[0-9]+}", http.MethodGet, staff, h.Payments.Get)
	handle("/pagos/prestamo/{prestamoId:[0-9]+}", http.MethodGet, staff, h.Payments.ListByLoan)
	handle("/pagos/{id:[0-9]+}", http.MethodPut, staff, h.Payments.Update)
	handle("/pagos/{id:[0-9]+}", http.MethodDelete, staff, h.Payments.Delete)

	handle("/estado-cuenta/pendientes", http.MethodGet, staff, h.Account.Pending)
	handle("/estado-cuenta/pagados", http.MethodGet, staff, h.Account.Paid)
	handle("/estado-cuenta/totales", http.MethodGet, staff, h.Account.Totals)
	handle("/estado-cuenta/metricas", http.MethodGet, staff, h.Account.Metrics)
	handle("/estado-cuenta/rentabilidad", http.MethodGet, staff, h.Account.Profitability)
	handle("/estado-cuenta/flujo-caja", http.MethodGet, staff, h.Account.CashFlow)

	handle("/reportes/pendientes", http.MethodGet, staff, h.Exports.Pending)
	handle("/reportes/pagados", http.MethodGet, staff, h.Exports.Paid)
	handle("/reportes/general", http.MethodGet, staff, h.Exports.General)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Ruta no encontrada")
	})

	return response.LoggingMiddleware(response.CORSMiddleware(router))
}
