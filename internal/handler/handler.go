package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/segyhp/loan-backoffice/internal/domain"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
	"github.com/segyhp/loan-backoffice/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type ClientService interface {
	Create(ctx context.Context, req domain.CreateClientRequest, createdBy *int64) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type RateService interface {
	Create(ctx context.Context, req domain.CreateRateRequest) (*domain.Rate, error)
	Latest(ctx context.Context) (*domain.Rate, error)
	List(ctx context.Context) ([]*domain.Rate, error)
	Update(ctx context.Context, id int64, patch domain.RatePatch) (*domain.Rate, error)
}

type LoanService interface {
	Create(ctx context.Context, req domain.CreateLoanRequest) (*domain.Loan, error)
	List(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error)
	Update(ctx context.Context, id int64, patch domain.LoanPatch) (*domain.Loan, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentService interface {
	Apply(ctx context.Context, req domain.CreatePaymentRequest) (*domain.PaymentResult, error)
	Edit(ctx context.Context, id int64, req domain.UpdatePaymentRequest) (*domain.PaymentResult, error)
	Delete(ctx context.Context, id int64) (*domain.PaymentResult, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	ListByLoan(ctx context.Context, loanID int64) ([]*domain.Payment, error)
	List(ctx context.Context, limit int) ([]*domain.Payment, error)
}

type UserService interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type ReportService interface {
	PendingLoans(ctx context.Context) ([]*domain.Loan, error)
	PaidLoans(ctx context.Context) ([]*domain.Loan, error)
	Totals(ctx context.Context) (*domain.Totals, error)
	MonthlyMetrics(ctx context.Context) (*domain.MonthlyMetrics, error)
	AnnualProfitability(ctx context.Context) (*domain.AnnualProfitability, error)
	CashFlow(ctx context.Context, period domain.CashFlowPeriod) ([]domain.CashFlowBucket, error)
}

type ExportService interface {
	Pending(ctx context.Context) (*domain.Document, error)
	Paid(ctx context.Context) (*domain.Document, error)
	General(ctx context.Context) (*domain.Document, error)
}

// newValidator returns a validator that understands decimal amounts.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("decimals", decimalPlaces)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decimalPlaces backs the decimals=N tag. The custom type func hands the
// field over as a float, so the decimal is read back off the parent struct.
func decimalPlaces(fl validator.FieldLevel) bool {
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}

	field := reflect.Indirect(fl.Parent()).FieldByName(fl.StructFieldName())
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return utils.FitsScale(d, int32(places))
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, v *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return customError.WrapValidation("El cuerpo de la solicitud es obligatorio.", err)
		}
		return customError.WrapValidation("Formato de solicitud inválido.", err)
	}

	if err := v.Struct(dst); err != nil {
		return customError.WrapValidation(validationMessage(err), err)
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Datos inválidos."
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return "Campos inválidos: " + strings.Join(fields, ", ")
}

// pathID parses a numeric route variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, customError.WrapValidation("Identificador inválido.", err)
	}
	return id, nil
}
