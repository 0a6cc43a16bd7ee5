package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrRateNotFound        = errors.New("rate not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoRateOnFile        = errors.New("no rate on file")
	ErrDuplicateNationalID = errors.New("national id already registered")
	ErrOverpayment         = errors.New("payment exceeds pending balance")
	ErrNegativeBalance     = errors.New("payment edit would make the balance negative")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
)

// Kind classifies a BusinessError for the transport boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvalidState
	KindUnauthenticated
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// BusinessError represents a business logic error
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(kind Kind, code, message string, err error) *BusinessError {
	return &BusinessError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsBusiness unwraps err down to its BusinessError, if any.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// KindOf reports the Kind of err. Anything that is not a BusinessError is internal.
func KindOf(err error) Kind {
	if be, ok := AsBusiness(err); ok {
		return be.Kind
	}
	return KindInternal
}

// Error codes
const (
	ErrCodeClientNotFound      = "CLIENT_NOT_FOUND"
	ErrCodeLoanNotFound        = "LOAN_NOT_FOUND"
	ErrCodePaymentNotFound     = "PAYMENT_NOT_FOUND"
	ErrCodeRateNotFound        = "RATE_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeNoRateOnFile        = "NO_RATE_ON_FILE"
	ErrCodeDuplicateNationalID = "DUPLICATE_NATIONAL_ID"
	ErrCodeOverpayment         = "PAYMENT_EXCEEDS_BALANCE"
	ErrCodeNegativeBalance     = "NEGATIVE_BALANCE"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated     = "UNAUTHENTICATED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

func WrapClientNotFound(id int64) *BusinessError {
	return NewBusinessError(KindNotFound, ErrCodeClientNotFound,
		"Cliente no encontrado.", fmt.Errorf("client %d: %w", id, ErrClientNotFound))
}

func WrapLoanNotFound(id int64) *BusinessError {
	return NewBusinessError(KindNotFound, ErrCodeLoanNotFound,
		"Préstamo no encontrado.", fmt.Errorf("loan %d: %w", id, ErrLoanNotFound))
}

func WrapPaymentNotFound(id int64) *BusinessError {
	return NewBusinessError(KindNotFound, ErrCodePaymentNotFound,
		"Pago no encontrado.", fmt.Errorf("payment %d: %w", id, ErrPaymentNotFound))
}

func WrapRateNotFound(id int64) *BusinessError {
	return NewBusinessError(KindNotFound, ErrCodeRateNotFound,
		"Tasa no encontrada.", fmt.Errorf("rate %d: %w", id, ErrRateNotFound))
}

func WrapUserNotFound(id int64) *BusinessError {
	return NewBusinessError(KindNotFound, ErrCodeUserNotFound,
		"Usuario no encontrado.", fmt.Errorf("user %d: %w", id, ErrUserNotFound))
}

func WrapNoRateOnFile() *BusinessError {
	return NewBusinessError(KindInvalidState, ErrCodeNoRateOnFile,
		"No hay tasa registrada en el sistema.", ErrNoRateOnFile)
}

func WrapDuplicateNationalID(nationalID string) *BusinessError {
	return NewBusinessError(KindConflict, ErrCodeDuplicateNationalID,
		"La cédula ya está registrada.", fmt.Errorf("%s: %w", nationalID, ErrDuplicateNationalID))
}

func WrapOverpayment(pendingBalance string) *BusinessError {
	return NewBusinessError(KindInvalidState, ErrCodeOverpayment,
		fmt.Sprintf("El monto supera el saldo pendiente (%s)", pendingBalance), ErrOverpayment)
}

func WrapNegativeBalance(pendingBalance string) *BusinessError {
	return NewBusinessError(KindInvalidState, ErrCodeNegativeBalance,
		fmt.Sprintf("El nuevo monto causaría un saldo negativo. Saldo actual: %s", pendingBalance), ErrNegativeBalance)
}

func WrapValidation(message string, err error) *BusinessError {
	if err == nil {
		err = ErrInvalidInput
	}
	return NewBusinessError(KindValidation, ErrCodeValidation, message, err)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(KindUnauthenticated, ErrCodeInvalidCredentials,
		"Credenciales inválidas", ErrInvalidCredentials)
}

func WrapUnauthenticated(message string, err error) *BusinessError {
	if err == nil {
		err = ErrUnauthenticated
	}
	return NewBusinessError(KindUnauthenticated, ErrCodeUnauthenticated, message, err)
}

func WrapForbidden(role string) *BusinessError {
	return NewBusinessError(KindForbidden, ErrCodeForbidden,
		"Acceso denegado", fmt.Errorf("role %q: %w", role, ErrForbidden))
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		KindInternal,
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		KindInternal,
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

func WrapInternal(message string, err error) *BusinessError {
	return NewBusinessError(KindInternal, ErrCodeInternal, message, err)
}
