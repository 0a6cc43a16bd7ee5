package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "not found", err: WrapLoanNotFound(7), expected: KindNotFound},
		{name: "conflict", err: WrapDuplicateNationalID("123"), expected: KindConflict},
		{name: "invalid state", err: WrapOverpayment("100"), expected: KindInvalidState},
		{name: "validation", err: WrapValidation("bad", nil), expected: KindValidation},
		{name: "unauthenticated", err: WrapInvalidCredentials(), expected: KindUnauthenticated},
		{name: "forbidden", err: WrapForbidden("operador"), expected: KindForbidden},
		{name: "database", err: WrapDatabaseError(sql.ErrConnDone), expected: KindInternal},
		{name: "plain error", err: errors.New("boom"), expected: KindInternal},
		{name: "wrapped business error", err: fmt.Errorf("ctx: %w", WrapPaymentNotFound(3)), expected: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestWrappedSentinels(t *testing.T) {
	assert.ErrorIs(t, WrapLoanNotFound(1), ErrLoanNotFound)
	assert.ErrorIs(t, WrapNoRateOnFile(), ErrNoRateOnFile)
	assert.ErrorIs(t, WrapDatabaseError(sql.ErrNoRows), sql.ErrNoRows)
}

func TestOverpaymentMessageIncludesBalance(t *testing.T) {
	err := WrapOverpayment("350.50")
	assert.Contains(t, err.Message, "350.50")
	assert.Contains(t, err.Error(), ErrCodeOverpayment)
}
