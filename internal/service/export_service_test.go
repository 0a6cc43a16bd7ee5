package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/mocks"
	"github.com/segyhp/loan-backoffice/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportService(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
	reports := &mocks.MockReportRepository{}
	loans := &mocks.MockLoanRepository{}
	svc := NewExportService(newReportService(reports, loans, now))
	svc.now = func() time.Time { return now }

	loans.On("ListByStatus", mock.Anything, domain.LoanStatusPending).Return([]*domain.Loan{newTestLoan(1, "1100", "800")}, nil)
	loans.On("ListByStatus", mock.Anything, domain.LoanStatusPaid).Return([]*domain.Loan{}, nil)
	reports.On("Totals", mock.Anything).Return(&domain.Totals{Principal: decimal.Zero, PendingBalance: decimal.Zero, Collected: decimal.Zero}, nil)

	pending, err := svc.Pending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "prestamos_pendientes_20261018_093000.xlsx", pending.FileName)
	assert.Equal(t, report.ContentType, pending.ContentType)
	assert.NotEmpty(t, pending.Data)

	paid, err := svc.Paid(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(paid.FileName, "prestamos_pagados_"))

	general, err := svc.General(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(general.FileName, "reporte_general_"))
	assert.NotEmpty(t, general.Data)
}
