package service

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/report"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

// ExportService renders the reporting views as XLSX workbooks.
type ExportService struct {
	Reports *ReportService
	now     func() time.Time
}

func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{
		Reports: reports,
		now:     time.Now,
	}
}

func (s *ExportService) fileName(base string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, at.Format("20060102_150405"))
}

func (s *ExportService) Pending(ctx context.Context) (*domain.Document, error) {
	loans, err := s.Reports.PendingLoans(ctx)
	if err != nil {
		return nil, err
	}

	at := s.now().In(s.Reports.location)
	data, err := report.Loans("Reporte de Préstamos Pendientes", report.PendingColumns, loans, at)
	if err != nil {
		return nil, customError.WrapInternal("render pending report", err)
	}
	return &domain.Document{FileName: s.fileName("prestamos_pendientes", at), ContentType: report.ContentType, Data: data}, nil
}

func (s *ExportService) Paid(ctx context.Context) (*domain.Document, error) {
	loans, err := s.Reports.PaidLoans(ctx)
	if err != nil {
		return nil, err
	}

	at := s.now().In(s.Reports.location)
	data, err := report.Loans("Reporte de Préstamos Pagados", report.PaidColumns, loans, at)
	if err != nil {
		return nil, customError.WrapInternal("render paid report", err)
	}
	return &domain.Document{FileName: s.fileName("prestamos_pagados", at), ContentType: report.ContentType, Data: data}, nil
}

func (s *ExportService) General(ctx context.Context) (*domain.Document, error) {
	totals, err := s.Reports.Totals(ctx)
	if err != nil {
		return nil, err
	}

	at := s.now().In(s.Reports.location)
	data, err := report.Summary(totals, at)
	if err != nil {
		return nil, customError.WrapInternal("render general report", err)
	}
	return &domain.Document{FileName: s.fileName("reporte_general", at), ContentType: report.ContentType, Data: data}, nil
}
