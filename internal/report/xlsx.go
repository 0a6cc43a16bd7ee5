package report

import (
	"fmt"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of every workbook rendered here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LoanColumn renders one column of a loan listing.
type LoanColumn struct {
	Header string
	Value  func(l *domain.Loan) any
}

func clientName(l *domain.Loan) any {
	if l.Client == nil {
		return "Desconocido"
	}
	return l.Client.Name
}

func clientNationalID(l *domain.Loan) any {
	if l.Client == nil {
		return "N/A"
	}
	return l.Client.NationalID
}

var PendingColumns = []LoanColumn{
	{Header: "Cliente", Value: clientName},
	{Header: "Cédula", Value: clientNationalID},
	{Header: "Monto Prestado", Value: func(l *domain.Loan) any { return l.Principal.InexactFloat64() }},
	{Header: "Saldo Pendiente", Value: func(l *domain.Loan) any { return l.PendingBalance.InexactFloat64() }},
	{Header: "Fecha", Value: func(l *domain.Loan) any { return l.RegisteredAt.Format("2006-01-02") }},
}

var PaidColumns = []LoanColumn{
	{Header: "Cliente", Value: clientName},
	{Header: "Monto Prestado", Value: func(l *domain.Loan) any { return l.Principal.InexactFloat64() }},
	{Header: "Total Cancelado", Value: func(l *domain.Loan) any { return l.TotalAmount.InexactFloat64() }},
	{Header: "Fecha", Value: func(l *domain.Loan) any { return l.RegisteredAt.Format("2006-01-02") }},
}

// Loans renders a single-sheet workbook listing loans under title.
func Loans(title string, columns []LoanColumn, loans []*domain.Loan, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Prestamos"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: title, Created: generatedAt.Format(time.RFC3339)})

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.SetCellValue(sheet, "A2", "Generado: "+generatedAt.Format("2006-01-02 15:04"))

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	const headerRow = 4
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheet, cell, col.Header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, loan := range loans {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, headerRow+1+rowIdx)
			if err := f.SetCellValue(sheet, cell, col.Value(loan)); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary renders the general portfolio summary as label/value rows.
func Summary(totals *domain.Totals, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Resumen"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	rows := [][2]any{
		{"Resumen General de Préstamos", ""},
		{"Generado", generatedAt.Format("2006-01-02 15:04")},
		{"", ""},
		{"Total de Préstamos", totals.TotalLoans},
		{"Préstamos Pendientes", totals.PendingLoans},
		{"Préstamos Pagados", totals.PaidLoans},
		{"Monto Total Prestado", totals.Principal.InexactFloat64()},
		{"Saldo Total Pendiente", totals.PendingBalance.InexactFloat64()},
		{"Total Cobrado", totals.Collected.InexactFloat64()},
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &[]any{row[0], row[1]}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
