package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/config"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
	"github.com/segyhp/loan-backoffice/pkg/utils"

	"github.com/shopspring/decimal"
)

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ReportService derives the account-status aggregates. Results are cached
// until the next write invalidates them.
type ReportService struct {
	ReportRepo repository.ReportRepository
	LoanRepo   repository.LoanRepository
	cache      cache.Cache
	ttl        time.Duration
	location   *time.Location
	now        func() time.Time
}

func NewReportService(
	reportRepo repository.ReportRepository,
	loanRepo repository.LoanRepository,
	c cache.Cache,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		ReportRepo: reportRepo,
		LoanRepo:   loanRepo,
		cache:      c,
		ttl:        cfg.Business.ReportCacheTTL,
		location:   cfg.BusinessLocation(),
		now:        time.Now,
	}
}

func (s *ReportService) localNow() time.Time {
	return s.now().In(s.location)
}

// cached serves key from the cache or computes and stores it. The generation
// is read before loading so a write landing mid-load discards the result.
func cached[T any](ctx context.Context, s *ReportService, key string, load func(context.Context) (T, error)) (T, error) {
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		slog.WarnContext(ctx, "report cache unavailable", "key", key, "error", err)
		return load(ctx)
	}

	var hit T
	found, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		slog.WarnContext(ctx, "report cache read failed", "key", key, "error", err)
	} else if found {
		return hit, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := s.cache.Set(ctx, key, value, gen, s.ttl); err != nil {
		slog.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
	}
	return value, nil
}

func (s *ReportService) Totals(ctx context.Context) (*domain.Totals, error) {
	return cached(ctx, s, "totales", func(ctx context.Context) (*domain.Totals, error) {
		totals, err := s.ReportRepo.Totals(ctx)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		return totals, nil
	})
}

// MonthlyMetrics compares clients and loans created this calendar month with
// the previous one.
func (s *ReportService) MonthlyMetrics(ctx context.Context) (*domain.MonthlyMetrics, error) {
	now := s.localNow()
	key := "metricas:" + utils.MonthKey(now)

	return cached(ctx, s, key, func(ctx context.Context) (*domain.MonthlyMetrics, error) {
		prevStart, curStart, nextStart := utils.MonthWindows(now)

		clients, err := s.growth(ctx, s.ReportRepo.CountClientsCreatedBetween, prevStart, curStart, nextStart)
		if err != nil {
			return nil, err
		}
		loans, err := s.growth(ctx, s.ReportRepo.CountLoansCreatedBetween, prevStart, curStart, nextStart)
		if err != nil {
			return nil, err
		}

		return &domain.MonthlyMetrics{
			Month:   utils.MonthKey(now),
			Clients: clients,
			Loans:   loans,
		}, nil
	})
}

type countFunc func(ctx context.Context, from, to time.Time) (int64, error)

func (s *ReportService) growth(ctx context.Context, count countFunc, prevStart, curStart, nextStart time.Time) (domain.GrowthMetric, error) {
	previous, err := count(ctx, prevStart, curStart)
	if err != nil {
		return domain.GrowthMetric{}, customError.WrapDatabaseError(err)
	}
	current, err := count(ctx, curStart, nextStart)
	if err != nil {
		return domain.GrowthMetric{}, customError.WrapDatabaseError(err)
	}

	return domain.GrowthMetric{
		Current:    current,
		Previous:   previous,
		Percentage: utils.GrowthPercentage(previous, current),
	}, nil
}

// AnnualProfitability returns twelve calendar-ordered buckets for the current
// year: principal lent and interest earned by loans created each month.
func (s *ReportService) AnnualProfitability(ctx context.Context) (*domain.AnnualProfitability, error) {
	now := s.localNow()
	key := "rentabilidad:" + utils.YearKey(now)

	return cached(ctx, s, key, func(ctx context.Context) (*domain.AnnualProfitability, error) {
		start, end := utils.YearWindow(now)
		figures, err := s.ReportRepo.LoanFigures(ctx, start, end)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		report := &domain.AnnualProfitability{
			Year:   now.Year(),
			Months: make([]domain.ProfitabilityBucket, 12),
		}
		for i := range report.Months {
			report.Months[i] = domain.ProfitabilityBucket{
				Month:      i + 1,
				Name:       monthNames[i],
				Investment: decimal.Zero,
				Profit:     decimal.Zero,
			}
		}

		for _, f := range figures {
			b := &report.Months[f.CreatedAt.In(s.location).Month()-1]
			b.Investment = b.Investment.Add(f.Principal)
			b.Profit = b.Profit.Add(f.TotalAmount.Sub(f.Principal))
		}

		return report, nil
	})
}

// CashFlow buckets payments (inflow) and disbursed principal (outflow) by
// creation time. Keys sort chronologically as strings.
func (s *ReportService) CashFlow(ctx context.Context, period domain.CashFlowPeriod) ([]domain.CashFlowBucket, error) {
	keyOf, err := bucketKey(period)
	if err != nil {
		return nil, err
	}

	return cached(ctx, s, "flujo-caja:"+string(period), func(ctx context.Context) ([]domain.CashFlowBucket, error) {
		payments, err := s.ReportRepo.PaymentFigures(ctx, time.Time{}, time.Time{})
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		loans, err := s.ReportRepo.LoanFigures(ctx, time.Time{}, time.Time{})
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		buckets := map[string]*domain.CashFlowBucket{}
		bucket := func(t time.Time) *domain.CashFlowBucket {
			k := keyOf(t.In(s.location))
			b, ok := buckets[k]
			if !ok {
				b = &domain.CashFlowBucket{Period: k, Inflow: decimal.Zero, Outflow: decimal.Zero}
				buckets[k] = b
			}
			return b
		}

		for _, p := range payments {
			b := bucket(p.CreatedAt)
			b.Inflow = b.Inflow.Add(p.Amount)
		}
		for _, l := range loans {
			b := bucket(l.CreatedAt)
			b.Outflow = b.Outflow.Add(l.Principal)
		}

		series := make([]domain.CashFlowBucket, 0, len(buckets))
		for _, b := range buckets {
			series = append(series, *b)
		}
		sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })

		return series, nil
	})
}

func bucketKey(period domain.CashFlowPeriod) (func(time.Time) string, error) {
	switch period {
	case domain.CashFlowMonthly:
		return utils.MonthKey, nil
	case domain.CashFlowQuarterly:
		return utils.QuarterKey, nil
	case domain.CashFlowAnnual:
		return utils.YearKey, nil
	default:
		return nil, customError.WrapValidation("Periodo inválido. Use mensual, trimestral o anual.", nil)
	}
}

func (s *ReportService) PendingLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.loansByStatus(ctx, domain.LoanStatusPending)
}

func (s *ReportService) PaidLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.loansByStatus(ctx, domain.LoanStatusPaid)
}

func (s *ReportService) loansByStatus(ctx context.Context, status string) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}
