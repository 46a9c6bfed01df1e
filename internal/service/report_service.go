package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/denialp88/tickets/internal/cache"
	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/report"
	"github.com/denialp88/tickets/internal/repository"
)

const dashboardCacheTTL = 30 * time.Second

// ReportService reads store snapshots and feeds them through the aggregation
// functions in the report package.
type ReportService interface {
	Dashboard(ctx context.Context) (report.DashboardStats, error)
	ProfitLoss(ctx context.Context) (report.ProfitLossReport, error)
	Commission(ctx context.Context) (report.CommissionReport, error)
	BookerEarnings(ctx context.Context) (report.BookerEarnings, error)
}

type reportService struct {
	eventRepo   repository.EventRepository
	txnRepo     repository.TransactionRepository
	expenseRepo repository.ExpenseRepository
	cache       *cache.Client
}

// NewReportService creates a new report service.
func NewReportService(
	eventRepo repository.EventRepository,
	txnRepo repository.TransactionRepository,
	expenseRepo repository.ExpenseRepository,
	cache *cache.Client,
) ReportService {
	return &reportService{
		eventRepo:   eventRepo,
		txnRepo:     txnRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
	}
}

func (s *reportService) snapshot(ctx context.Context) ([]model.Event, []model.TransactionWithEvent, []model.ExpenseWithEvent, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list events: %w", err)
	}
	txns, err := s.txnRepo.ListAllWithEventName(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list transactions: %w", err)
	}
	expenses, err := s.expenseRepo.ListAllWithEventName(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list expenses: %w", err)
	}
	return events, txns, expenses, nil
}

// Dashboard returns the global stats, served from a short-lived cache since
// the admin dashboard polls it.
func (s *reportService) Dashboard(ctx context.Context) (report.DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached report.DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	events, txns, expenses, err := s.snapshot(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}

	stats := report.Dashboard(events, txns, expenses)
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
	}
	return stats, nil
}

func (s *reportService) ProfitLoss(ctx context.Context) (report.ProfitLossReport, error) {
	events, txns, expenses, err := s.snapshot(ctx)
	if err != nil {
		return report.ProfitLossReport{}, err
	}
	return report.ProfitLoss(events, txns, expenses), nil
}

func (s *reportService) Commission(ctx context.Context) (report.CommissionReport, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return report.CommissionReport{}, fmt.Errorf("list events: %w", err)
	}
	txns, err := s.txnRepo.ListAllWithEventName(ctx)
	if err != nil {
		return report.CommissionReport{}, fmt.Errorf("list transactions: %w", err)
	}
	return report.Commission(events, txns), nil
}

// BookerEarnings computes the booker view over the full transaction set;
// transactions carry no owning booker, so every booker sees the same figures.
func (s *reportService) BookerEarnings(ctx context.Context) (report.BookerEarnings, error) {
	txns, err := s.txnRepo.ListAllWithEventName(ctx)
	if err != nil {
		return report.BookerEarnings{}, fmt.Errorf("list transactions: %w", err)
	}
	return report.Earnings(txns), nil
}
