package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeadFunnelResult agregados del embudo de leads dentro de un scope.
type LeadFunnelResult struct {
	TotalLeads     int64
	ActiveLeads    int64
	ConvertedLeads int64
	TotalRevenue   decimal.Decimal
	ByStatus       map[string]int64
	BySource       map[string]int64
}

// MonthFigures métricas del mes en curso.
type MonthFigures struct {
	Leads   int64
	Revenue decimal.Decimal
}

// PerformerResult fila del ranking de vendedores por ingresos convertidos.
type PerformerResult struct {
	UserID         string
	FullName       string
	ConvertedLeads int64
	Revenue        decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Reciben context porque son agregaciones potencialmente costosas.
type AnalyticsRepository interface {
	GetLeadFunnel(ctx context.Context, scope ScopeFilter) (*LeadFunnelResult, error)
	GetMonthFigures(ctx context.Context, scope ScopeFilter, monthStart time.Time) (*MonthFigures, error)
	GetTopPerformers(ctx context.Context, scope ScopeFilter, limit int) ([]PerformerResult, error)
}
