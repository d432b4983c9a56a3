package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard comercial.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetLeadFunnel agrega el embudo de leads dentro del scope: totales,
// conversión, revenue y desgloses por estado y por fuente.
// "Activo" = ni converted ni rejected; el revenue total solo suma convertidos.
func (r *AnalyticsRepo) GetLeadFunnel(ctx context.Context, scope repository.ScopeFilter) (*repository.LeadFunnelResult, error) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	scopeCond := leadScopeCondition(scope, "", arg)

	query := `
	SELECT
	    COUNT(*)                                                            AS total_leads,
	    COUNT(*) FILTER (WHERE status NOT IN (` + arg(entity.LeadStatusConverted) + `, ` + arg(entity.LeadStatusRejected) + `)) AS active_leads,
	    COUNT(*) FILTER (WHERE status = ` + arg(entity.LeadStatusConverted) + `)  AS converted_leads,
	    COALESCE(SUM(revenue) FILTER (WHERE status = ` + arg(entity.LeadStatusConverted) + `), 0) AS total_revenue
	FROM leads
	WHERE ` + scopeCond

	result := &repository.LeadFunnelResult{
		ByStatus: map[string]int64{},
		BySource: map[string]int64{},
	}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&result.TotalLeads, &result.ActiveLeads, &result.ConvertedLeads, &result.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLeadFunnel: %w", err)
	}

	if err := r.fillGrouped(ctx, scope, "status", result.ByStatus); err != nil {
		return nil, err
	}
	if err := r.fillGrouped(ctx, scope, "COALESCE(NULLIF(source, ''), 'unknown')", result.BySource); err != nil {
		return nil, err
	}
	return result, nil
}

// fillGrouped llena un mapa clave → conteo agrupando leads del scope.
func (r *AnalyticsRepo) fillGrouped(ctx context.Context, scope repository.ScopeFilter, expr string, dest map[string]int64) error {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	query := `SELECT ` + expr + ` AS k, COUNT(*) FROM leads WHERE ` +
		leadScopeCondition(scope, "", arg) + ` GROUP BY k`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("analytics: agrupar leads por %s: %w", expr, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

// GetMonthFigures devuelve leads creados y revenue convertido desde monthStart.
func (r *AnalyticsRepo) GetMonthFigures(ctx context.Context, scope repository.ScopeFilter, monthStart time.Time) (*repository.MonthFigures, error) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	scopeCond := leadScopeCondition(scope, "", arg)

	query := `
	SELECT
	    COUNT(*) FILTER (WHERE created_at >= ` + arg(monthStart) + `) AS month_leads,
	    COALESCE(SUM(revenue) FILTER (
	        WHERE status = ` + arg(entity.LeadStatusConverted) + ` AND updated_at >= ` + arg(monthStart) + `), 0) AS month_revenue
	FROM leads
	WHERE ` + scopeCond

	var figures repository.MonthFigures
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&figures.Leads, &figures.Revenue); err != nil {
		return nil, fmt.Errorf("analytics.GetMonthFigures: %w", err)
	}
	return &figures, nil
}

// GetTopPerformers devuelve el ranking de asignados por revenue convertido.
func (r *AnalyticsRepo) GetTopPerformers(ctx context.Context, scope repository.ScopeFilter, limit int) ([]repository.PerformerResult, error) {
	if limit <= 0 {
		limit = 5
	}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	scopeCond := leadScopeCondition(scope, "l.", arg)

	query := `
	SELECT
	    u.id,
	    u.first_name || ' ' || u.last_name                           AS full_name,
	    COUNT(*) FILTER (WHERE l.status = ` + arg(entity.LeadStatusConverted) + `) AS converted_leads,
	    COALESCE(SUM(l.revenue) FILTER (WHERE l.status = ` + arg(entity.LeadStatusConverted) + `), 0) AS revenue
	FROM leads l
	JOIN users u ON u.id = l.assigned_to
	WHERE ` + scopeCond + `
	GROUP BY u.id, u.first_name, u.last_name
	HAVING COUNT(*) FILTER (WHERE l.status = ` + arg(entity.LeadStatusConverted) + `) > 0
	ORDER BY revenue DESC
	LIMIT ` + arg(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopPerformers: %w", err)
	}
	defer rows.Close()

	var results []repository.PerformerResult
	for rows.Next() {
		var row repository.PerformerResult
		var revenue decimal.Decimal
		if err := rows.Scan(&row.UserID, &row.FullName, &row.ConvertedLeads, &revenue); err != nil {
			return nil, err
		}
		row.Revenue = revenue
		results = append(results, row)
	}
	return results, rows.Err()
}
