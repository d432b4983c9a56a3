// Package analytics contiene los casos de uso del dashboard comercial:
// embudo de leads, métricas del mes y ranking de vendedores.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	dashboardTopPerformers = 5
	dashboardCacheTTL      = time.Hour
)

// Cache puerto de caché best-effort para vistas agregadas. Un fallo de caché
// nunca es autoritativo: degradamos a la consulta y seguimos.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DashboardUseCase genera las estadísticas del dashboard dentro del scope
// del actor, con caché de una hora por usuario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         Cache
	log           zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache Cache, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, log: log}
}

// GetStats construye el DashboardStatsDTO para el actor.
//
// Tres llamadas en paralelo:
//  1. GetLeadFunnel        → totales, por estado, por fuente, revenue
//  2. GetMonthFigures      → leads y revenue del mes en curso
//  3. GetTopPerformers     → ranking (solo roles de dirección)
func (uc *DashboardUseCase) GetStats(ctx context.Context, actor *entity.User) (*dto.DashboardStatsDTO, error) {
	if !authz.Can(actor, authz.CapReportsView) && !actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector) {
		return nil, domain.ErrAccessDenied
	}

	key := cacheKey(actor.ID)
	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	scope := repository.ScopeFor(authz.ResolveScope(actor), actor.ID)
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type funnelResult struct {
		funnel *repository.LeadFunnelResult
		err    error
	}
	type monthResult struct {
		figures *repository.MonthFigures
		err     error
	}
	type performersResult struct {
		rows []repository.PerformerResult
		err  error
	}

	includePerformers := actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector, entity.RolePartnerDirector)

	funnelCh := make(chan funnelResult, 1)
	monthCh := make(chan monthResult, 1)
	performersCh := make(chan performersResult, 1)

	go func() {
		f, err := uc.analyticsRepo.GetLeadFunnel(ctx, scope)
		funnelCh <- funnelResult{f, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetMonthFigures(ctx, scope, monthStart)
		monthCh <- monthResult{m, err}
	}()
	go func() {
		if !includePerformers {
			performersCh <- performersResult{}
			return
		}
		rows, err := uc.analyticsRepo.GetTopPerformers(ctx, scope, dashboardTopPerformers)
		performersCh <- performersResult{rows, err}
	}()

	funnel := <-funnelCh
	month := <-monthCh
	performers := <-performersCh

	if funnel.err != nil {
		return nil, fmt.Errorf("dashboard: embudo de leads: %w", funnel.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if performers.err != nil {
		return nil, fmt.Errorf("dashboard: top performers: %w", performers.err)
	}

	stats := buildStats(funnel.funnel, month.figures, performers.rows)
	uc.toCache(ctx, key, stats)
	return stats, nil
}

// buildStats deriva las métricas compuestas del embudo.
func buildStats(funnel *repository.LeadFunnelResult, month *repository.MonthFigures, performers []repository.PerformerResult) *dto.DashboardStatsDTO {
	stats := &dto.DashboardStatsDTO{
		TotalLeads:     funnel.TotalLeads,
		ActiveLeads:    funnel.ActiveLeads,
		ConvertedLeads: funnel.ConvertedLeads,
		TotalRevenue:   funnel.TotalRevenue.Round(2),
		LeadsByStatus:  funnel.ByStatus,
		LeadsBySource:  funnel.BySource,
	}
	if funnel.TotalLeads > 0 {
		stats.ConversionRate = decimal.NewFromInt(funnel.ConvertedLeads).
			Div(decimal.NewFromInt(funnel.TotalLeads)).Round(4)
	}
	if funnel.ConvertedLeads > 0 {
		stats.AverageDealValue = funnel.TotalRevenue.
			Div(decimal.NewFromInt(funnel.ConvertedLeads)).Round(2)
	}
	if month != nil {
		stats.LeadsThisMonth = month.Leads
		stats.RevenueThisMonth = month.Revenue.Round(2)
	}
	for _, p := range performers {
		stats.TopPerformers = append(stats.TopPerformers, dto.TopPerformerDTO{
			UserID:         p.UserID,
			FullName:       p.FullName,
			ConvertedLeads: p.ConvertedLeads,
			Revenue:        p.Revenue.Round(2),
		})
	}
	return stats
}

// Invalidate borra la entrada cacheada del actor (tras mutaciones de leads).
func (uc *DashboardUseCase) Invalidate(ctx context.Context, actorID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, cacheKey(actorID)); err != nil {
		uc.log.Warn().Err(err).Str("actor_id", actorID).Msg("no se pudo invalidar la caché del dashboard")
	}
}

func cacheKey(actorID string) string {
	return "dashboard:stats:" + actorID
}

func (uc *DashboardUseCase) fromCache(ctx context.Context, key string) *dto.DashboardStatsDTO {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil
	}
	var stats dto.DashboardStatsDTO
	if err := json.Unmarshal(raw, &stats); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta, se descarta")
		return nil
	}
	return &stats
}

func (uc *DashboardUseCase) toCache(ctx context.Context, key string, stats *dto.DashboardStatsDTO) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, dashboardCacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir la caché del dashboard")
	}
}
