package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Embudo de leads del scope del actor, con métricas derivadas y ranking.
type DashboardStatsDTO struct {
	TotalLeads     int64           `json:"total_leads"`
	ActiveLeads    int64           `json:"active_leads"`
	ConvertedLeads int64           `json:"converted_leads"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	// ConversionRate es fracción (0–1), no porcentaje.
	ConversionRate   decimal.Decimal `json:"conversion_rate"`
	AverageDealValue decimal.Decimal `json:"average_deal_value"`

	LeadsThisMonth   int64           `json:"leads_this_month"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`

	LeadsByStatus map[string]int64 `json:"leads_by_status"`
	LeadsBySource map[string]int64 `json:"leads_by_source"`

	// Solo para Admin, Group Director y Partner Director; vacío para el resto.
	TopPerformers []TopPerformerDTO `json:"top_performers,omitempty"`
}

// TopPerformerDTO fila del ranking de vendedores por ingresos convertidos.
type TopPerformerDTO struct {
	UserID         string          `json:"user_id"`
	FullName       string          `json:"full_name"`
	ConvertedLeads int64           `json:"converted_leads"`
	Revenue        decimal.Decimal `json:"revenue"`
}
