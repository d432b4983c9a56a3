package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/scheduling"
)

// Reloj fijo: lunes 5 de enero de 2026, 09:00 local.
var clock = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.Local)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.Local)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateTiming — ventana de negocio
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateTiming_DiaLaboralDentroDeHorario_Acepta(t *testing.T) {
	martes := clock.AddDate(0, 0, 1) // martes 6 de enero
	assert.NoError(t, scheduling.ValidateTiming(at(martes, 14, 0), clock),
		"martes a las 14:00 es un horario válido")
}

func TestValidateTiming_Sabado_Rechaza(t *testing.T) {
	sabado := clock.AddDate(0, 0, 5) // sábado 10 de enero
	err := scheduling.ValidateTiming(at(sabado, 10, 0), clock)
	require.Error(t, err, "sábado 10:00 debe rechazarse aunque la hora sea laboral")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "scheduled_at", vErr.Field)
}

func TestValidateTiming_FueraDeHorario_Rechaza(t *testing.T) {
	martes := clock.AddDate(0, 0, 1)
	assert.Error(t, scheduling.ValidateTiming(at(martes, 19, 0), clock),
		"19:00 queda fuera del horario laboral")
	assert.Error(t, scheduling.ValidateTiming(at(martes, 7, 30), clock),
		"7:30 queda antes del inicio del horario laboral")
}

func TestValidateTiming_LimitesDeHorario(t *testing.T) {
	martes := clock.AddDate(0, 0, 1)
	assert.NoError(t, scheduling.ValidateTiming(at(martes, 8, 0), clock),
		"las 8:00 en punto están dentro del horario")
	assert.NoError(t, scheduling.ValidateTiming(at(martes, 18, 30), clock),
		"las 18:xx siguen siendo válidas; el corte es a las 19:00")
}

func TestValidateTiming_EnElPasado_Rechaza(t *testing.T) {
	viernesPasado := clock.AddDate(0, 0, -3) // viernes 2 de enero
	assert.Error(t, scheduling.ValidateTiming(at(viernesPasado, 10, 0), clock))
}

func TestValidateTiming_MasDeSeisMeses_Rechaza(t *testing.T) {
	// Martes 7 de julio de 2026: un día después del horizonte de 6 meses.
	lejos := time.Date(2026, time.July, 7, 14, 0, 0, 0, time.Local)
	assert.Error(t, scheduling.ValidateTiming(lejos, clock))
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateDuration — límites en minutos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateDuration(t *testing.T) {
	assert.Error(t, scheduling.ValidateDuration(10), "menos de 15 minutos se rechaza")
	assert.Error(t, scheduling.ValidateDuration(481), "más de 480 minutos se rechaza")
	assert.NoError(t, scheduling.ValidateDuration(15))
	assert.NoError(t, scheduling.ValidateDuration(480))
	assert.NoError(t, scheduling.ValidateDuration(60))
}
