package scheduling

import (
	"time"

	"github.com/protecta/crm-pro/internal/domain/entity"
)

// Overlaps evalúa el solapamiento de dos intervalos semiabiertos
// [start, start+duration). Citas consecutivas (una termina exactamente
// cuando empieza la otra) no se solapan.
func Overlaps(aStart time.Time, aMinutes int, bStart time.Time, bMinutes int) bool {
	aEnd := aStart.Add(time.Duration(aMinutes) * time.Minute)
	bEnd := bStart.Add(time.Duration(bMinutes) * time.Minute)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts devuelve los IDs de las citas de `appts` que chocan con el
// intervalo candidato para el usuario dado. Se ignoran las citas terminales
// (cancelled/completed), las que no involucran al usuario y la cita excluida
// (la que se está actualizando). Determinista: mismo input, mismo output.
func FindConflicts(appts []*entity.Appointment, userID string, scheduledAt time.Time, durationMinutes int, excludeID string) []string {
	var conflicts []string
	for _, a := range appts {
		if a.ID == excludeID || a.IsTerminal() || !a.Involves(userID) {
			continue
		}
		if Overlaps(scheduledAt, durationMinutes, a.ScheduledAt, a.Duration) {
			conflicts = append(conflicts, a.ID)
		}
	}
	return conflicts
}
