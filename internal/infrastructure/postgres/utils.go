package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// limitOffset arma la cola LIMIT/OFFSET de un listado, agregando los valores
// a args. Limit <= 0 significa sin límite.
func limitOffset(limit, offset int, args *[]any) string {
	var b strings.Builder
	if limit > 0 {
		*args = append(*args, limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(*args)))
	}
	if offset > 0 {
		*args = append(*args, offset)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(*args)))
	}
	return b.String()
}
