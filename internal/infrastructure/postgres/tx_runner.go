package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/protecta/crm-pro/internal/application/appointments"
	"github.com/protecta/crm-pro/internal/application/leads"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

var _ leads.TxRunner = (*TxRunner)(nil)
var _ appointments.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLeads inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunLeads(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	leadRepo := NewLeadRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(leadRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAppointments inicia una transacción con el repo de citas atado a la tx
// (chequeo de conflictos y escritura en la misma transacción).
func (r *TxRunner) RunAppointments(ctx context.Context, fn func(
	apptRepo repository.AppointmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAppointmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
