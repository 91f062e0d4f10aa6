package repository

import (
	"context"
	"encoding/json"

	"github.com/socialpulse/engine/internal/audit"
	"github.com/socialpulse/engine/internal/socialmodel"
)

// AuditRepository is the Postgres-backed implementation of audit.Storage.
type AuditRepository struct {
	db *PostgresDB
}

// NewAuditRepository builds an AuditRepository over db.
func NewAuditRepository(db *PostgresDB) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ audit.Storage = (*AuditRepository)(nil)

func (r *AuditRepository) Store(ctx context.Context, eventID string, entries []socialmodel.AuditEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = r.db.pool.Exec(ctx, `
		INSERT INTO decision_audit_trails (event_id, entries, recorded_at)
		VALUES ($1, $2, now())
	`, eventID, raw)
	return err
}
