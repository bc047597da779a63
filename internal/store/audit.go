package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"lostfound/internal/model"
)

// execer covers *sql.DB and *sql.Tx so audit writes can join a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertAudit appends one audit record. Records are append-only; nothing in
// this package updates or deletes them.
func insertAudit(ctx context.Context, q execer, actionType, description string, adminID int64) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO audit_log (event_id, action_type, description, admin_id) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), actionType, description, adminID,
	)
	if err != nil {
		return fmt.Errorf("writing audit record: %w", err)
	}
	return nil
}

// ListAuditRecords returns the newest audit records with the acting admin
// joined, optionally filtered by action type. At most limit records are
// returned; limit <= 0 means the default of 500.
func ListAuditRecords(ctx context.Context, db *sql.DB, actionType string, limit int) ([]model.AuditRecord, error) {
	if limit <= 0 {
		limit = 500
	}

	query := `SELECT l.id, l.event_id, l.action_type, l.description, l.admin_id, l.created_at,
	                 COALESCE(a.name, '') AS admin_name
	          FROM audit_log l
	          LEFT JOIN admins a ON a.id = l.admin_id`
	var args []any

	if actionType != "" {
		query += ` WHERE l.action_type = ?`
		args = append(args, actionType)
	}
	query += ` ORDER BY l.created_at DESC, l.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit records: %w", err)
	}
	defer rows.Close()

	var records []model.AuditRecord
	for rows.Next() {
		var rec model.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.ActionType, &rec.Description,
			&rec.AdminID, &rec.CreatedAt, &rec.AdminName); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListAuditActionTypes returns the distinct action types present in the log,
// for filter dropdowns.
func ListAuditActionTypes(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT action_type FROM audit_log ORDER BY action_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing audit action types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning action type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
