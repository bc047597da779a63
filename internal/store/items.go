package store

import (
	"context"
	"database/sql"
	"fmt"

	"lostfound/internal/model"
)

// ItemParams holds the descriptive fields for creating or updating an item.
type ItemParams struct {
	Name         string
	Description  string
	Category     string
	LocationLost string
	DateLost     string
}

// CreateItem creates a new lost item and writes the matching audit record in
// one transaction.
func CreateItem(ctx context.Context, db *sql.DB, p ItemParams, adminID int64) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO items (name, description, category, location_lost, date_lost, added_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Category, p.LocationLost, p.DateLost, adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	if err := insertAudit(ctx, tx, model.ActionItemAdded,
		fmt.Sprintf("Added item: %s (id=%d)", p.Name, id), adminID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID with the creating admin's name joined.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, category, location, dateLost, photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT i.id, i.name, i.description, i.category, i.location_lost, i.date_lost,
		        i.photo_mime, i.status, i.added_by, i.created_at, i.updated_at,
		        COALESCE(a.name, '') AS added_by_name
		 FROM items i
		 LEFT JOIN admins a ON a.id = i.added_by
		 WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.Name, &description, &category, &location, &dateLost,
		&photoMime, &item.Status, &item.AddedBy, &item.CreatedAt, &item.UpdatedAt,
		&item.AddedByName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Category = category.String
	item.LocationLost = location.String
	item.DateLost = dateLost.String
	item.PhotoMime = photoMime.String
	return item, nil
}

// ListItems returns all items, newest first, optionally filtered by status.
func ListItems(ctx context.Context, db *sql.DB, status string) ([]model.Item, error) {
	query := `SELECT i.id, i.name, i.description, i.category, i.location_lost, i.date_lost,
	                 i.photo_mime, i.status, i.added_by, i.created_at, i.updated_at,
	                 COALESCE(a.name, '') AS added_by_name
	          FROM items i
	          LEFT JOIN admins a ON a.id = i.added_by`
	var args []any

	if status != "" {
		query += ` WHERE i.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY i.created_at DESC, i.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListRecentItems returns the most recently added items.
func ListRecentItems(ctx context.Context, db *sql.DB, limit int) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT i.id, i.name, i.description, i.category, i.location_lost, i.date_lost,
		        i.photo_mime, i.status, i.added_by, i.created_at, i.updated_at,
		        COALESCE(a.name, '') AS added_by_name
		 FROM items i
		 LEFT JOIN admins a ON a.id = i.added_by
		 ORDER BY i.created_at DESC, i.id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem updates an item's descriptive fields and writes the matching
// audit record in one transaction. The status is not touched here; it only
// changes through claim approval or MarkItemClaimed.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, p ItemParams, adminID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, category = ?, location_lost = ?,
		        date_lost = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Name, p.Description, p.Category, p.LocationLost, p.DateLost, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking item update: %w", err)
	} else if affected == 0 {
		return ErrItemNotFound
	}

	if err := insertAudit(ctx, tx, model.ActionItemUpdated,
		fmt.Sprintf("Updated item: %s (id=%d)", p.Name, id), adminID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item update: %w", err)
	}
	return nil
}

// DeleteItem removes an item; its claims cascade away with it. The deletion
// and its audit record commit together.
func DeleteItem(ctx context.Context, db *sql.DB, id int64, adminID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking item delete: %w", err)
	} else if affected == 0 {
		return ErrItemNotFound
	}

	if err := insertAudit(ctx, tx, model.ActionItemDeleted,
		fmt.Sprintf("Deleted item id=%d", id), adminID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item delete: %w", err)
	}
	return nil
}

// MarkItemClaimed marks an item claimed directly, outside the claim workflow
// (for handovers resolved in person).
func MarkItemClaimed(ctx context.Context, db *sql.DB, id int64, adminID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ItemStatusClaimed, id,
	)
	if err != nil {
		return fmt.Errorf("marking item claimed: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking item update: %w", err)
	} else if affected == 0 {
		return ErrItemNotFound
	}

	if err := insertAudit(ctx, tx, model.ActionItemClaimed,
		fmt.Sprintf("Marked item id=%d as claimed", id), adminID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item update: %w", err)
	}
	return nil
}

// SetItemPhoto sets an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking photo update: %w", err)
	} else if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

// CountItems returns the total number of items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, category, location, dateLost, photoMime sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &description, &category, &location, &dateLost,
			&photoMime, &item.Status, &item.AddedBy, &item.CreatedAt, &item.UpdatedAt,
			&item.AddedByName); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Category = category.String
		item.LocationLost = location.String
		item.DateLost = dateLost.String
		item.PhotoMime = photoMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}
