package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lostfound/internal/model"
)

// Sentinel errors returned by claim operations.
var (
	ErrClaimNotFound    = errors.New("claim not found")
	ErrAlreadyResolved  = errors.New("claim already resolved")
	ErrInvalidDecision  = errors.New("invalid decision")
	ErrItemNotFound     = errors.New("item not found")
	ErrItemNotClaimable = errors.New("item is not available for claims")
)

// Decision is an admin's verdict on a pending claim.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Resolution describes the outcome of a successful ResolveClaim call.
type Resolution struct {
	ClaimID  int64
	ItemID   int64
	Decision Decision
}

// CreateClaim records a public claim submission against a lost item.
// The item must exist and still have status 'lost'.
func CreateClaim(ctx context.Context, db *sql.DB, itemID int64, claimantName, campusID, course, message string, proof []byte, proofMime string) (*model.Claim, error) {
	var status string
	err := db.QueryRowContext(ctx,
		`SELECT status FROM items WHERE id = ?`, itemID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking item: %w", err)
	}
	if status != model.ItemStatusLost {
		return nil, ErrItemNotClaimable
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, claimant_name, campus_id, course, message, proof, proof_mime)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		itemID, claimantName, campusID, course, message, proof, proofMime,
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// ResolveClaim applies an admin decision to a pending claim.
//
// Approve runs as a single transaction: the claim is conditionally moved to
// 'approved' (only while still pending), the item is marked 'claimed', every
// other claim on the same item is rejected, and two audit records are written.
// Either all of it commits or none of it does. The sibling rejection is
// unconditional over all sibling claims so that an item can never end up with
// two approved claims, even if a sibling was left in an odd state.
//
// Reject changes only the one claim, but is wrapped in a transaction as well
// so the status change and its audit record land together.
func ResolveClaim(ctx context.Context, db *sql.DB, claimID int64, decision Decision, adminID int64) (*Resolution, error) {
	switch decision {
	case DecisionApprove, DecisionReject:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID int64
	err = tx.QueryRowContext(ctx,
		`SELECT item_id FROM claims WHERE id = ?`, claimID,
	).Scan(&itemID)
	if err == sql.ErrNoRows {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up claim: %w", err)
	}

	// Guard against double resolution: the status change only applies while
	// the claim is still pending. Zero rows affected means another admin got
	// here first.
	target := model.ClaimStatusApproved
	if decision == DecisionReject {
		target = model.ClaimStatusRejected
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE claims SET status = ? WHERE id = ? AND status = ?`,
		target, claimID, model.ClaimStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking claim update: %w", err)
	}
	if affected == 0 {
		return nil, ErrAlreadyResolved
	}

	if decision == DecisionApprove {
		if _, err := tx.ExecContext(ctx,
			`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			model.ItemStatusClaimed, itemID,
		); err != nil {
			return nil, fmt.Errorf("marking item claimed: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE claims SET status = ? WHERE item_id = ? AND id <> ?`,
			model.ClaimStatusRejected, itemID, claimID,
		); err != nil {
			return nil, fmt.Errorf("rejecting sibling claims: %w", err)
		}

		if err := insertAudit(ctx, tx, model.ActionClaimApproved,
			fmt.Sprintf("Approved claim id=%d for item id=%d", claimID, itemID), adminID); err != nil {
			return nil, err
		}
		if err := insertAudit(ctx, tx, model.ActionItemClaimed,
			fmt.Sprintf("Marked item id=%d as claimed (via claim %d)", itemID, claimID), adminID); err != nil {
			return nil, err
		}
	} else {
		if err := insertAudit(ctx, tx, model.ActionClaimRejected,
			fmt.Sprintf("Rejected claim id=%d", claimID), adminID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing resolution: %w", err)
	}

	return &Resolution{ClaimID: claimID, ItemID: itemID, Decision: decision}, nil
}

// GetClaim returns a claim by ID with its item joined.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	c := &model.Claim{}
	var course, message, proofMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT c.id, c.item_id, c.claimant_name, c.campus_id, c.course, c.message,
		        c.proof_mime, c.status, c.submitted_at,
		        i.name AS item_name, i.status AS item_status
		 FROM claims c
		 JOIN items i ON i.id = c.item_id
		 WHERE c.id = ?`, id,
	).Scan(&c.ID, &c.ItemID, &c.ClaimantName, &c.CampusID, &course, &message,
		&proofMime, &c.Status, &c.SubmittedAt, &c.ItemName, &c.ItemStatus)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	c.Course = course.String
	c.Message = message.String
	c.ProofMime = proofMime.String
	return c, nil
}

// ListClaims returns all claims with their items joined, newest first,
// optionally filtered by claim status.
func ListClaims(ctx context.Context, db *sql.DB, status string) ([]model.Claim, error) {
	query := `SELECT c.id, c.item_id, c.claimant_name, c.campus_id, c.course, c.message,
	                 c.proof_mime, c.status, c.submitted_at,
	                 i.name AS item_name, i.status AS item_status
	          FROM claims c
	          JOIN items i ON i.id = c.item_id`
	var args []any

	if status != "" {
		query += ` WHERE c.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY c.submitted_at DESC, c.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

// ListClaimsForItem returns all claims referencing one item, newest first.
func ListClaimsForItem(ctx context.Context, db *sql.DB, itemID int64) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.item_id, c.claimant_name, c.campus_id, c.course, c.message,
		        c.proof_mime, c.status, c.submitted_at,
		        i.name AS item_name, i.status AS item_status
		 FROM claims c
		 JOIN items i ON i.id = c.item_id
		 WHERE c.item_id = ?
		 ORDER BY c.submitted_at DESC, c.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims for item: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

// GetClaimProof returns a claim's proof document and MIME type.
func GetClaimProof(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var proof []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT proof, proof_mime FROM claims WHERE id = ?`, id,
	).Scan(&proof, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting claim proof: %w", err)
	}
	return proof, mime.String, nil
}

// CountClaimsByStatus returns the number of claims with the given status.
func CountClaimsByStatus(ctx context.Context, db *sql.DB, status string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM claims WHERE status = ?`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting claims: %w", err)
	}
	return count, nil
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		var course, message, proofMime sql.NullString
		if err := rows.Scan(&c.ID, &c.ItemID, &c.ClaimantName, &c.CampusID, &course, &message,
			&proofMime, &c.Status, &c.SubmittedAt, &c.ItemName, &c.ItemStatus); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		c.Course = course.String
		c.Message = message.String
		c.ProofMime = proofMime.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
