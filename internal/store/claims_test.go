package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"lostfound/internal/db"
	"lostfound/internal/model"
)

// setupItemWithClaims creates an admin, a lost item, and n pending claims.
func setupItemWithClaims(t *testing.T, database *sql.DB, n int) (adminID int64, item *model.Item, claims []*model.Claim) {
	t.Helper()
	ctx := context.Background()

	admin, err := CreateAdmin(ctx, database, "admin", "Admin", "hash")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	item, err = CreateItem(ctx, database, ItemParams{
		Name:         "Black Backpack",
		Category:     "bags",
		LocationLost: "Library",
		DateLost:     "2025-03-10",
	}, admin.ID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	names := []string{"Asha", "Bilal", "Chitra", "Dev", "Esha"}
	for i := 0; i < n; i++ {
		c, err := CreateClaim(ctx, database, item.ID, names[i%len(names)], "500100", "B.Tech", "it's mine", nil, "")
		if err != nil {
			t.Fatalf("CreateClaim %d: %v", i, err)
		}
		claims = append(claims, c)
	}
	return admin.ID, item, claims
}

func TestApproveSingleWinner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, claims := setupItemWithClaims(t, database, 3)
	auditBefore, _ := ListAuditRecords(ctx, database, "", 0)

	res, err := ResolveClaim(ctx, database, claims[1].ID, DecisionApprove, adminID)
	if err != nil {
		t.Fatalf("ResolveClaim: %v", err)
	}
	if res.ItemID != item.ID || res.Decision != DecisionApprove {
		t.Errorf("unexpected resolution: %+v", res)
	}

	// Exactly one approved, all others rejected, no pending left.
	all, err := ListClaimsForItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ListClaimsForItem: %v", err)
	}
	var approved, rejected, pending int
	for _, c := range all {
		switch c.Status {
		case model.ClaimStatusApproved:
			approved++
			if c.ID != claims[1].ID {
				t.Errorf("wrong claim approved: %d", c.ID)
			}
		case model.ClaimStatusRejected:
			rejected++
		case model.ClaimStatusPending:
			pending++
		}
	}
	if approved != 1 || rejected != 2 || pending != 0 {
		t.Errorf("expected 1 approved / 2 rejected / 0 pending, got %d/%d/%d", approved, rejected, pending)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Status != model.ItemStatusClaimed {
		t.Errorf("expected item status 'claimed', got %q", got.Status)
	}

	// Two new audit records, both attributed to the acting admin.
	auditAfter, _ := ListAuditRecords(ctx, database, "", 0)
	if len(auditAfter) != len(auditBefore)+2 {
		t.Fatalf("expected 2 new audit records, got %d", len(auditAfter)-len(auditBefore))
	}
	for _, rec := range auditAfter[:2] {
		if rec.AdminID != adminID {
			t.Errorf("audit record attributed to admin %d, want %d", rec.AdminID, adminID)
		}
	}
}

func TestRejectLeavesItemUntouched(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, claims := setupItemWithClaims(t, database, 1)
	auditBefore, _ := ListAuditRecords(ctx, database, "", 0)

	res, err := ResolveClaim(ctx, database, claims[0].ID, DecisionReject, adminID)
	if err != nil {
		t.Fatalf("ResolveClaim: %v", err)
	}
	if res.Decision != DecisionReject {
		t.Errorf("unexpected decision: %v", res.Decision)
	}

	got, _ := GetClaim(ctx, database, claims[0].ID)
	if got.Status != model.ClaimStatusRejected {
		t.Errorf("expected claim status 'rejected', got %q", got.Status)
	}

	itemAfter, _ := GetItem(ctx, database, item.ID)
	if itemAfter.Status != model.ItemStatusLost {
		t.Errorf("reject must not change item status, got %q", itemAfter.Status)
	}

	auditAfter, _ := ListAuditRecords(ctx, database, "", 0)
	if len(auditAfter) != len(auditBefore)+1 {
		t.Errorf("expected 1 new audit record, got %d", len(auditAfter)-len(auditBefore))
	}
	if auditAfter[0].ActionType != model.ActionClaimRejected {
		t.Errorf("expected action %q, got %q", model.ActionClaimRejected, auditAfter[0].ActionType)
	}
}

func TestResolveMissingClaim(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, _ := setupItemWithClaims(t, database, 1)
	auditBefore, _ := ListAuditRecords(ctx, database, "", 0)

	for _, decision := range []Decision{DecisionApprove, DecisionReject} {
		_, err := ResolveClaim(ctx, database, 9999, decision, adminID)
		if !errors.Is(err, ErrClaimNotFound) {
			t.Errorf("ResolveClaim(missing, %s): expected ErrClaimNotFound, got %v", decision, err)
		}
	}

	// No state change, no audit records.
	itemAfter, _ := GetItem(ctx, database, item.ID)
	if itemAfter.Status != model.ItemStatusLost {
		t.Errorf("item status changed to %q", itemAfter.Status)
	}
	auditAfter, _ := ListAuditRecords(ctx, database, "", 0)
	if len(auditAfter) != len(auditBefore) {
		t.Errorf("expected no new audit records, got %d", len(auditAfter)-len(auditBefore))
	}
}

func TestResolveInvalidDecision(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, _, claims := setupItemWithClaims(t, database, 1)

	_, err := ResolveClaim(ctx, database, claims[0].ID, Decision("escalate"), adminID)
	if !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("expected ErrInvalidDecision, got %v", err)
	}

	got, _ := GetClaim(ctx, database, claims[0].ID)
	if got.Status != model.ClaimStatusPending {
		t.Errorf("claim status changed to %q", got.Status)
	}
}

func TestDoubleApproveFails(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, claims := setupItemWithClaims(t, database, 2)

	if _, err := ResolveClaim(ctx, database, claims[0].ID, DecisionApprove, adminID); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	// Approving the sibling (rejected by the first approval) must fail, and
	// approving the winner again must fail too.
	for _, id := range []int64{claims[1].ID, claims[0].ID} {
		_, err := ResolveClaim(ctx, database, id, DecisionApprove, adminID)
		if !errors.Is(err, ErrAlreadyResolved) {
			t.Errorf("approve claim %d: expected ErrAlreadyResolved, got %v", id, err)
		}
	}

	// Still exactly one approved claim.
	all, _ := ListClaimsForItem(ctx, database, item.ID)
	var approved int
	for _, c := range all {
		if c.Status == model.ClaimStatusApproved {
			approved++
		}
	}
	if approved != 1 {
		t.Errorf("expected exactly 1 approved claim, got %d", approved)
	}
}

func TestApproveRollsBackOnAuditFailure(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, claims := setupItemWithClaims(t, database, 3)

	// Force the audit insert inside the approve transaction to fail.
	if _, err := database.Exec(`DROP TABLE audit_log`); err != nil {
		t.Fatalf("dropping audit_log: %v", err)
	}

	_, err := ResolveClaim(ctx, database, claims[0].ID, DecisionApprove, adminID)
	if err == nil {
		t.Fatal("expected approve to fail without audit_log table")
	}

	// Full rollback: every claim still pending, item still lost.
	all, _ := ListClaimsForItem(ctx, database, item.ID)
	for _, c := range all {
		if c.Status != model.ClaimStatusPending {
			t.Errorf("claim %d status = %q after rollback, want pending", c.ID, c.Status)
		}
	}
	itemAfter, _ := GetItem(ctx, database, item.ID)
	if itemAfter.Status != model.ItemStatusLost {
		t.Errorf("item status = %q after rollback, want lost", itemAfter.Status)
	}
}

func TestConcurrentApprovesSerialize(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, claims := setupItemWithClaims(t, database, 2)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ResolveClaim(ctx, database, claims[i].ID, DecisionApprove, adminID)
		}(i)
	}
	wg.Wait()

	var succeeded, alreadyResolved int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyResolved):
			alreadyResolved++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || alreadyResolved != 1 {
		t.Errorf("expected 1 success and 1 ErrAlreadyResolved, got %d/%d", succeeded, alreadyResolved)
	}

	all, _ := ListClaimsForItem(ctx, database, item.ID)
	var approved int
	for _, c := range all {
		if c.Status == model.ClaimStatusApproved {
			approved++
		}
	}
	if approved != 1 {
		t.Errorf("expected exactly 1 approved claim, got %d", approved)
	}

	itemAfter, _ := GetItem(ctx, database, item.ID)
	if itemAfter.Status != model.ItemStatusClaimed {
		t.Errorf("expected item claimed, got %q", itemAfter.Status)
	}
}

func TestCreateClaimValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, item, _ := setupItemWithClaims(t, database, 0)

	// Claims against a missing item are refused.
	_, err := CreateClaim(ctx, database, 9999, "Asha", "500100", "", "", nil, "")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	// Claims against a claimed item are refused.
	if err := MarkItemClaimed(ctx, database, item.ID, adminID); err != nil {
		t.Fatalf("MarkItemClaimed: %v", err)
	}
	_, err = CreateClaim(ctx, database, item.ID, "Asha", "500100", "", "", nil, "")
	if !errors.Is(err, ErrItemNotClaimable) {
		t.Errorf("expected ErrItemNotClaimable, got %v", err)
	}
}

func TestClaimProofRoundtrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, item, _ := setupItemWithClaims(t, database, 0)

	proof := []byte("%PDF-1.4 fake receipt")
	c, err := CreateClaim(ctx, database, item.ID, "Asha", "500100", "B.Des", "receipt attached", proof, "application/pdf")
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}
	if c.ProofMime != "application/pdf" {
		t.Errorf("expected proof mime recorded, got %q", c.ProofMime)
	}

	data, mime, err := GetClaimProof(ctx, database, c.ID)
	if err != nil {
		t.Fatalf("GetClaimProof: %v", err)
	}
	if string(data) != string(proof) || mime != "application/pdf" {
		t.Errorf("proof roundtrip mismatch: %q %q", data, mime)
	}
}

func TestListClaimsByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	adminID, _, claims := setupItemWithClaims(t, database, 3)

	if _, err := ResolveClaim(ctx, database, claims[0].ID, DecisionReject, adminID); err != nil {
		t.Fatalf("ResolveClaim: %v", err)
	}

	pending, _ := ListClaims(ctx, database, model.ClaimStatusPending)
	if len(pending) != 2 {
		t.Errorf("expected 2 pending claims, got %d", len(pending))
	}

	all, _ := ListClaims(ctx, database, "")
	if len(all) != 3 {
		t.Errorf("expected 3 claims, got %d", len(all))
	}

	count, _ := CountClaimsByStatus(ctx, database, model.ClaimStatusPending)
	if count != 2 {
		t.Errorf("expected pending count 2, got %d", count)
	}
}
