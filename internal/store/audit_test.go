package store

import (
	"context"
	"testing"

	"lostfound/internal/db"
	"lostfound/internal/model"
)

func TestAuditFilterAndTypes(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	item, _ := CreateItem(ctx, database, ItemParams{Name: "Wallet"}, adminID)
	UpdateItem(ctx, database, item.ID, ItemParams{Name: "Brown Wallet"}, adminID)
	MarkItemClaimed(ctx, database, item.ID, adminID)

	all, err := ListAuditRecords(ctx, database, "", 0)
	if err != nil {
		t.Fatalf("ListAuditRecords: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 audit records, got %d", len(all))
	}
	for _, rec := range all {
		if rec.EventID == "" {
			t.Error("expected audit record to carry an event id")
		}
		if rec.AdminName != "Admin" {
			t.Errorf("expected admin name joined, got %q", rec.AdminName)
		}
	}

	updated, _ := ListAuditRecords(ctx, database, model.ActionItemUpdated, 0)
	if len(updated) != 1 {
		t.Errorf("expected 1 item_updated record, got %d", len(updated))
	}

	types, _ := ListAuditActionTypes(ctx, database)
	if len(types) != 3 {
		t.Errorf("expected 3 distinct action types, got %v", types)
	}
}

func TestAuditLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	for i := 0; i < 5; i++ {
		CreateItem(ctx, database, ItemParams{Name: "Item"}, adminID)
	}

	limited, _ := ListAuditRecords(ctx, database, "", 2)
	if len(limited) != 2 {
		t.Errorf("expected 2 records with limit 2, got %d", len(limited))
	}
}
