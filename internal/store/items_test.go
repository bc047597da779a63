package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"lostfound/internal/db"
	"lostfound/internal/model"
)

func testAdmin(t *testing.T, database *sql.DB) int64 {
	t.Helper()
	admin, err := CreateAdmin(context.Background(), database, "admin", "Admin", "hash")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin.ID
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	item, err := CreateItem(ctx, database, ItemParams{
		Name:         "Casio FX-991",
		Description:  "Scientific calculator",
		Category:     "electronics",
		LocationLost: "Block 9",
		DateLost:     "2025-02-14",
	}, adminID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Casio FX-991" {
		t.Errorf("expected name 'Casio FX-991', got %q", item.Name)
	}
	if item.Status != model.ItemStatusLost {
		t.Errorf("expected status 'lost', got %q", item.Status)
	}
	if item.AddedByName != "Admin" {
		t.Errorf("expected creator name joined, got %q", item.AddedByName)
	}

	// Creation is audited.
	records, _ := ListAuditRecords(ctx, database, model.ActionItemAdded, 0)
	if len(records) != 1 {
		t.Errorf("expected 1 item_added audit record, got %d", len(records))
	}
}

func TestListItemsByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	CreateItem(ctx, database, ItemParams{Name: "Umbrella"}, adminID)
	item2, _ := CreateItem(ctx, database, ItemParams{Name: "Water Bottle"}, adminID)
	MarkItemClaimed(ctx, database, item2.ID, adminID)

	all, _ := ListItems(ctx, database, "")
	if len(all) != 2 {
		t.Errorf("expected 2 items, got %d", len(all))
	}

	lost, _ := ListItems(ctx, database, model.ItemStatusLost)
	if len(lost) != 1 || lost[0].Name != "Umbrella" {
		t.Errorf("expected only the umbrella to be lost, got %v", lost)
	}
}

func TestUpdateItemKeepsStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	item, _ := CreateItem(ctx, database, ItemParams{Name: "Umbrella"}, adminID)
	MarkItemClaimed(ctx, database, item.ID, adminID)

	err := UpdateItem(ctx, database, item.ID, ItemParams{Name: "Blue Umbrella", Category: "misc"}, adminID)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Blue Umbrella" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if got.Status != model.ItemStatusClaimed {
		t.Errorf("update must not touch status, got %q", got.Status)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	database := db.NewTestDB(t)
	adminID := testAdmin(t, database)

	err := UpdateItem(context.Background(), database, 9999, ItemParams{Name: "Ghost"}, adminID)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDeleteItemCascadesClaims(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	item, _ := CreateItem(ctx, database, ItemParams{Name: "ID Card"}, adminID)
	claim, err := CreateClaim(ctx, database, item.ID, "Asha", "500100", "", "", nil, "")
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	if err := DeleteItem(ctx, database, item.ID, adminID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	gone, _ := GetItem(ctx, database, item.ID)
	if gone != nil {
		t.Error("expected item to be gone")
	}
	claimGone, _ := GetClaim(ctx, database, claim.ID)
	if claimGone != nil {
		t.Error("expected claim to cascade away with the item")
	}
}

func TestItemPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	item, _ := CreateItem(ctx, database, ItemParams{Name: "Camera"}, adminID)
	photo := []byte("fake jpeg data")
	if err := SetItemPhoto(ctx, database, item.ID, photo, "image/jpeg"); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := GetItemPhoto(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if string(data) != "fake jpeg data" || mime != "image/jpeg" {
		t.Errorf("photo roundtrip mismatch: %q %q", data, mime)
	}

	// Missing item has no photo and no error.
	data, _, err = GetItemPhoto(ctx, database, 9999)
	if err != nil || data != nil {
		t.Errorf("expected nil photo for missing item, got %v %v", data, err)
	}
}

func TestDashboardCounts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	adminID := testAdmin(t, database)

	for _, name := range []string{"A", "B", "C"} {
		CreateItem(ctx, database, ItemParams{Name: name}, adminID)
	}

	count, err := CountItems(ctx, database)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 items, got %d", count)
	}

	recent, _ := ListRecentItems(ctx, database, 2)
	if len(recent) != 2 {
		t.Errorf("expected 2 recent items, got %d", len(recent))
	}
}
