package history

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func setupTestStore(t *testing.T) *Store {
	store := NewStore(setupTestDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func TestStore_Migrate(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if !db.Migrator().HasTable(&Turn{}) {
		t.Error("expected Turn table to exist")
	}
	if !db.Migrator().HasTable(&Report{}) {
		t.Error("expected Report table to exist")
	}
}

func TestStore_RecordTurn(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	turn := &Turn{SessionID: "prep_1", Mode: "interview", Answer: "I led a team.", AskedIdx: 1}
	if err := store.RecordTurn(ctx, turn); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
	if !strings.HasPrefix(turn.ID, "turn_") {
		t.Errorf("expected generated turn ID, got %q", turn.ID)
	}

	turns, err := store.Turns(ctx, "prep_1", 0)
	if err != nil {
		t.Fatalf("Turns() error = %v", err)
	}
	if len(turns) != 1 || turns[0].Answer != "I led a team." {
		t.Errorf("unexpected turns %+v", turns)
	}
}

func TestStore_TurnsOrderedAndScoped(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, answer := range []string{"first", "second", "third"} {
		_ = store.RecordTurn(ctx, &Turn{
			SessionID: "prep_a",
			Mode:      "interview",
			Answer:    answer,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	_ = store.RecordTurn(ctx, &Turn{SessionID: "prep_b", Mode: "interview", Answer: "other"})

	turns, err := store.Turns(ctx, "prep_a", 0)
	if err != nil {
		t.Fatalf("Turns() error = %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	if turns[0].Answer != "first" || turns[2].Answer != "third" {
		t.Errorf("expected oldest first, got %s..%s", turns[0].Answer, turns[2].Answer)
	}

	limited, _ := store.Turns(ctx, "prep_a", 2)
	if len(limited) != 2 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}

func TestStore_Reports(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	old := &Report{SessionID: "prep_1", Score: 40, PresentKeywords: []string{"go"}, CreatedAt: time.Now().Add(-time.Hour)}
	recent := &Report{SessionID: "prep_1", Score: 70, MissingKeywords: []string{"sql"}}
	if err := store.RecordReport(ctx, old); err != nil {
		t.Fatalf("RecordReport() error = %v", err)
	}
	if err := store.RecordReport(ctx, recent); err != nil {
		t.Fatalf("RecordReport() error = %v", err)
	}

	reports, err := store.Reports(ctx, "prep_1", 0)
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Score != 70 {
		t.Errorf("expected newest first, got score %d", reports[0].Score)
	}
	if len(reports[1].PresentKeywords) != 1 || reports[1].PresentKeywords[0] != "go" {
		t.Errorf("expected keywords to round-trip, got %v", reports[1].PresentKeywords)
	}
}

func TestStore_DeleteSession(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_ = store.RecordTurn(ctx, &Turn{SessionID: "prep_1", Mode: "interview"})
	_ = store.RecordReport(ctx, &Report{SessionID: "prep_1", Score: 10})
	_ = store.RecordTurn(ctx, &Turn{SessionID: "prep_2", Mode: "interview"})

	if err := store.DeleteSession(ctx, "prep_1"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	turns, _ := store.Turns(ctx, "prep_1", 0)
	reports, _ := store.Reports(ctx, "prep_1", 0)
	if len(turns) != 0 || len(reports) != 0 {
		t.Errorf("expected session data to be gone, got %d turns %d reports", len(turns), len(reports))
	}
	others, _ := store.Turns(ctx, "prep_2", 0)
	if len(others) != 1 {
		t.Error("other sessions must be untouched")
	}
}
