package fixtures

import (
	"context"
	"testing"
	"time"

	"roster-api/packages/core/audit"
	"roster-api/packages/core/models"
	"roster-api/packages/core/repository"
	"roster-api/packages/core/testdb"

	"github.com/jonboulle/clockwork"
)

func TestGenerateAndClear(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC))
	f := NewFixtures(db, clock)

	summary, err := f.GenerateTestData(ctx)
	if err != nil {
		t.Fatalf("GenerateTestData() error = %v", err)
	}
	want := Summary{Players: 10, Assignments: 20, Statistics: 20 * gamesPerAssignment}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}

	store := repository.NewStore(db, audit.NewStamper(clock))
	players, err := store.Players().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(players) != want.Players {
		t.Fatalf("players = %d, want %d", len(players), want.Players)
	}
	for _, p := range players {
		if p.CreatedBy != SeedActor || p.ModifiedBy != nil {
			t.Fatalf("player %d audit = %+v", p.ID, p.Audit)
		}
		active, err := store.TeamAssignments().ListActiveByPlayer(ctx, p.ID)
		if err != nil {
			t.Fatalf("ListActiveByPlayer() error = %v", err)
		}
		if len(active) != 1 {
			t.Fatalf("player %d has %d active assignments, want 1", p.ID, len(active))
		}
	}

	var stats int64
	if err := db.Model(&models.PlayerStatistic{}).Count(&stats).Error; err != nil {
		t.Fatalf("count statistics: %v", err)
	}
	if int(stats) != want.Statistics {
		t.Fatalf("statistics = %d, want %d", stats, want.Statistics)
	}

	if err := f.ClearAllData(ctx); err != nil {
		t.Fatalf("ClearAllData() error = %v", err)
	}
	for _, table := range []any{&models.Player{}, &models.TeamAssignment{}, &models.PlayerStatistic{}} {
		var n int64
		if err := db.Model(table).Count(&n).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("%T rows left = %d", table, n)
		}
	}
}
