package audit

import (
	"testing"
	"time"

	"roster-api/packages/core/models"

	"github.com/jonboulle/clockwork"
)

func TestStampAdded(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.January, 1, 7, 0, 0, 0, loc))
	stamper := NewStamper(clock)

	player := &models.Player{Name: "Ana"}
	stamper.Stamp(player, StateAdded, "user-1")

	if want := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC); !player.CreatedAt.Equal(want) {
		t.Fatalf("created at = %v, want %v", player.CreatedAt, want)
	}
	if player.CreatedAt.Location() != time.UTC {
		t.Fatalf("created at location = %v, want UTC", player.CreatedAt.Location())
	}
	if player.CreatedBy != "user-1" {
		t.Fatalf("created by = %q, want %q", player.CreatedBy, "user-1")
	}
	if player.ModifiedAt != nil || player.ModifiedBy != nil {
		t.Fatal("expected modification fields to stay empty on insert")
	}
	if player.Name != "Ana" {
		t.Fatalf("name = %q, want untouched", player.Name)
	}
}

func TestStampAddedKeepsPrepopulatedCreator(t *testing.T) {
	stamper := NewStamper(clockwork.NewFakeClock())

	stat := &models.PlayerStatistic{Audit: models.Audit{CreatedBy: "seed"}}
	stamper.Stamp(stat, StateAdded, "user-1")

	if stat.CreatedBy != "seed" {
		t.Fatalf("created by = %q, want %q", stat.CreatedBy, "seed")
	}

	blank := &models.TeamAssignment{Audit: models.Audit{CreatedBy: "   "}}
	stamper.Stamp(blank, StateAdded, "user-2")
	if blank.CreatedBy != "user-2" {
		t.Fatalf("created by = %q, want %q", blank.CreatedBy, "user-2")
	}
}

func TestStampModified(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
	stamper := NewStamper(clock)

	created := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	previous := "user-0"
	assignment := &models.TeamAssignment{Audit: models.Audit{
		CreatedAt:  created,
		CreatedBy:  "creator",
		ModifiedBy: &previous,
	}}

	stamper.Stamp(assignment, StateModified, "user-9")
	if assignment.ModifiedAt == nil || !assignment.ModifiedAt.Equal(clock.Now()) {
		t.Fatalf("modified at = %v, want %v", assignment.ModifiedAt, clock.Now())
	}
	if assignment.ModifiedBy == nil || *assignment.ModifiedBy != "user-9" {
		t.Fatalf("modified by = %v, want user-9", assignment.ModifiedBy)
	}
	if !assignment.CreatedAt.Equal(created) || assignment.CreatedBy != "creator" {
		t.Fatal("expected creation audit to stay untouched on update")
	}

	clock.Advance(time.Hour)
	stamper.Stamp(assignment, StateModified, "user-9")
	if !assignment.ModifiedAt.Equal(clock.Now()) {
		t.Fatalf("modified at = %v, want advanced clock %v", assignment.ModifiedAt, clock.Now())
	}
}
