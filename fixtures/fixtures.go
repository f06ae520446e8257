package fixtures

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"roster-api/packages/core/audit"
	"roster-api/packages/core/models"
	"roster-api/packages/core/repository"
	"roster-api/packages/core/utils"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedActor is the creator recorded on every generated record.
const SeedActor = "seed"

const gamesPerAssignment = 5

var teams = []string{"Eagles", "Hawks", "Owls", "Falcons", "Ravens"}

type Fixtures struct {
	store *repository.Store
	clock clockwork.Clock
	rng   *rand.Rand
}

func NewFixtures(db *gorm.DB, clock clockwork.Clock) *Fixtures {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Fixtures{
		store: repository.NewStore(db, audit.NewStamper(clock)),
		clock: clock,
		rng:   rand.New(rand.NewSource(42)), // #nosec G404 -- deterministic demo data
	}
}

// Summary counts what GenerateTestData created.
type Summary struct {
	Players     int
	Assignments int
	Statistics  int
}

// GenerateTestData creates 10 players, each with a closed assignment from the
// previous season and an active one for the current season, and a few games
// under each.
func (f *Fixtures) GenerateTestData(ctx context.Context) (Summary, error) {
	log.Info().Msg("Starting fixtures generation...")

	var summary Summary
	err := f.store.Transaction(ctx, func(tx *repository.Store) error {
		players, err := f.generatePlayers(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to generate players: %w", err)
		}
		summary.Players = len(players)

		for i, player := range players {
			assignments, err := f.generateAssignments(ctx, tx, player, i)
			if err != nil {
				return fmt.Errorf("failed to generate assignments for player %d: %w", player.ID, err)
			}
			summary.Assignments += len(assignments)

			for _, assignment := range assignments {
				n, err := f.generateStatistics(ctx, tx, assignment, 10+i)
				if err != nil {
					return fmt.Errorf("failed to generate statistics for assignment %d: %w", assignment.ID, err)
				}
				summary.Statistics += n
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	log.Info().
		Int("players", summary.Players).
		Int("assignments", summary.Assignments).
		Int("statistics", summary.Statistics).
		Msg("Fixtures generated successfully!")
	return summary, nil
}

func (f *Fixtures) generatePlayers(ctx context.Context, tx *repository.Store) ([]models.Player, error) {
	names := []string{
		"Alexandre Martin", "Marie Dubois", "Julien Bernard", "Sophie Laurent", "Thomas Petit",
		"Camille Moreau", "Nicolas Simon", "Laura Michel", "Antoine Leroy", "Emma Roux",
	}
	genders := []string{"M", "F"}

	today := utils.DateOnly(f.clock.Now())
	players := make([]models.Player, 0, len(names))

	for i, name := range names {
		gender := genders[i%len(genders)]
		player := models.Player{
			UserID:      fmt.Sprintf("parent-%d", i/2+1),
			Name:        name,
			DateOfBirth: today.AddDate(-(9 + f.rng.Intn(6)), -f.rng.Intn(12), -f.rng.Intn(28)),
			Gender:      &gender,
		}
		if err := tx.Players().Add(ctx, SeedActor, &player); err != nil {
			return nil, err
		}
		players = append(players, player)
		log.Debug().Uint("player_id", player.ID).Str("name", name).Msg("Created player")
	}

	return players, nil
}

func (f *Fixtures) generateAssignments(ctx context.Context, tx *repository.Store, player models.Player, index int) ([]models.TeamAssignment, error) {
	today := utils.DateOnly(f.clock.Now())
	seasonStart := time.Date(today.Year(), time.September, 1, 0, 0, 0, 0, time.UTC)
	if seasonStart.After(today) {
		seasonStart = seasonStart.AddDate(-1, 0, 0)
	}
	previousEnd := seasonStart.AddDate(0, 0, -62)

	previous := models.TeamAssignment{
		PlayerID:         player.ID,
		TeamName:         teams[index%len(teams)],
		ChampionshipName: fmt.Sprintf("League %d", previousEnd.Year()),
		JoinedDate:       seasonStart.AddDate(-1, 0, 0),
		LeftDate:         &previousEnd,
	}
	current := models.TeamAssignment{
		PlayerID:         player.ID,
		TeamName:         teams[(index+1)%len(teams)],
		ChampionshipName: fmt.Sprintf("League %d", seasonStart.Year()+1),
		JoinedDate:       seasonStart,
	}

	assignments := []models.TeamAssignment{previous, current}
	for i := range assignments {
		if err := tx.TeamAssignments().Add(ctx, SeedActor, &assignments[i]); err != nil {
			return nil, err
		}
	}
	return assignments, nil
}

func (f *Fixtures) generateStatistics(ctx context.Context, tx *repository.Store, assignment models.TeamAssignment, jersey int) (int, error) {
	for game := 0; game < gamesPerAssignment; game++ {
		minutes := 20 + f.rng.Intn(71) // #nosec G404
		stat := models.PlayerStatistic{
			TeamAssignmentID: assignment.ID,
			GameDate:         assignment.JoinedDate.AddDate(0, 0, 7*(game+1)),
			MinutesPlayed:    minutes,
			Starter:          minutes >= 60,
			JerseyNumber:     jersey,
			Goals:            f.rng.Intn(3), // #nosec G404
			Assists:          f.rng.Intn(3), // #nosec G404
		}
		if err := tx.Statistics().Add(ctx, SeedActor, &stat); err != nil {
			return game, err
		}
	}
	return gamesPerAssignment, nil
}

// ClearAllData deletes every player together with its assignments and
// statistics.
func (f *Fixtures) ClearAllData(ctx context.Context) error {
	log.Info().Msg("Clearing all data...")

	return f.store.Transaction(ctx, func(tx *repository.Store) error {
		players, err := tx.Players().List(ctx)
		if err != nil {
			return err
		}
		for _, player := range players {
			if _, err := tx.Players().Delete(ctx, player.ID); err != nil {
				return err
			}
		}
		log.Info().Int("players", len(players)).Msg("All data cleared")
		return nil
	})
}
