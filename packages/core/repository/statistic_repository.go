package repository

import (
	"context"
	"time"

	"roster-api/packages/core/audit"
	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/utils"
	"roster-api/packages/core/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatisticRepository defines the data operations on per-game statistics.
type StatisticRepository interface {
	ListByPlayer(ctx context.Context, playerID uint) ([]models.PlayerStatistic, error)
	ListByAssignment(ctx context.Context, teamAssignmentID uint) ([]models.PlayerStatistic, error)
	GetByID(ctx context.Context, id uint) (*models.PlayerStatistic, error)
	// GetByDateRange returns the player's statistics with a game date in
	// [from, to], both ends included.
	GetByDateRange(ctx context.Context, playerID uint, from, to time.Time) ([]models.PlayerStatistic, error)
	Add(ctx context.Context, actor string, stat *models.PlayerStatistic) error
	Update(ctx context.Context, actor string, stat *models.PlayerStatistic) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// GetAggregates summarises the player's statistics, restricted to one
	// assignment when teamAssignmentID is given.
	GetAggregates(ctx context.Context, playerID uint, teamAssignmentID *uint) (*models.StatisticAggregates, error)
}

type statisticRepository struct {
	db      *gorm.DB
	stamper *audit.Stamper
}

const joinAssignments = "JOIN team_assignments ON team_assignments.id = player_statistics.team_assignment_id"

func (r *statisticRepository) ListByPlayer(ctx context.Context, playerID uint) ([]models.PlayerStatistic, error) {
	var stats []models.PlayerStatistic
	err := r.db.WithContext(ctx).
		Joins(joinAssignments).
		Where("team_assignments.player_id = ?", playerID).
		Order("player_statistics.game_date DESC, player_statistics.id DESC").
		Find(&stats).Error
	if err != nil {
		return nil, apperrors.Persistence("list by player", apperrors.EntityPlayerStatistic, nil, err)
	}
	return stats, nil
}

func (r *statisticRepository) ListByAssignment(ctx context.Context, teamAssignmentID uint) ([]models.PlayerStatistic, error) {
	var stats []models.PlayerStatistic
	err := r.db.WithContext(ctx).
		Where("team_assignment_id = ?", teamAssignmentID).
		Order("game_date DESC, id DESC").
		Find(&stats).Error
	if err != nil {
		return nil, apperrors.Persistence("list by assignment", apperrors.EntityPlayerStatistic, nil, err)
	}
	return stats, nil
}

func (r *statisticRepository) GetByID(ctx context.Context, id uint) (*models.PlayerStatistic, error) {
	var stat models.PlayerStatistic
	if err := r.db.WithContext(ctx).First(&stat, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, apperrors.Persistence("get", apperrors.EntityPlayerStatistic, &id, err)
	}
	return &stat, nil
}

func (r *statisticRepository) GetByDateRange(ctx context.Context, playerID uint, from, to time.Time) ([]models.PlayerStatistic, error) {
	var stats []models.PlayerStatistic
	err := r.db.WithContext(ctx).
		Joins(joinAssignments).
		Where("team_assignments.player_id = ?", playerID).
		Where("player_statistics.game_date >= ? AND player_statistics.game_date <= ?",
			utils.DateOnly(from), utils.DateOnly(to)).
		Order("player_statistics.game_date DESC, player_statistics.id DESC").
		Find(&stats).Error
	if err != nil {
		return nil, apperrors.Persistence("get by date range", apperrors.EntityPlayerStatistic, nil, err)
	}
	return stats, nil
}

func (r *statisticRepository) Add(ctx context.Context, actor string, stat *models.PlayerStatistic) error {
	stat.ID = 0
	stat.GameDate = utils.DateOnly(stat.GameDate)
	stat.ModifiedAt, stat.ModifiedBy = nil, nil
	r.stamper.Stamp(stat, audit.StateAdded, actor)

	errs := validation.PlayerStatistic(*stat).Merge(validation.Provenance("created_by", stat.CreatedBy))
	if !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityPlayerStatistic, errs)
	}
	if err := requireAssignment(ctx, r.db, stat.TeamAssignmentID); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(stat).Error; err != nil {
		return apperrors.Persistence("add", apperrors.EntityPlayerStatistic, nil, err)
	}
	return nil
}

func (r *statisticRepository) Update(ctx context.Context, actor string, stat *models.PlayerStatistic) error {
	stat.GameDate = utils.DateOnly(stat.GameDate)
	errs := validation.PlayerStatistic(*stat).Merge(validation.Provenance("modified_by", actor))
	if !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityPlayerStatistic, errs)
	}

	id := stat.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PlayerStatistic
		if err := tx.First(&existing, id).Error; err != nil {
			if notFound(err) {
				return apperrors.NotFound(apperrors.EntityPlayerStatistic, id)
			}
			return apperrors.Persistence("update", apperrors.EntityPlayerStatistic, &id, err)
		}
		if err := requireAssignment(ctx, tx, stat.TeamAssignmentID); err != nil {
			return err
		}

		existing.TeamAssignmentID = stat.TeamAssignmentID
		existing.GameDate = stat.GameDate
		existing.MinutesPlayed = stat.MinutesPlayed
		existing.Starter = stat.Starter
		existing.JerseyNumber = stat.JerseyNumber
		existing.Goals = stat.Goals
		existing.Assists = stat.Assists
		r.stamper.Stamp(&existing, audit.StateModified, actor)

		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return apperrors.Persistence("update", apperrors.EntityPlayerStatistic, &id, err)
		}
		*stat = existing
		return nil
	})
}

func (r *statisticRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.PlayerStatistic{}, id)
	if result.Error != nil {
		return false, apperrors.Persistence("delete", apperrors.EntityPlayerStatistic, &id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *statisticRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PlayerStatistic{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Persistence("exists", apperrors.EntityPlayerStatistic, &id, err)
	}
	return count > 0, nil
}

// requireAssignment reports a statistic pointing at a missing team assignment
// as a validation failure of its team_assignment_id field.
func requireAssignment(ctx context.Context, db *gorm.DB, teamAssignmentID uint) error {
	var count int64
	err := db.WithContext(ctx).Model(&models.TeamAssignment{}).Where("id = ?", teamAssignmentID).Count(&count).Error
	if err != nil {
		return apperrors.Persistence("exists", apperrors.EntityTeamAssignment, &teamAssignmentID, err)
	}
	if count == 0 {
		errs := validation.Errors{}
		errs.Add("team_assignment_id", "references a missing team assignment")
		return apperrors.ValidationFailed(apperrors.EntityPlayerStatistic, errs)
	}
	return nil
}

type aggregateRow struct {
	Games        int64
	GamesStarted int64
	TotalMinutes int64
	TotalGoals   int64
	TotalAssists int64
}

func (r *statisticRepository) GetAggregates(ctx context.Context, playerID uint, teamAssignmentID *uint) (*models.StatisticAggregates, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PlayerStatistic{}).
		Select(`COUNT(player_statistics.id) AS games,
			COALESCE(SUM(CASE WHEN player_statistics.starter THEN 1 ELSE 0 END), 0) AS games_started,
			COALESCE(SUM(player_statistics.minutes_played), 0) AS total_minutes,
			COALESCE(SUM(player_statistics.goals), 0) AS total_goals,
			COALESCE(SUM(player_statistics.assists), 0) AS total_assists`).
		Joins(joinAssignments).
		Where("team_assignments.player_id = ?", playerID)
	if teamAssignmentID != nil {
		query = query.Where("player_statistics.team_assignment_id = ?", *teamAssignmentID)
	}

	var row aggregateRow
	if err := query.Scan(&row).Error; err != nil {
		return nil, apperrors.Persistence("aggregate", apperrors.EntityPlayerStatistic, nil, err)
	}

	aggregates := &models.StatisticAggregates{
		PlayerID:         playerID,
		TeamAssignmentID: teamAssignmentID,
		Games:            row.Games,
		GamesStarted:     row.GamesStarted,
		TotalMinutes:     row.TotalMinutes,
		TotalGoals:       row.TotalGoals,
		TotalAssists:     row.TotalAssists,
	}
	aggregates.ComputeAverages()
	return aggregates, nil
}
