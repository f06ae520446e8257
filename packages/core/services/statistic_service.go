package services

import (
	"context"
	"time"

	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/repository"
	"roster-api/packages/core/utils"
	"roster-api/packages/core/validation"

	"github.com/rs/zerolog/log"
)

type StatisticService struct {
	store *repository.Store
}

func NewStatisticService(store *repository.Store) *StatisticService {
	return &StatisticService{
		store: store,
	}
}

func (s *StatisticService) ListByPlayer(ctx context.Context, playerID uint) ([]models.PlayerStatistic, error) {
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return s.store.Statistics().ListByPlayer(ctx, playerID)
}

// ListByDateRange returns the player's games played between from and to,
// both included.
func (s *StatisticService) ListByDateRange(ctx context.Context, playerID uint, from, to time.Time) ([]models.PlayerStatistic, error) {
	from, to = utils.DateOnly(from), utils.DateOnly(to)
	if to.Before(from) {
		errs := validation.Errors{}
		errs.Add("to", "must not be earlier than from")
		return nil, apperrors.ValidationFailed(apperrors.EntityPlayerStatistic, errs)
	}
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return s.store.Statistics().GetByDateRange(ctx, playerID, from, to)
}

func (s *StatisticService) ListByAssignment(ctx context.Context, teamAssignmentID uint) ([]models.PlayerStatistic, error) {
	exists, err := s.store.TeamAssignments().Exists(ctx, teamAssignmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound(apperrors.EntityTeamAssignment, teamAssignmentID)
	}
	return s.store.Statistics().ListByAssignment(ctx, teamAssignmentID)
}

func (s *StatisticService) GetStatistic(ctx context.Context, id uint) (*models.PlayerStatistic, error) {
	stat, err := s.store.Statistics().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, apperrors.NotFound(apperrors.EntityPlayerStatistic, id)
	}
	return stat, nil
}

// GetAggregates summarises the player's games, restricted to one assignment
// when teamAssignmentID is given.
func (s *StatisticService) GetAggregates(ctx context.Context, playerID uint, teamAssignmentID *uint) (*models.StatisticAggregates, error) {
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return s.store.Statistics().GetAggregates(ctx, playerID, teamAssignmentID)
}

func (s *StatisticService) AddStatistic(ctx context.Context, actor string, stat *models.PlayerStatistic) error {
	if err := s.store.Statistics().Add(ctx, actor, stat); err != nil {
		return err
	}

	log.Info().
		Uint("statistic_id", stat.ID).
		Uint("assignment_id", stat.TeamAssignmentID).
		Str("actor", actor).
		Msg("player statistic created")
	return nil
}

func (s *StatisticService) UpdateStatistic(ctx context.Context, actor string, stat *models.PlayerStatistic) error {
	if err := s.store.Statistics().Update(ctx, actor, stat); err != nil {
		return err
	}

	log.Info().
		Uint("statistic_id", stat.ID).
		Uint("assignment_id", stat.TeamAssignmentID).
		Str("actor", actor).
		Msg("player statistic updated")
	return nil
}

func (s *StatisticService) DeleteStatistic(ctx context.Context, actor string, id uint) error {
	deleted, err := s.store.Statistics().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound(apperrors.EntityPlayerStatistic, id)
	}

	log.Info().Uint("statistic_id", id).Str("actor", actor).Msg("player statistic deleted")
	return nil
}

func (s *StatisticService) requirePlayer(ctx context.Context, playerID uint) error {
	exists, err := s.store.Players().Exists(ctx, playerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound(apperrors.EntityPlayer, playerID)
	}
	return nil
}
