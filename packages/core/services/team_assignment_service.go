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

type TeamAssignmentService struct {
	store *repository.Store
}

func NewTeamAssignmentService(store *repository.Store) *TeamAssignmentService {
	return &TeamAssignmentService{
		store: store,
	}
}

// ListAssignments returns the player's assignments, newest first. With
// activeOnly only the assignments without a left date are returned.
func (s *TeamAssignmentService) ListAssignments(ctx context.Context, playerID uint, activeOnly bool) ([]models.TeamAssignment, error) {
	exists, err := s.store.Players().Exists(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound(apperrors.EntityPlayer, playerID)
	}

	if activeOnly {
		return s.store.TeamAssignments().ListActiveByPlayer(ctx, playerID)
	}
	return s.store.TeamAssignments().ListByPlayer(ctx, playerID)
}

func (s *TeamAssignmentService) GetAssignment(ctx context.Context, id uint) (*models.TeamAssignment, error) {
	assignment, err := s.store.TeamAssignments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperrors.NotFound(apperrors.EntityTeamAssignment, id)
	}
	return assignment, nil
}

// AddAssignment records a new membership. The owning player row is locked
// for the duration of the write so the active-duplicate check and the insert
// see the same state.
func (s *TeamAssignmentService) AddAssignment(ctx context.Context, actor string, assignment *models.TeamAssignment) error {
	if err := precheckAssignment(assignment); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := lockPlayer(ctx, tx, assignment.PlayerID); err != nil {
			return err
		}
		if assignment.IsActive() {
			if err := rejectActiveDuplicate(ctx, tx, assignment, nil); err != nil {
				return err
			}
		}
		return tx.TeamAssignments().Add(ctx, actor, assignment)
	})
	if err != nil {
		return err
	}

	log.Info().
		Uint("assignment_id", assignment.ID).
		Uint("player_id", assignment.PlayerID).
		Str("actor", actor).
		Msg("team assignment created")
	return nil
}

// UpdateAssignment overwrites team, championship and dates. The assignment
// keeps its player whatever assignment.PlayerID says.
func (s *TeamAssignmentService) UpdateAssignment(ctx context.Context, actor string, assignment *models.TeamAssignment) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.TeamAssignments().GetByID(ctx, assignment.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NotFound(apperrors.EntityTeamAssignment, assignment.ID)
		}
		assignment.PlayerID = existing.PlayerID

		if err := precheckAssignment(assignment); err != nil {
			return err
		}
		if err := lockPlayer(ctx, tx, assignment.PlayerID); err != nil {
			return err
		}
		if assignment.IsActive() {
			if err := rejectActiveDuplicate(ctx, tx, assignment, &assignment.ID); err != nil {
				return err
			}
		}
		return tx.TeamAssignments().Update(ctx, actor, assignment)
	})
	if err != nil {
		return err
	}

	log.Info().
		Uint("assignment_id", assignment.ID).
		Uint("player_id", assignment.PlayerID).
		Str("actor", actor).
		Msg("team assignment updated")
	return nil
}

// CloseAssignment ends a membership on leftDate.
func (s *TeamAssignmentService) CloseAssignment(ctx context.Context, actor string, id uint, leftDate time.Time) (*models.TeamAssignment, error) {
	var closed *models.TeamAssignment
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.TeamAssignments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NotFound(apperrors.EntityTeamAssignment, id)
		}

		left := utils.DateOnly(leftDate)
		existing.LeftDate = &left
		if err := tx.TeamAssignments().Update(ctx, actor, existing); err != nil {
			return err
		}
		closed = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("assignment_id", id).
		Time("left_date", *closed.LeftDate).
		Str("actor", actor).
		Msg("team assignment closed")
	return closed, nil
}

func (s *TeamAssignmentService) DeleteAssignment(ctx context.Context, actor string, id uint) error {
	deleted, err := s.store.TeamAssignments().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound(apperrors.EntityTeamAssignment, id)
	}

	log.Info().Uint("assignment_id", id).Str("actor", actor).Msg("team assignment deleted")
	return nil
}

// precheckAssignment runs the content rules before the player lookup so a
// malformed request is reported as such rather than as a missing player.
func precheckAssignment(a *models.TeamAssignment) error {
	a.JoinedDate = utils.DateOnly(a.JoinedDate)
	a.LeftDate = utils.DateOnlyPtr(a.LeftDate)
	if errs := validation.TeamAssignment(*a); !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityTeamAssignment, errs)
	}
	return nil
}

func lockPlayer(ctx context.Context, tx *repository.Store, playerID uint) error {
	exists, err := tx.Players().Lock(ctx, playerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound(apperrors.EntityPlayer, playerID)
	}
	return nil
}

func rejectActiveDuplicate(ctx context.Context, tx *repository.Store, a *models.TeamAssignment, excludeID *uint) error {
	dup, err := tx.TeamAssignments().HasActiveDuplicate(ctx, a.PlayerID, a.TeamName, a.ChampionshipName, excludeID)
	if err != nil {
		return err
	}
	if dup {
		return apperrors.DuplicateActiveAssignment(a.PlayerID, a.TeamName, a.ChampionshipName)
	}
	return nil
}
