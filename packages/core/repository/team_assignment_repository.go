package repository

import (
	"context"

	"roster-api/packages/core/audit"
	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/utils"
	"roster-api/packages/core/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamAssignmentRepository defines the data operations on team assignments.
type TeamAssignmentRepository interface {
	ListByPlayer(ctx context.Context, playerID uint) ([]models.TeamAssignment, error)
	ListActiveByPlayer(ctx context.Context, playerID uint) ([]models.TeamAssignment, error)
	GetByID(ctx context.Context, id uint) (*models.TeamAssignment, error)
	Add(ctx context.Context, actor string, assignment *models.TeamAssignment) error
	Update(ctx context.Context, actor string, assignment *models.TeamAssignment) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// HasActiveDuplicate reports whether the player already has an active
	// assignment to the same team in the same championship. The row with
	// excludeID, when given, is ignored.
	HasActiveDuplicate(ctx context.Context, playerID uint, teamName, championshipName string, excludeID *uint) (bool, error)
}

type teamAssignmentRepository struct {
	db      *gorm.DB
	stamper *audit.Stamper
}

func (r *teamAssignmentRepository) ListByPlayer(ctx context.Context, playerID uint) ([]models.TeamAssignment, error) {
	var assignments []models.TeamAssignment
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("joined_date DESC, id DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, apperrors.Persistence("list by player", apperrors.EntityTeamAssignment, nil, err)
	}
	return assignments, nil
}

func (r *teamAssignmentRepository) ListActiveByPlayer(ctx context.Context, playerID uint) ([]models.TeamAssignment, error) {
	var assignments []models.TeamAssignment
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND left_date IS NULL", playerID).
		Order("joined_date DESC, id DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, apperrors.Persistence("list active by player", apperrors.EntityTeamAssignment, nil, err)
	}
	return assignments, nil
}

func (r *teamAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.TeamAssignment, error) {
	var assignment models.TeamAssignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, apperrors.Persistence("get", apperrors.EntityTeamAssignment, &id, err)
	}
	return &assignment, nil
}

func (r *teamAssignmentRepository) Add(ctx context.Context, actor string, assignment *models.TeamAssignment) error {
	assignment.ID = 0
	normalizeAssignment(assignment)
	assignment.ModifiedAt, assignment.ModifiedBy = nil, nil
	r.stamper.Stamp(assignment, audit.StateAdded, actor)

	errs := validation.TeamAssignment(*assignment).Merge(validation.Provenance("created_by", assignment.CreatedBy))
	if !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityTeamAssignment, errs)
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error; err != nil {
		if uniqueViolation(err) {
			return apperrors.DuplicateActiveAssignment(assignment.PlayerID, assignment.TeamName, assignment.ChampionshipName)
		}
		return apperrors.Persistence("add", apperrors.EntityTeamAssignment, nil, err)
	}
	return nil
}

// Update overwrites team, championship and dates of the stored assignment.
// The owning player never changes, so assignment.PlayerID is ignored.
func (r *teamAssignmentRepository) Update(ctx context.Context, actor string, assignment *models.TeamAssignment) error {
	normalizeAssignment(assignment)
	errs := validation.TeamAssignment(*assignment).Merge(validation.Provenance("modified_by", actor))
	delete(errs, "player_id")
	if !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityTeamAssignment, errs)
	}

	id := assignment.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.TeamAssignment
		if err := tx.First(&existing, id).Error; err != nil {
			if notFound(err) {
				return apperrors.NotFound(apperrors.EntityTeamAssignment, id)
			}
			return apperrors.Persistence("update", apperrors.EntityTeamAssignment, &id, err)
		}

		existing.TeamName = assignment.TeamName
		existing.ChampionshipName = assignment.ChampionshipName
		existing.JoinedDate = assignment.JoinedDate
		existing.LeftDate = assignment.LeftDate
		r.stamper.Stamp(&existing, audit.StateModified, actor)

		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			if uniqueViolation(err) {
				return apperrors.DuplicateActiveAssignment(existing.PlayerID, existing.TeamName, existing.ChampionshipName)
			}
			return apperrors.Persistence("update", apperrors.EntityTeamAssignment, &id, err)
		}
		*assignment = existing
		return nil
	})
}

// Delete removes the assignment and its statistics and reports whether the
// assignment existed.
func (r *teamAssignmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_assignment_id = ?", id).Delete(&models.PlayerStatistic{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TeamAssignment{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, apperrors.Persistence("delete", apperrors.EntityTeamAssignment, &id, err)
	}
	return deleted, nil
}

func (r *teamAssignmentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TeamAssignment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Persistence("exists", apperrors.EntityTeamAssignment, &id, err)
	}
	return count > 0, nil
}

func (r *teamAssignmentRepository) HasActiveDuplicate(ctx context.Context, playerID uint, teamName, championshipName string, excludeID *uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TeamAssignment{}).
		Where("player_id = ? AND team_name = ? AND championship_name = ? AND left_date IS NULL",
			playerID, teamName, championshipName)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Persistence("has active duplicate", apperrors.EntityTeamAssignment, nil, err)
	}
	return count > 0, nil
}

func normalizeAssignment(a *models.TeamAssignment) {
	a.JoinedDate = utils.DateOnly(a.JoinedDate)
	a.LeftDate = utils.DateOnlyPtr(a.LeftDate)
}
