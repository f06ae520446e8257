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

// PlayerRepository defines the data operations on players.
type PlayerRepository interface {
	List(ctx context.Context) ([]models.Player, error)
	GetByID(ctx context.Context, id uint) (*models.Player, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Player, error)
	Add(ctx context.Context, actor string, player *models.Player) error
	Update(ctx context.Context, actor string, player *models.Player) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// Lock takes a row lock on the player for the rest of the enclosing
	// transaction and reports whether the player exists.
	Lock(ctx context.Context, id uint) (bool, error)
}

type playerRepository struct {
	db      *gorm.DB
	stamper *audit.Stamper
}

func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&players).Error; err != nil {
		return nil, apperrors.Persistence("list", apperrors.EntityPlayer, nil, err)
	}
	return players, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	if err := r.db.WithContext(ctx).First(&player, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, apperrors.Persistence("get", apperrors.EntityPlayer, &id, err)
	}
	return &player, nil
}

func (r *playerRepository) GetByUserID(ctx context.Context, userID string) ([]models.Player, error) {
	var players []models.Player
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&players).Error
	if err != nil {
		return nil, apperrors.Persistence("get by user", apperrors.EntityPlayer, nil, err)
	}
	return players, nil
}

func (r *playerRepository) Add(ctx context.Context, actor string, player *models.Player) error {
	player.ID = 0
	player.DateOfBirth = utils.DateOnly(player.DateOfBirth)
	player.ModifiedAt, player.ModifiedBy = nil, nil
	r.stamper.Stamp(player, audit.StateAdded, actor)

	errs := validation.Player(*player).Merge(validation.Provenance("created_by", player.CreatedBy))
	if !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityPlayer, errs)
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(player).Error; err != nil {
		return apperrors.Persistence("add", apperrors.EntityPlayer, nil, err)
	}
	return nil
}

// Update overwrites the mutable fields of the stored player with those of
// player. The creation audit of the stored row is kept.
func (r *playerRepository) Update(ctx context.Context, actor string, player *models.Player) error {
	player.DateOfBirth = utils.DateOnly(player.DateOfBirth)
	errs := validation.Player(*player).Merge(validation.Provenance("modified_by", actor))
	if !errs.Valid() {
		return apperrors.ValidationFailed(apperrors.EntityPlayer, errs)
	}

	id := player.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Player
		if err := tx.First(&existing, id).Error; err != nil {
			if notFound(err) {
				return apperrors.NotFound(apperrors.EntityPlayer, id)
			}
			return apperrors.Persistence("update", apperrors.EntityPlayer, &id, err)
		}

		existing.UserID = player.UserID
		existing.Name = player.Name
		existing.DateOfBirth = player.DateOfBirth
		existing.Gender = player.Gender
		existing.PhotoURL = player.PhotoURL
		r.stamper.Stamp(&existing, audit.StateModified, actor)

		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return apperrors.Persistence("update", apperrors.EntityPlayer, &id, err)
		}
		*player = existing
		return nil
	})
}

// Delete removes the player with its assignments and their statistics,
// children first, and reports whether the player existed.
func (r *playerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignmentIDs []uint
		if err := tx.Model(&models.TeamAssignment{}).Where("player_id = ?", id).Pluck("id", &assignmentIDs).Error; err != nil {
			return err
		}
		if len(assignmentIDs) > 0 {
			if err := tx.Where("team_assignment_id IN ?", assignmentIDs).Delete(&models.PlayerStatistic{}).Error; err != nil {
				return err
			}
			if err := tx.Where("player_id = ?", id).Delete(&models.TeamAssignment{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Player{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, apperrors.Persistence("delete", apperrors.EntityPlayer, &id, err)
	}
	return deleted, nil
}

func (r *playerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Player{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Persistence("exists", apperrors.EntityPlayer, &id, err)
	}
	return count > 0, nil
}

func (r *playerRepository) Lock(ctx context.Context, id uint) (bool, error) {
	var player models.Player
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&player, id).Error
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		return false, apperrors.Persistence("lock", apperrors.EntityPlayer, &id, err)
	}
	return true, nil
}
