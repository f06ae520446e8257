package services

import (
	"context"
	"time"

	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/repository"

	"github.com/rs/zerolog/log"
)

type PlayerService struct {
	store *repository.Store
}

func NewPlayerService(store *repository.Store) *PlayerService {
	return &PlayerService{
		store: store,
	}
}

// Now is the reference instant for derived values such as age.
func (s *PlayerService) Now() time.Time {
	return s.store.Stamper().Now()
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.store.Players().List(ctx)
}

func (s *PlayerService) ListPlayersByUser(ctx context.Context, userID string) ([]models.Player, error) {
	return s.store.Players().GetByUserID(ctx, userID)
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	player, err := s.store.Players().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.NotFound(apperrors.EntityPlayer, id)
	}
	return player, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, actor string, player *models.Player) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Players().Add(ctx, actor, player)
	})
	if err != nil {
		return err
	}

	log.Info().Uint("player_id", player.ID).Str("actor", actor).Msg("player created")
	return nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, actor string, player *models.Player) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Players().Update(ctx, actor, player)
	})
	if err != nil {
		return err
	}

	log.Info().Uint("player_id", player.ID).Str("actor", actor).Msg("player updated")
	return nil
}

// DeletePlayer removes the player with every assignment and statistic it owns.
func (s *PlayerService) DeletePlayer(ctx context.Context, actor string, id uint) error {
	deleted, err := s.store.Players().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound(apperrors.EntityPlayer, id)
	}

	log.Info().Uint("player_id", id).Str("actor", actor).Msg("player deleted")
	return nil
}
