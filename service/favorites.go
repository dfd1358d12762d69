package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
)

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

// ToggleFavorite bookmarks roomID for userID, or removes the bookmark if it
// exists. It returns FavoriteAdded or FavoriteRemoved.
func (s *Service) ToggleFavorite(ctx context.Context, userID, roomID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", invalid("user_id", "is required")
	}
	if roomID == uuid.Nil {
		return "", invalid("room_id", "is required")
	}

	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return "", err
	}

	added, err := s.repo.ToggleFavorite(ctx, &models.Favorite{
		ID:     s.newID(),
		UserID: userID,
		RoomID: roomID,
	})
	if err != nil {
		return "", err
	}
	if added {
		return FavoriteAdded, nil
	}
	return FavoriteRemoved, nil
}

func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.repo.ListFavoriteRoomIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}
