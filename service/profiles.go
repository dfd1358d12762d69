package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
)

const DefaultFullName = "New User"

type ProfileInput struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

// GetOrCreateProfile returns the user's profile, persisting the default one
// on first access.
func (s *Service) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, invalid("id", "is required")
	}
	p, err := s.repo.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	def := &models.Profile{
		ID:        userID,
		FullName:  DefaultFullName,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateProfileIfAbsent(ctx, def); err != nil {
		return nil, err
	}
	// Re-read: a concurrent first fetch or upsert may have won.
	return s.repo.GetProfile(ctx, userID)
}

// UpsertProfile writes the given fields over the current (or default) profile.
func (s *Service) UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.Profile, error) {
	p, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, invalid("full_name", "must not be empty")
		}
		p.FullName = name
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
