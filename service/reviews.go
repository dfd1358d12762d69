package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
)

type ReviewInput struct {
	RoomID  uuid.UUID
	UserID  uuid.UUID
	Rating  int
	Comment string
}

// ReviewWithAuthor attaches the reviewer's profile; Author is nil when the
// reviewer never created one.
type ReviewWithAuthor struct {
	models.Review
	Author *models.Profile
}

type ReviewSummary struct {
	RoomID  uuid.UUID
	Count   int64
	Average float64
}

// AddReview records a rating in [1,5]. A user may review the same room more
// than once; the owner may not review their own room.
func (s *Service) AddReview(ctx context.Context, in ReviewInput) (*models.Review, error) {
	if in.UserID == uuid.Nil {
		return nil, invalid("user_id", "is required")
	}
	if in.RoomID == uuid.Nil {
		return nil, invalid("room_id", "is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating", "must be an integer between 1 and 5")
	}
	room, err := s.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room.OwnerID == in.UserID {
		return nil, forbidden("you cannot review your own room")
	}

	r := &models.Review{
		ID:        s.newID(),
		RoomID:    room.ID,
		UserID:    in.UserID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListReviews returns the room's reviews, newest first.
func (s *Service) ListReviews(ctx context.Context, roomID uuid.UUID) ([]ReviewWithAuthor, error) {
	reviews, err := s.repo.ListReviews(ctx, roomID)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]uuid.UUID, 0, len(reviews))
	for _, r := range reviews {
		authorIDs = append(authorIDs, r.UserID)
	}
	profiles, err := s.profileIndex(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ReviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		rw := ReviewWithAuthor{Review: r}
		if p, ok := profiles[r.UserID]; ok {
			rw.Author = &p
		}
		out = append(out, rw)
	}
	return out, nil
}

func (s *Service) ReviewSummary(ctx context.Context, roomID uuid.UUID) (*ReviewSummary, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	count, avg, err := s.repo.ReviewStats(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{RoomID: roomID, Count: count, Average: avg}, nil
}
