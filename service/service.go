// Package service holds the marketplace rules: room ownership, the
// application workflow, chat transcripts, inbox derivation, favorites,
// profiles and reviews. It is stateless; persistence sits behind Repository.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/realtime"
)

// RoomFilter narrows ListRooms. Empty fields match everything.
type RoomFilter struct {
	Location     string
	PropertyType string
}

// Repository is the relational store. Implementations translate missing rows
// into ErrNotFound and unique-constraint violations into ErrDuplicate.
type Repository interface {
	ListRooms(ctx context.Context, f RoomFilter) ([]models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetRoomsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Room, error)
	ListRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	SaveRoom(ctx context.Context, room *models.Room) error
	// DeleteRoom removes the room and its favorites together.
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error)
	ListApplicationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Application, error)
	// TransitionApplication sets status to `to` only if it is currently
	// `from`, reporting whether a row changed.
	TransitionApplication(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) (bool, error)

	CreateMessage(ctx context.Context, msg *models.Message) error
	// ListTranscript returns the room's messages between a and b, oldest first.
	ListTranscript(ctx context.Context, roomID, a, b uuid.UUID) ([]models.Message, error)
	// ListMessagesForUser returns every message userID sent or received,
	// newest first.
	ListMessagesForUser(ctx context.Context, userID uuid.UUID) ([]models.Message, error)

	// ToggleFavorite atomically removes the (user, room) favorite or, if
	// there was none, inserts fav. It reports whether fav was added.
	ToggleFavorite(ctx context.Context, fav *models.Favorite) (bool, error)
	ListFavoriteRoomIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
	// CreateProfileIfAbsent inserts p unless a profile with its ID exists.
	CreateProfileIfAbsent(ctx context.Context, p *models.Profile) error
	UpsertProfile(ctx context.Context, p *models.Profile) error

	CreateReview(ctx context.Context, r *models.Review) error
	ListReviews(ctx context.Context, roomID uuid.UUID) ([]models.Review, error)
	ReviewStats(ctx context.Context, roomID uuid.UUID) (count int64, average float64, err error)
}

type Service struct {
	repo   Repository
	events realtime.Publisher
	logger *slog.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

type Option func(*Service)

func WithPublisher(p realtime.Publisher) Option {
	return func(s *Service) { s.events = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		events: realtime.Discard{},
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish logs instead of failing: the write already committed and
// subscribers reconcile by re-querying.
func (s *Service) publish(ctx context.Context, ev realtime.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish change event", "table", ev.Table, "record_id", ev.RecordID, "error", err)
	}
}

func (s *Service) roomIndex(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Room, error) {
	out := make(map[uuid.UUID]models.Room, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rooms, err := s.repo.GetRoomsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		out[r.ID] = r
	}
	return out, nil
}

func (s *Service) profileIndex(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error) {
	out := make(map[uuid.UUID]models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	profiles, err := s.repo.GetProfilesByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
