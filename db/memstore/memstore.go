// Package memstore is an in-process service.Repository. It backs the
// service and handler tests and `roomshare serve --in-memory`; it enforces
// the same unique constraints as the Postgres schema.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/service"
)

type pair struct{ a, b uuid.UUID }

type Store struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]models.Room
	applications map[uuid.UUID]models.Application
	appIndex     map[pair]uuid.UUID // (room, applicant)
	messages     []models.Message
	favorites    map[pair]models.Favorite // (user, room)
	profiles     map[uuid.UUID]models.Profile
	reviews      []models.Review
}

var _ service.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		rooms:        map[uuid.UUID]models.Room{},
		applications: map[uuid.UUID]models.Application{},
		appIndex:     map[pair]uuid.UUID{},
		favorites:    map[pair]models.Favorite{},
		profiles:     map[uuid.UUID]models.Profile{},
	}
}

func newestRoomsFirst(rooms []models.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
		}
		return rooms[i].ID.String() > rooms[j].ID.String()
	})
}

func (s *Store) ListRooms(_ context.Context, f service.RoomFilter) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := strings.ToLower(f.Location)
	out := []models.Room{}
	for _, r := range s.rooms {
		if loc != "" && !strings.Contains(strings.ToLower(r.Location), loc) {
			continue
		}
		if f.PropertyType != "" && r.PropertyType != f.PropertyType {
			continue
		}
		out = append(out, r)
	}
	newestRoomsFirst(out)
	return out, nil
}

func (s *Store) GetRoom(_ context.Context, id uuid.UUID) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &r, nil
}

func (s *Store) GetRoomsByIDs(_ context.Context, ids []uuid.UUID) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Room{}
	for _, id := range ids {
		if r, ok := s.rooms[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ListRoomsByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Room{}
	for _, r := range s.rooms {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	newestRoomsFirst(out)
	return out, nil
}

func (s *Store) CreateRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return service.ErrDuplicate
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) SaveRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return service.ErrNotFound
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) DeleteRoom(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return service.ErrNotFound
	}
	delete(s.rooms, id)
	for k := range s.favorites {
		if k.b == id {
			delete(s.favorites, k)
		}
	}
	return nil
}

func (s *Store) CreateApplication(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pair{app.RoomID, app.ApplicantID}
	if _, ok := s.appIndex[key]; ok {
		return service.ErrDuplicate
	}
	if _, ok := s.applications[app.ID]; ok {
		return service.ErrDuplicate
	}
	s.applications[app.ID] = *app
	s.appIndex[key] = app.ID
	return nil
}

func (s *Store) GetApplication(_ context.Context, id uuid.UUID) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &a, nil
}

func (s *Store) listApplications(match func(models.Application) bool) []models.Application {
	out := []models.Application{}
	for _, a := range s.applications {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (s *Store) ListApplicationsByApplicant(_ context.Context, applicantID uuid.UUID) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listApplications(func(a models.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (s *Store) ListApplicationsByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listApplications(func(a models.Application) bool { return a.OwnerID == ownerID }), nil
}

func (s *Store) TransitionApplication(_ context.Context, id uuid.UUID, from, to models.ApplicationStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	s.applications[id] = a
	return true, nil
}

// Messages are kept in insertion order; callers sort.

func (s *Store) CreateMessage(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *Store) ListTranscript(_ context.Context, roomID, a, b uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.messages {
		if m.RoomID == roomID && m.Between(a, b) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) ListMessagesForUser(_ context.Context, userID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.messages {
		if m.Involves(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) ToggleFavorite(_ context.Context, fav *models.Favorite) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pair{fav.UserID, fav.RoomID}
	if _, ok := s.favorites[key]; ok {
		delete(s.favorites, key)
		return false, nil
	}
	s.favorites[key] = *fav
	return true, nil
}

func (s *Store) ListFavoriteRoomIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []uuid.UUID{}
	for k := range s.favorites {
		if k.a == userID {
			ids = append(ids, k.b)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (s *Store) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &p, nil
}

func (s *Store) GetProfilesByIDs(_ context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Profile{}
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) CreateProfileIfAbsent(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		s.profiles[p.ID] = *p
	}
	return nil
}

func (s *Store) UpsertProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = *p
	return nil
}

func (s *Store) CreateReview(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, *r)
	return nil
}

func (s *Store) ListReviews(_ context.Context, roomID uuid.UUID) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (s *Store) ReviewStats(_ context.Context, roomID uuid.UUID) (int64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count, sum int64
	for _, r := range s.reviews {
		if r.RoomID == roomID {
			count++
			sum += int64(r.Rating)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, float64(sum) / float64(count), nil
}
