package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the Postgres implementation of service.Repository.
type Store struct {
	DB *gorm.DB
}

var _ service.Repository = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// translate maps gorm errors onto the service sentinels. The gorm.Config
// must set TranslateError for duplicate keys to be recognised.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return service.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return service.ErrDuplicate
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Rooms

func (s *Store) ListRooms(ctx context.Context, f service.RoomFilter) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Model(&models.Room{})
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+likeEscaper.Replace(f.Location)+"%")
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	rooms := []models.Room{}
	err := q.Order("created_at DESC").Order("id DESC").Find(&rooms).Error
	return rooms, translate(err)
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *Store) GetRoomsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Room, error) {
	rooms := []models.Room{}
	if len(ids) == 0 {
		return rooms, nil
	}
	err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error
	return rooms, translate(err)
}

func (s *Store) ListRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&rooms).Error
	return rooms, translate(err)
}

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	return translate(s.DB.WithContext(ctx).Create(room).Error)
}

// SaveRoom updates an existing room; it never inserts.
func (s *Store) SaveRoom(ctx context.Context, room *models.Room) error {
	res := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", room.ID).Select("*").Updates(room)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return translate(s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Room{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

// Applications

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	return translate(s.DB.WithContext(ctx).Create(app).Error)
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.DB.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	return apps, translate(err)
}

func (s *Store) ListApplicationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	return apps, translate(err)
}

func (s *Store) TransitionApplication(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Messages

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	return translate(s.DB.WithContext(ctx).Create(msg).Error)
}

func (s *Store) ListTranscript(ctx context.Context, roomID, a, b uuid.UUID) ([]models.Message, error) {
	msgs := []models.Message{}
	err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error
	return msgs, translate(err)
}

func (s *Store) ListMessagesForUser(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	msgs := []models.Message{}
	err := s.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Order("id DESC").
		Find(&msgs).Error
	return msgs, translate(err)
}

// Favorites

func (s *Store) ToggleFavorite(ctx context.Context, fav *models.Favorite) (bool, error) {
	added := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND room_id = ?", fav.UserID, fav.RoomID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		// A concurrent toggle may have inserted first; either way the
		// favorite now exists.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, translate(err)
}

func (s *Store) ListFavoriteRoomIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.DB.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("room_id", &ids).Error
	return ids, translate(err)
}

// Profiles

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) GetProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if len(ids) == 0 {
		return profiles, nil
	}
	err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error
	return profiles, translate(err)
}

func (s *Store) CreateProfileIfAbsent(ctx context.Context, p *models.Profile) error {
	return translate(s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error)
}

func (s *Store) UpsertProfile(ctx context.Context, p *models.Profile) error {
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "bio", "avatar_url", "updated_at"}),
	}).Create(p).Error
	return translate(err)
}

// Reviews

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	return translate(s.DB.WithContext(ctx).Create(r).Error)
}

func (s *Store) ListReviews(ctx context.Context, roomID uuid.UUID) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	return reviews, translate(err)
}

func (s *Store) ReviewStats(ctx context.Context, roomID uuid.UUID) (int64, float64, error) {
	var row struct {
		Count   int64
		Average float64
	}
	err := s.DB.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("room_id = ?", roomID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, translate(err)
	}
	return row.Count, row.Average, nil
}
