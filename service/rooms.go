package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
)

// RoomInput carries the owner-editable fields of a room.
type RoomInput struct {
	Title            string
	Location         string
	Price            float64
	PropertyType     string
	TenantPreference string
	ContactNumber    string
	ImageURL         string
}

// RoomPatch is a partial update; nil fields are left alone.
type RoomPatch struct {
	Title            *string
	Location         *string
	Price            *float64
	PropertyType     *string
	TenantPreference *string
	ContactNumber    *string
	ImageURL         *string
}

// anyPropertyType lists the values the browse form sends for "no filter".
var anyPropertyType = map[string]bool{
	"":          true,
	"any":       true,
	"all":       true,
	"all types": true,
	"any type":  true,
}

// IsAnyPropertyType reports whether t means "do not filter by type".
func IsAnyPropertyType(t string) bool {
	return anyPropertyType[strings.ToLower(strings.TrimSpace(t))]
}

func (s *Service) ListRooms(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	f.Location = strings.TrimSpace(f.Location)
	if IsAnyPropertyType(f.PropertyType) {
		f.PropertyType = ""
	}
	return s.repo.ListRooms(ctx, f)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, roomLookupErr(err)
	}
	return room, nil
}

func (s *Service) ListRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Room, error) {
	return s.repo.ListRoomsByOwner(ctx, ownerID)
}

func (s *Service) CreateRoom(ctx context.Context, ownerID uuid.UUID, in RoomInput) (*models.Room, error) {
	if ownerID == uuid.Nil {
		return nil, invalid("owner_id", "is required")
	}
	in = trimRoomInput(in)
	if err := validateRoomInput(in); err != nil {
		return nil, err
	}

	room := &models.Room{
		ID:               s.newID(),
		OwnerID:          ownerID,
		Title:            in.Title,
		Location:         in.Location,
		Price:            in.Price,
		PropertyType:     in.PropertyType,
		TenantPreference: in.TenantPreference,
		ContactNumber:    in.ContactNumber,
		ImageURL:         in.ImageURL,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room created", "room_id", room.ID, "owner_id", ownerID)
	return room, nil
}

// UpdateRoom applies patch if callerID owns the room. The owner never changes.
func (s *Service) UpdateRoom(ctx context.Context, id, callerID uuid.UUID, patch RoomPatch) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, id, callerID, "update")
	if err != nil {
		return nil, err
	}

	applyRoomPatch(room, patch)
	in := trimRoomInput(RoomInput{
		Title:            room.Title,
		Location:         room.Location,
		Price:            room.Price,
		PropertyType:     room.PropertyType,
		TenantPreference: room.TenantPreference,
		ContactNumber:    room.ContactNumber,
		ImageURL:         room.ImageURL,
	})
	if err := validateRoomInput(in); err != nil {
		return nil, err
	}
	room.Title, room.Location, room.ContactNumber = in.Title, in.Location, in.ContactNumber
	room.PropertyType, room.TenantPreference, room.ImageURL = in.PropertyType, in.TenantPreference, in.ImageURL

	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return nil, roomLookupErr(err)
	}
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id, callerID uuid.UUID) error {
	if _, err := s.ownedRoom(ctx, id, callerID, "delete"); err != nil {
		return err
	}
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return roomLookupErr(err)
	}
	s.logger.Info("room deleted", "room_id", id, "owner_id", callerID)
	return nil
}

func (s *Service) ownedRoom(ctx context.Context, id, callerID uuid.UUID, action string) (*models.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.OwnerID != callerID {
		return nil, forbidden("you do not have permission to " + action + " this room")
	}
	return room, nil
}

func applyRoomPatch(room *models.Room, p RoomPatch) {
	if p.Title != nil {
		room.Title = *p.Title
	}
	if p.Location != nil {
		room.Location = *p.Location
	}
	if p.Price != nil {
		room.Price = *p.Price
	}
	if p.PropertyType != nil {
		room.PropertyType = *p.PropertyType
	}
	if p.TenantPreference != nil {
		room.TenantPreference = *p.TenantPreference
	}
	if p.ContactNumber != nil {
		room.ContactNumber = *p.ContactNumber
	}
	if p.ImageURL != nil {
		room.ImageURL = *p.ImageURL
	}
}

func trimRoomInput(in RoomInput) RoomInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.PropertyType = strings.TrimSpace(in.PropertyType)
	in.TenantPreference = strings.TrimSpace(in.TenantPreference)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

func validateRoomInput(in RoomInput) error {
	switch {
	case in.Title == "":
		return invalid("title", "is required")
	case in.Location == "":
		return invalid("location", "is required")
	case in.ContactNumber == "":
		return invalid("contact_number", "is required")
	case math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price <= 0:
		return invalid("price", "must be a positive number")
	}
	return nil
}

func roomLookupErr(err error) error {
	if isNotFound(err) {
		return notFound("room")
	}
	return err
}
