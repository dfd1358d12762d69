package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/service"
)

const (
	anonymousReviewer = "Anonymous User"
	unknownUser       = "User"
)

// flexPrice accepts a JSON number or a numeric string.
type flexPrice float64

func (p *flexPrice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not a number", s)
		}
		*p = flexPrice(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = flexPrice(f)
	return nil
}

// Requests

type roomRequest struct {
	OwnerID          *uuid.UUID `json:"owner_id"`
	Title            string     `json:"title"`
	Location         string     `json:"location"`
	Price            flexPrice  `json:"price"`
	PropertyType     string     `json:"property_type"`
	TenantPreference string     `json:"tenant_preference"`
	ContactNumber    string     `json:"contact_number"`
	ImageURL         string     `json:"image_url"`
}

func (r roomRequest) input() service.RoomInput {
	return service.RoomInput{
		Title:            r.Title,
		Location:         r.Location,
		Price:            float64(r.Price),
		PropertyType:     r.PropertyType,
		TenantPreference: r.TenantPreference,
		ContactNumber:    r.ContactNumber,
		ImageURL:         r.ImageURL,
	}
}

type roomPatchRequest struct {
	OwnerID          *uuid.UUID `json:"owner_id"`
	Title            *string    `json:"title"`
	Location         *string    `json:"location"`
	Price            *flexPrice `json:"price"`
	PropertyType     *string    `json:"property_type"`
	TenantPreference *string    `json:"tenant_preference"`
	ContactNumber    *string    `json:"contact_number"`
	ImageURL         *string    `json:"image_url"`
}

func (r roomPatchRequest) patch() service.RoomPatch {
	p := service.RoomPatch{
		Title:            r.Title,
		Location:         r.Location,
		PropertyType:     r.PropertyType,
		TenantPreference: r.TenantPreference,
		ContactNumber:    r.ContactNumber,
		ImageURL:         r.ImageURL,
	}
	if r.Price != nil {
		price := float64(*r.Price)
		p.Price = &price
	}
	return p
}

type applicationRequest struct {
	RoomID      uuid.UUID  `json:"room_id"`
	ApplicantID *uuid.UUID `json:"applicant_id"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	Message     string     `json:"message"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type messageRequest struct {
	SenderID   *uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	RoomID     uuid.UUID  `json:"room_id"`
	Content    string     `json:"content"`
}

type favoriteRequest struct {
	UserID *uuid.UUID `json:"user_id"`
	RoomID uuid.UUID  `json:"room_id"`
}

type profileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type reviewRequest struct {
	RoomID  uuid.UUID  `json:"room_id"`
	UserID  *uuid.UUID `json:"user_id"`
	Rating  int        `json:"rating"`
	Comment string     `json:"comment"`
}

// Responses

type roomResponse struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Title            string    `json:"title"`
	Location         string    `json:"location"`
	Price            float64   `json:"price"`
	PropertyType     string    `json:"property_type"`
	TenantPreference string    `json:"tenant_preference"`
	ContactNumber    string    `json:"contact_number"`
	ImageURL         string    `json:"image_url"`
	CreatedAt        time.Time `json:"created_at"`
}

func newRoomResponse(r models.Room) roomResponse {
	return roomResponse{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		Title:            r.Title,
		Location:         r.Location,
		Price:            r.Price,
		PropertyType:     r.PropertyType,
		TenantPreference: r.TenantPreference,
		ContactNumber:    r.ContactNumber,
		ImageURL:         r.ImageURL,
		CreatedAt:        r.CreatedAt,
	}
}

func newRoomResponses(rooms []models.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, newRoomResponse(r))
	}
	return out
}

// roomSummary is the room as embedded in applications, chats and the inbox.
type roomSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Price    float64   `json:"price"`
	ImageURL string    `json:"image_url"`
}

func newRoomSummary(r *models.Room) *roomSummary {
	if r == nil {
		return nil
	}
	return &roomSummary{ID: r.ID, Title: r.Title, Location: r.Location, Price: r.Price, ImageURL: r.ImageURL}
}

type profileSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
}

// newProfileSummary falls back to name when the user has no profile.
func newProfileSummary(id uuid.UUID, p *models.Profile, name string) profileSummary {
	if p == nil {
		return profileSummary{ID: id, FullName: name}
	}
	return profileSummary{ID: p.ID, FullName: p.FullName, AvatarURL: p.AvatarURL}
}

type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProfileResponse(p *models.Profile) profileResponse {
	return profileResponse{ID: p.ID, FullName: p.FullName, Bio: p.Bio, AvatarURL: p.AvatarURL, UpdatedAt: p.UpdatedAt}
}

type applicationResponse struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func newApplicationResponse(a models.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		RoomID:      a.RoomID,
		OwnerID:     a.OwnerID,
		ApplicantID: a.ApplicantID,
		Message:     a.Message,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
	}
}

type sentApplicationResponse struct {
	applicationResponse
	Room *roomSummary `json:"room"`
}

type receivedApplicationResponse struct {
	applicationResponse
	Room      *roomSummary   `json:"room"`
	Applicant profileSummary `json:"applicant"`
}

type messageResponse struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	RoomID     uuid.UUID `json:"room_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func newMessageResponse(m models.Message) messageResponse {
	return messageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		RoomID:     m.RoomID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

type chatEntryResponse struct {
	messageResponse
	Sender   profileSummary `json:"sender"`
	Receiver profileSummary `json:"receiver"`
	Room     *roomSummary   `json:"room"`
}

type conversationResponse struct {
	RoomID        uuid.UUID       `json:"room_id"`
	PartnerID     uuid.UUID       `json:"partner_id"`
	Partner       profileSummary  `json:"partner"`
	Room          *roomSummary    `json:"room"`
	LastMessage   messageResponse `json:"last_message"`
	LastMessageAt time.Time       `json:"last_message_at"`
}

type reviewResponse struct {
	ID        uuid.UUID       `json:"id"`
	RoomID    uuid.UUID       `json:"room_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Rating    int             `json:"rating"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
	Author    *profileSummary `json:"author,omitempty"`
}

func newReviewResponse(r models.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		RoomID:    r.RoomID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// withAuthor attaches the reviewer, falling back to an anonymous name.
func (r reviewResponse) withAuthor(author *models.Profile) reviewResponse {
	s := newProfileSummary(r.UserID, author, anonymousReviewer)
	r.Author = &s
	return r
}

type reviewSummaryResponse struct {
	RoomID  uuid.UUID `json:"room_id"`
	Count   int64     `json:"count"`
	Average float64   `json:"average"`
}
