package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of an identity-provider user. ID equals the user ID.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `json:"full_name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Room struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title            string    `gorm:"not null" json:"title"`
	Location         string    `gorm:"not null" json:"location"`
	Price            float64   `gorm:"not null;check:price > 0" json:"price"`
	PropertyType     string    `gorm:"index" json:"property_type"`
	TenantPreference string    `json:"tenant_preference"`
	ContactNumber    string    `gorm:"not null" json:"contact_number"`
	ImageURL         string    `json:"image_url"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// Application is a tenant's request to rent a room. At most one exists per
// (room, applicant) pair; the unique index is what enforces it.
type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_room_applicant" json:"room_id"`
	OwnerID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"owner_id"`
	ApplicantID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_room_applicant" json:"applicant_id"`
	Message     string            `gorm:"type:text" json:"message"`
	Status      ApplicationStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	RoomID     uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// Involves reports whether userID is the sender or the receiver.
func (m Message) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// Partner returns the participant that is not userID.
func (m Message) Partner(userID uuid.UUID) uuid.UUID {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Between reports whether the message was exchanged by a and b, in either direction.
func (m Message) Between(a, b uuid.UUID) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

type Favorite struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_room" json:"user_id"`
	RoomID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_room" json:"room_id"`
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Room{},
		&Application{},
		&Message{},
		&Favorite{},
		&Review{},
	}
}
