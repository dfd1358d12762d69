package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
)

// ConversationKey identifies a conversation from one user's point of view.
type ConversationKey struct {
	RoomID    uuid.UUID
	PartnerID uuid.UUID
}

// Conversation is one inbox row.
type Conversation struct {
	ConversationKey
	LastMessage   models.Message
	LastMessageAt time.Time
	Partner       *models.Profile
	Room          *models.Room
}

// DeriveInbox groups userID's messages by (room, partner) and keeps the most
// recent message of each group. Messages not involving userID are ignored.
// The result is ordered newest conversation first; equal timestamps fall
// back to message id, descending.
func DeriveInbox(userID uuid.UUID, msgs []models.Message) []Conversation {
	ordered := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Involves(userID) {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return newerFirst(ordered[i], ordered[j]) })

	seen := make(map[ConversationKey]struct{})
	out := make([]Conversation, 0)
	for _, m := range ordered {
		key := ConversationKey{RoomID: m.RoomID, PartnerID: m.Partner(userID)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Conversation{
			ConversationKey: key,
			LastMessage:     m,
			LastMessageAt:   m.CreatedAt,
		})
	}
	return out
}
