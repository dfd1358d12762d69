package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/realtime"
)

type SendMessageInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	RoomID     uuid.UUID
	Content    string
}

// EnrichedMessage is a message with both participants' profiles and the room
// attached. Missing profiles and rooms stay nil.
type EnrichedMessage struct {
	models.Message
	Sender   *models.Profile
	Receiver *models.Profile
	Room     *models.Room
}

// GetTranscript returns the messages exchanged by a and b about roomID,
// oldest first.
func (s *Service) GetTranscript(ctx context.Context, roomID, a, b uuid.UUID) ([]models.Message, error) {
	msgs, err := s.repo.ListTranscript(ctx, roomID, a, b)
	if err != nil {
		return nil, err
	}

	out := msgs[:0]
	for _, m := range msgs {
		if m.RoomID == roomID && m.Between(a, b) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return olderFirst(out[i], out[j]) })
	return out, nil
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	switch {
	case in.SenderID == uuid.Nil:
		return nil, invalid("sender_id", "is required")
	case in.ReceiverID == uuid.Nil:
		return nil, invalid("receiver_id", "is required")
	case in.RoomID == uuid.Nil:
		return nil, invalid("room_id", "is required")
	case in.SenderID == in.ReceiverID:
		return nil, invalid("receiver_id", "you cannot message yourself")
	case content == "":
		return nil, invalid("content", "must not be empty")
	}
	if _, err := s.GetRoom(ctx, in.RoomID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         s.newID(),
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		RoomID:     in.RoomID,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.Event{
		Type:         realtime.EventInsert,
		Table:        realtime.TableMessages,
		RecordID:     msg.ID,
		RoomID:       msg.RoomID,
		Participants: []uuid.UUID{msg.SenderID, msg.ReceiverID},
		CreatedAt:    msg.CreatedAt,
	})
	return msg, nil
}

// ListMyChats returns every message userID sent or received, newest first,
// with profiles and rooms attached.
func (s *Service) ListMyChats(ctx context.Context, userID uuid.UUID) ([]EnrichedMessage, error) {
	msgs, err := s.messagesNewestFirst(ctx, userID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, 2*len(msgs))
	roomIDs := make([]uuid.UUID, 0, len(msgs))
	for _, m := range msgs {
		userIDs = append(userIDs, m.SenderID, m.ReceiverID)
		roomIDs = append(roomIDs, m.RoomID)
	}
	profiles, err := s.profileIndex(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomIndex(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	out := make([]EnrichedMessage, 0, len(msgs))
	for _, m := range msgs {
		em := EnrichedMessage{Message: m}
		if p, ok := profiles[m.SenderID]; ok {
			em.Sender = &p
		}
		if p, ok := profiles[m.ReceiverID]; ok {
			em.Receiver = &p
		}
		if r, ok := rooms[m.RoomID]; ok {
			em.Room = &r
		}
		out = append(out, em)
	}
	return out, nil
}

// Inbox derives userID's conversations from the message log.
func (s *Service) Inbox(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	msgs, err := s.messagesNewestFirst(ctx, userID)
	if err != nil {
		return nil, err
	}
	convs := DeriveInbox(userID, msgs)

	partnerIDs := make([]uuid.UUID, 0, len(convs))
	roomIDs := make([]uuid.UUID, 0, len(convs))
	for _, c := range convs {
		partnerIDs = append(partnerIDs, c.PartnerID)
		roomIDs = append(roomIDs, c.RoomID)
	}
	profiles, err := s.profileIndex(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomIndex(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	for i := range convs {
		if p, ok := profiles[convs[i].PartnerID]; ok {
			convs[i].Partner = &p
		}
		if r, ok := rooms[convs[i].RoomID]; ok {
			convs[i].Room = &r
		}
	}
	return convs, nil
}

// messagesNewestFirst does not trust the store's ordering; inbox derivation
// depends on it.
func (s *Service) messagesNewestFirst(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	msgs, err := s.repo.ListMessagesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return newerFirst(msgs[i], msgs[j]) })
	return msgs, nil
}

// newerFirst orders by created_at descending, then id descending.
func newerFirst(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func olderFirst(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
