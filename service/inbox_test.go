package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(from, to, room uuid.UUID, at time.Time) models.Message {
	return models.Message{ID: uuid.New(), SenderID: from, ReceiverID: to, RoomID: room, CreatedAt: at, Content: "x"}
}

func TestDeriveInbox(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	room1, room2 := uuid.New(), uuid.New()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m1 := msg(a, b, room1, t0.Add(1*time.Minute))
	m2 := msg(b, a, room1, t0.Add(2*time.Minute))
	m3 := msg(a, c, room2, t0.Add(3*time.Minute))

	// Input order must not matter.
	inbox := DeriveInbox(a, []models.Message{m2, m3, m1})
	require.Len(t, inbox, 2)
	assert.Equal(t, ConversationKey{RoomID: room2, PartnerID: c}, inbox[0].ConversationKey)
	assert.Equal(t, m3.ID, inbox[0].LastMessage.ID)
	assert.Equal(t, ConversationKey{RoomID: room1, PartnerID: b}, inbox[1].ConversationKey)
	assert.Equal(t, m2.ID, inbox[1].LastMessage.ID)
	assert.Equal(t, m2.CreatedAt, inbox[1].LastMessageAt)
}

func TestDeriveInboxSeparatesRoomsWithSamePartner(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	room1, room2 := uuid.New(), uuid.New()
	t0 := time.Now()

	inbox := DeriveInbox(a, []models.Message{
		msg(a, b, room1, t0),
		msg(a, b, room2, t0.Add(time.Second)),
	})
	assert.Len(t, inbox, 2)
}

func TestDeriveInboxIgnoresForeignMessages(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	inbox := DeriveInbox(a, []models.Message{msg(b, c, uuid.New(), time.Now())})
	assert.Empty(t, inbox)
}

func TestDeriveInboxTieBreaksOnMessageID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	room := uuid.New()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	low := msg(a, b, room, at)
	high := msg(b, a, room, at)
	low.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high.ID = uuid.MustParse("ffffffff-0000-0000-0000-000000000001")

	for _, order := range [][]models.Message{{low, high}, {high, low}} {
		inbox := DeriveInbox(a, order)
		require.Len(t, inbox, 1)
		assert.Equal(t, high.ID, inbox[0].LastMessage.ID)
	}
}
