package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/models"
	"github.com/sidhant-sriv/roomshare-api/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRoomDoesNotResurrectDeletedRoom(t *testing.T) {
	store := New()
	ctx := context.Background()
	room := &models.Room{ID: uuid.New(), OwnerID: uuid.New(), Title: "Loft", Location: "Pune", Price: 1, ContactNumber: "1", CreatedAt: time.Now()}
	require.NoError(t, store.CreateRoom(ctx, room))
	require.NoError(t, store.DeleteRoom(ctx, room.ID))

	room.Title = "Renamed"
	assert.ErrorIs(t, store.SaveRoom(ctx, room), service.ErrNotFound)

	_, err := store.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
