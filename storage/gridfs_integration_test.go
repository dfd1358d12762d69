//go:build integration
// +build integration

package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupMongo(t *testing.T) *GridFSStore {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "27017/tcp", "mongodb")
	require.NoError(t, err)

	client, err := Connect(ctx, endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return NewGridFSStore(client, "roomshare_test")
}

func TestGridFSRoundTrip(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()

	id, err := store.Put(ctx, BucketAvatars, "me.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	obj, err := store.Get(ctx, BucketAvatars, id)
	require.NoError(t, err)
	assert.Equal(t, "me.png", obj.Name)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, []byte("png-bytes"), obj.Data)

	// Buckets are separate namespaces.
	_, err = store.Get(ctx, BucketRoomImages, id)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.Get(ctx, BucketAvatars, "not-an-object-id")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.Put(ctx, "fs", "x", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
}
