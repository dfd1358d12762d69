package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidBucket(t *testing.T) {
	assert.True(t, ValidBucket(BucketAvatars))
	assert.True(t, ValidBucket(BucketRoomImages))
	assert.False(t, ValidBucket(""))
	assert.False(t, ValidBucket("fs"))
}

func TestObjectName(t *testing.T) {
	user := uuid.New()
	a := ObjectName(user, "Photo.JPG")
	b := ObjectName(user, "Photo.JPG")

	assert.True(t, strings.HasPrefix(a, user.String()+"-"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.NotEqual(t, a, b)

	assert.Len(t, ObjectName(user, "noext"), len(user.String())+1+36)
}

func TestSniffImage(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{1}, 600)...)
	ct, body, err := SniffImage(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	all, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, png, all)

	for _, data := range [][]byte{
		[]byte("<html><script>alert(1)</script></html>"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
		nil,
	} {
		_, _, err := SniffImage(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrNotImage)
	}
}
