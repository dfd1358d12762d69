// Package storage keeps uploaded avatars and room images. Objects are
// addressed by bucket and an opaque id; the HTTP layer turns that pair into
// the public URL stored on profiles and rooms.
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	BucketAvatars    = "avatars"
	BucketRoomImages = "room-images"
)

var (
	ErrNotFound = errors.New("object not found")
	ErrNotImage = errors.New("only image uploads are accepted")
)

// sniffLen is how much content http.DetectContentType looks at.
const sniffLen = 512

// Object is a stored file read back in full.
type Object struct {
	ID          string
	Name        string
	ContentType string
	Data        []byte
}

type ObjectStore interface {
	Put(ctx context.Context, bucket, name, contentType string, r io.Reader) (id string, err error)
	Get(ctx context.Context, bucket, id string) (*Object, error)
}

// ValidBucket reports whether bucket is one uploads may target.
func ValidBucket(bucket string) bool {
	return bucket == BucketAvatars || bucket == BucketRoomImages
}

// ObjectName builds the stored name "<user-id>-<random><ext>" so two uploads
// of the same file never collide.
func ObjectName(userID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return userID.String() + "-" + uuid.NewString() + ext
}

// IsImage reports whether contentType names an image type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// SniffImage detects r's content type from its leading bytes, ignoring any
// type the client declared. It returns ErrNotImage unless the content is an
// image; otherwise body yields the full content, sniffed bytes included.
func SniffImage(r io.Reader) (contentType string, body io.Reader, err error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	contentType = http.DetectContentType(head)
	if !IsImage(contentType) {
		return "", nil, ErrNotImage
	}
	return contentType, io.MultiReader(bytes.NewReader(head), r), nil
}
