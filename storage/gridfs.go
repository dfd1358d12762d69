package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens and pings a MongoDB client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// GridFSStore keeps each bucket as a GridFS bucket of the same name.
type GridFSStore struct {
	DB *mongo.Database
}

func NewGridFSStore(client *mongo.Client, dbName string) *GridFSStore {
	return &GridFSStore{DB: client.Database(dbName)}
}

func (s *GridFSStore) bucket(name string) (*gridfs.Bucket, error) {
	if !ValidBucket(name) {
		return nil, fmt.Errorf("unknown bucket %q", name)
	}
	return gridfs.NewBucket(s.DB, options.GridFSBucket().SetName(name))
}

func (s *GridFSStore) Put(ctx context.Context, bucket, name, contentType string, r io.Reader) (string, error) {
	b, err := s.bucket(bucket)
	if err != nil {
		return "", err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := b.SetWriteDeadline(deadline); err != nil {
			return "", err
		}
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: contentType}})
	stream, err := b.OpenUploadStream(name, opts)
	if err != nil {
		return "", fmt.Errorf("open upload stream: %w", err)
	}
	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", name, err)
	}

	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected file id type %T", stream.FileID)
	}
	return id.Hex(), nil
}

func (s *GridFSStore) Get(ctx context.Context, bucket, id string) (*Object, error) {
	b, err := s.bucket(bucket)
	if err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := b.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}

	stream, err := b.OpenDownloadStream(objID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open download stream: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", id, err)
	}

	obj := &Object{ID: id, Data: data, ContentType: "application/octet-stream"}
	if f := stream.GetFile(); f != nil {
		obj.Name = f.Name
		if ct, ok := f.Metadata.Lookup("content_type").StringValueOK(); ok && ct != "" {
			obj.ContentType = ct
		}
	}
	return obj, nil
}
