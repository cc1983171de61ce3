package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/pennyflow/pennyflow-backend/internal/errs"
)

type fileStore struct {
	client *storage.Client
	bucket string
}

func NewFileStore(client *storage.Client, bucket string) *fileStore {
	return &fileStore{client: client, bucket: bucket}
}

func (s *fileStore) objectPath(uid, relativePath string) string {
	return fmt.Sprintf("users/%s/%s", uid, relativePath)
}

// DeleteFile removes an attachment object. A missing object is not an
// error; the metadata cascade must win over a half-deleted upload.
func (s *fileStore) DeleteFile(ctx context.Context, uid, relativePath string) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectPath(uid, relativePath))
	if err := obj.Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return errs.NewDatabaseError("delete", "failed to delete attachment file", err)
	}
	return nil
}
