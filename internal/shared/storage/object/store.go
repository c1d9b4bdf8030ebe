package object

import (
	"context"
	"io"
)

// ObjectStore abstracts transient blob staging. Uploads live here only
// for the duration of a request; callers are responsible for Delete.
type ObjectStore interface {
	// Save persists the reader under the user's namespace and returns the
	// storage key, the byte count, and the sniffed mime type.
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error)
	// Open returns a reader for a stored object.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes a stored object. Deleting a missing object is not an error.
	Delete(ctx context.Context, storageKey string) error
}
