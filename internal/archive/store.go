// Package archive uploads a record of each provisioning run to object storage
package archive

import "context"

// Store is the object storage the archive writes to
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Identity returns the caller identity stamped into the run record
	Identity(ctx context.Context) (string, error)
}
