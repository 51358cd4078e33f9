package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/hemantobora/auto-provision/internal/models"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// Archiver writes the inventory and a JSON run record under
// <prefix>/<run id>/ in the store
type Archiver struct {
	Store   Store
	Prefix  string
	Console *ui.Console // optional, receives identity lookup warnings
}

// NewRunID derives a sortable run id from the start time and target alias
func NewRunID(started time.Time, t models.TargetDescriptor) string {
	return started.UTC().Format("20060102T150405Z") + "-" + t.Alias()
}

// Archive uploads inventory then rec. It fills rec.ID, rec.Identity and
// rec.Inventory and returns the record's key.
func (a *Archiver) Archive(ctx context.Context, rec *models.RunRecord, inventory []byte) (string, error) {
	if rec.ID == "" {
		rec.ID = NewRunID(rec.StartedAt, rec.Target)
	}
	base := path.Join(a.Prefix, rec.ID)

	// The record is still useful without an identity
	id, err := a.Store.Identity(ctx)
	if err != nil && a.Console != nil {
		a.Console.Warnf("Could not resolve caller identity for the run record: %v", err)
	}
	rec.Identity = id

	invKey := path.Join(base, "inventory.ini")
	if err := a.Store.Put(ctx, invKey, inventory, "text/plain"); err != nil {
		return "", fmt.Errorf("failed to upload inventory: %w", err)
	}
	rec.Inventory = invKey

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run record: %w", err)
	}
	recKey := path.Join(base, "run.json")
	if err := a.Store.Put(ctx, recKey, data, "application/json"); err != nil {
		return "", fmt.Errorf("failed to upload run record: %w", err)
	}
	return recKey, nil
}
