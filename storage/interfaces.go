package storage

import "restaurant-explorer/models"

// SnapshotWriter is the interface any export backend must satisfy.
type SnapshotWriter interface {
	Write(snap *models.Snapshot) error
	Close() error
}
