package repositories

import (
	"context"

	"github.com/lateraugment/server/domain/entities"
)

// SpeechRepository defines data access methods for speech records.
type SpeechRepository interface {
	// Create validates the record, assigns its ID and creation timestamp,
	// and persists it.
	Create(ctx context.Context, speech *entities.Speech) error
	// List returns all records ordered by creation time, newest first.
	List(ctx context.Context) ([]*entities.Speech, error)
	// GetByID returns the record with the given ID or ErrSpeechNotFound.
	GetByID(ctx context.Context, id string) (*entities.Speech, error)
	// Delete removes the record with the given ID. Deleting an unknown ID
	// returns ErrSpeechNotFound, so a repeated delete fails the same way.
	Delete(ctx context.Context, id string) error
}
