package adapters

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lateraugment/server/domain/entities"
	"github.com/lateraugment/server/domain/repositories"
)

// MemorySpeechRepository is an in-memory implementation of SpeechRepository.
// It is the default backend when no MongoDB URI is configured and doubles as
// the repository used in tests.
type MemorySpeechRepository struct {
	mu       sync.RWMutex
	speeches map[string]*entities.Speech
}

// Ensure MemorySpeechRepository implements the SpeechRepository interface
var _ repositories.SpeechRepository = (*MemorySpeechRepository)(nil)

// NewMemorySpeechRepository creates an empty in-memory speech repository.
func NewMemorySpeechRepository() *MemorySpeechRepository {
	return &MemorySpeechRepository{
		speeches: make(map[string]*entities.Speech),
	}
}

// Create implements SpeechRepository interface
func (m *MemorySpeechRepository) Create(ctx context.Context, speech *entities.Speech) error {
	if err := speech.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	speech.ID = uuid.New().String()
	speech.CreatedAt = time.Now()

	stored := *speech
	m.speeches[speech.ID] = &stored
	return nil
}

// List implements SpeechRepository interface, newest first.
func (m *MemorySpeechRepository) List(ctx context.Context) ([]*entities.Speech, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	speeches := make([]*entities.Speech, 0, len(m.speeches))
	for _, s := range m.speeches {
		copied := *s
		speeches = append(speeches, &copied)
	}

	sort.Slice(speeches, func(i, j int) bool {
		return speeches[i].CreatedAt.After(speeches[j].CreatedAt)
	})
	return speeches, nil
}

// GetByID implements SpeechRepository interface
func (m *MemorySpeechRepository) GetByID(ctx context.Context, id string) (*entities.Speech, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	speech, exists := m.speeches[id]
	if !exists {
		return nil, repositories.ErrSpeechNotFound
	}

	copied := *speech
	return &copied, nil
}

// Delete implements SpeechRepository interface
func (m *MemorySpeechRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.speeches[id]; !exists {
		return repositories.ErrSpeechNotFound
	}

	delete(m.speeches, id)
	return nil
}
