package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lateraugment/server/domain/entities"
	"github.com/lateraugment/server/domain/repositories"
)

// SpeechRepository stores speech records in the "speeches" collection.
type SpeechRepository struct {
	collection *mongo.Collection
}

// Ensure SpeechRepository implements the SpeechRepository interface
var _ repositories.SpeechRepository = (*SpeechRepository)(nil)

// speechDocument is the persisted shape of a speech record. The entity keeps
// string IDs so the in-memory backend can share the interface; the ObjectID
// stays an adapter concern.
type speechDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Text         string             `bson:"text"`
	VoiceName    string             `bson:"voice_name"`
	LanguageCode string             `bson:"language_code"`
	SpeakingRate float64            `bson:"speaking_rate"`
	Pitch        float64            `bson:"pitch"`
	AudioFile    string             `bson:"audio_file"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *speechDocument) toEntity() *entities.Speech {
	return &entities.Speech{
		ID:           d.ID.Hex(),
		Text:         d.Text,
		VoiceName:    d.VoiceName,
		LanguageCode: d.LanguageCode,
		SpeakingRate: d.SpeakingRate,
		Pitch:        d.Pitch,
		AudioFile:    d.AudioFile,
		CreatedAt:    d.CreatedAt,
	}
}

// NewSpeechRepository creates a MongoDB speech repository.
func NewSpeechRepository(db *mongo.Database) *SpeechRepository {
	return &SpeechRepository{
		collection: db.Collection("speeches"),
	}
}

// Create implements repositories.SpeechRepository
func (r *SpeechRepository) Create(ctx context.Context, speech *entities.Speech) error {
	if speech == nil {
		return errors.New("speech cannot be nil")
	}
	if err := speech.Validate(); err != nil {
		return err
	}

	doc := speechDocument{
		ID:           primitive.NewObjectID(),
		Text:         speech.Text,
		VoiceName:    speech.VoiceName,
		LanguageCode: speech.LanguageCode,
		SpeakingRate: speech.SpeakingRate,
		Pitch:        speech.Pitch,
		AudioFile:    speech.AudioFile,
		CreatedAt:    time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create speech: %w", err)
	}

	speech.ID = doc.ID.Hex()
	speech.CreatedAt = doc.CreatedAt
	return nil
}

// List implements repositories.SpeechRepository, newest first.
func (r *SpeechRepository) List(ctx context.Context) ([]*entities.Speech, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list speeches: %w", err)
	}
	defer cursor.Close(ctx)

	speeches := make([]*entities.Speech, 0)
	for cursor.Next(ctx) {
		var doc speechDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode speech: %w", err)
		}
		speeches = append(speeches, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate speeches: %w", err)
	}

	return speeches, nil
}

// GetByID implements repositories.SpeechRepository
func (r *SpeechRepository) GetByID(ctx context.Context, id string) (*entities.Speech, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrSpeechNotFound
	}

	var doc speechDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrSpeechNotFound
		}
		return nil, fmt.Errorf("failed to get speech %s: %w", id, err)
	}

	return doc.toEntity(), nil
}

// Delete implements repositories.SpeechRepository
func (r *SpeechRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed ID cannot name an existing record.
		return repositories.ErrSpeechNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete speech %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrSpeechNotFound
	}

	return nil
}
