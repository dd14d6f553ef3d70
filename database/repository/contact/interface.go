package contactRepo

import (
	"apnakam/database/repository"
	"apnakam/models"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) (string, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type mongoContactRepo struct {
	coll *mongo.Collection
}

func NewMongoContactRepo(db *mongo.Database) ContactRepository {
	return &mongoContactRepo{coll: db.Collection(repository.ContactsCollection)}
}

func (r *mongoContactRepo) Create(ctx context.Context, msg *models.ContactMessage) (string, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to save contact message: %w", err)
	}
	return msg.ID, nil
}

// List returns contact messages, newest first.
func (r *mongoContactRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
