// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"apnakam/database/repository"
	"apnakam/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection(repository.UsersCollection)}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("Failed to create user indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, options.Find())
}

func (r *MongoUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// buildWorkerFilter composes the structured search filter. Empty criteria
// fields add no condition.
func buildWorkerFilter(criteria models.WorkerSearchCriteria) bson.M {
	filter := bson.M{"isWorker": true, "isApproved": true}
	if criteria.Pincode != "" {
		filter["pincode"] = criteria.Pincode
	}
	if len(criteria.Categories) > 0 {
		filter["category"] = bson.M{"$in": criteria.Categories}
	}
	return filter
}

func (r *MongoUserRepo) SearchWorkers(ctx context.Context, criteria models.WorkerSearchCriteria) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "rating", Value: -1},
		{Key: "reviewCount", Value: -1},
	})
	return r.find(ctx, buildWorkerFilter(criteria), opts)
}

func (r *MongoUserRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return users, nil
}
