// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"apnakam/database/repository"
	"apnakam/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureFromIdentity upserts a customer record keyed by the identity's UID.
// Fields already on the record are never overwritten.
func (r *MongoUserRepo) EnsureFromIdentity(ctx context.Context, identity models.Identity) (*models.User, error) {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	name := identity.Name
	if name == "" {
		name = "New User"
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":          identity.UID,
			"name":        name,
			"email":       identity.Email,
			"phone":       identity.Phone,
			"avatar":      identity.Photo,
			"isWorker":    false,
			"isApproved":  false,
			"rating":      0.0,
			"reviewCount": 0,
			"createdAt":   now,
			"updatedAt":   now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": identity.UID}, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to ensure user %s: %w", identity.UID, err)
	}
	return &user, nil
}

// UpdateSetDocument wraps updateDoc in $set and stamps updatedAt.
func (r *MongoUserRepo) UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range updateDoc {
		set[k] = v
	}
	update := bson.M{"$set": set}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepo) UpdateAddToSetDocument(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Wrap in $addToSet to ensure uniqueness
	update := bson.M{
		"$addToSet": updateDoc,
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepo) PullFromArray(ctx context.Context, id, field string, value interface{}) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pullCondition interface{}

	// If value is a slice, use $in with that slice; otherwise pull the single value.
	switch v := value.(type) {
	case []interface{}:
		pullCondition = bson.M{"$in": v}
	case []string:
		pullCondition = bson.M{"$in": v}
	default:
		pullCondition = v
	}

	update := bson.M{
		"$pull": bson.M{field: pullCondition},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to pull from %s for user %s: %w", field, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
