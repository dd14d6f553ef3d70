package userRepo

import (
	"context"

	"apnakam/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs retrieves every user whose ID is in ids. Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetAll retrieves all users, newest first.
	GetAll(ctx context.Context) ([]models.User, error)
	// EnsureFromIdentity creates a customer record for a first-time identity and
	// returns the stored user either way.
	EnsureFromIdentity(ctx context.Context, identity models.Identity) (*models.User, error)
	// UpdateSetDocument applies a $set of updateDoc to the user.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	// UpdateAddToSetDocument applies an $addToSet of updateDoc to the user.
	UpdateAddToSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	// PullFromArray removes value from the named array field.
	PullFromArray(ctx context.Context, id, field string, value interface{}) error
	// SearchWorkers returns approved workers matching criteria, best rated first.
	SearchWorkers(ctx context.Context, criteria models.WorkerSearchCriteria) ([]models.User, error)
}
