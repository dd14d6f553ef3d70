package paymentRepo

import (
	"context"

	"apnakam/database/repository"
	"apnakam/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (string, error)
	GetByIntentID(ctx context.Context, intentID string) (*models.Payment, error)
	// MarkStatus moves a payment out of "created". It reports false when the
	// payment had already left that state.
	MarkStatus(ctx context.Context, id string, status models.PaymentStatus) (bool, error)
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a new PaymentRepository instance using MongoDB.
func NewMongoPaymentRepo(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepo{
		coll: db.Collection(repository.PaymentsCollection),
	}
}
