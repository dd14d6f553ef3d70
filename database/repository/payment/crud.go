package paymentRepo

import (
	"apnakam/database/repository"
	"apnakam/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new payment record and returns its ID.
func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.Status == "" {
		payment.Status = models.PaymentCreated
	}

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return "", fmt.Errorf("failed to create payment: %w", err)
	}
	return payment.ID, nil
}

// GetByIntentID returns the payment created for a gateway intent.
func (r *mongoPaymentRepo) GetByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"intentId": intentID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("payment for intent %s: %w", intentID, repository.ErrNotFound)
		}
		return nil, err
	}
	return &payment, nil
}

func (r *mongoPaymentRepo) MarkStatus(ctx context.Context, id string, status models.PaymentStatus) (bool, error) {
	filter := bson.M{"id": id, "status": models.PaymentCreated}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update payment %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}
