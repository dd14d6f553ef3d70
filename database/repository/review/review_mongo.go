package reviewRepo

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
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.uber.org/zap"
)

const (
	transientTxnLabel     = "TransientTransactionError"
	unknownCommitTxnLabel = "UnknownTransactionCommitResult"
)

// MongoReviewRepo implements ReviewRepository using MongoDB sessions.
type MongoReviewRepo struct {
	client      *mongo.Client
	reviewColl  *mongo.Collection
	userColl    *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoReviewRepo constructs a new instance of MongoReviewRepo.
func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	repo := &MongoReviewRepo{
		client:      db.Client(),
		reviewColl:  db.Collection(repository.ReviewsCollection),
		userColl:    db.Collection(repository.UsersCollection),
		bookingColl: db.Collection(repository.BookingsCollection),
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("Failed to create review indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoReviewRepo) RunInTransaction(ctx context.Context, fn func(tx ReviewTxn) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(context.Background())

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(txnOpts); err != nil {
			return err
		}
		if err := fn(&mongoReviewTxn{sc: sc, repo: r}); err != nil {
			abortCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = sess.AbortTransaction(abortCtx)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	return classifyTxnError(err)
}

// classifyTxnError maps transient and unknown-commit failures onto
// ErrWriteConflict. Replaying after an unknown commit is safe: the aggregate
// update is conditional on reviewCount and bookingId is uniquely indexed.
func classifyTxnError(err error) error {
	if err == nil || errors.Is(err, repository.ErrWriteConflict) {
		return err
	}
	if hasRetryableLabel(err) {
		return fmt.Errorf("%w: %v", repository.ErrWriteConflict, err)
	}
	return err
}

func hasRetryableLabel(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.HasErrorLabel(transientTxnLabel) || se.HasErrorLabel(unknownCommitTxnLabel)
}

// IsRetryable reports whether a RunInTransaction failure may be retried with
// fresh reads.
func IsRetryable(err error) bool {
	return errors.Is(err, repository.ErrWriteConflict) || hasRetryableLabel(err)
}

func (r *MongoReviewRepo) ListByWorker(ctx context.Context, workerID string) ([]models.Review, error) {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.reviewColl.Find(ctx, bson.M{"workerId": workerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews for worker %s: %w", workerID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

// ensureIndexes enforces one review per booking at the store level too.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.reviewColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// mongoReviewTxn runs every operation on the transaction's session context.
type mongoReviewTxn struct {
	sc   mongo.SessionContext
	repo *MongoReviewRepo
}

func (t *mongoReviewTxn) GetWorkerAggregate(workerID string) (*models.WorkerAggregate, error) {
	opts := options.FindOne().SetProjection(bson.M{"id": 1, "isWorker": 1, "rating": 1, "reviewCount": 1})

	var agg models.WorkerAggregate
	if err := t.repo.userColl.FindOne(t.sc, bson.M{"id": workerID}, opts).Decode(&agg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("worker %s: %w", workerID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("read worker %s failed: %w", workerID, err)
	}
	if err := agg.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt worker aggregate: %w", err)
	}
	return &agg, nil
}

func (t *mongoReviewTxn) GetBooking(bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := t.repo.bookingColl.FindOne(t.sc, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("read booking %s failed: %w", bookingID, err)
	}
	if !booking.Status.Valid() {
		return nil, fmt.Errorf("booking %s has unknown status %q", bookingID, booking.Status)
	}
	return &booking, nil
}

func (t *mongoReviewTxn) InsertReview(review *models.Review) error {
	if _, err := t.repo.reviewColl.InsertOne(t.sc, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("review for booking %s already exists: %w", review.BookingID, repository.ErrWriteConflict)
		}
		return fmt.Errorf("insert review failed: %w", err)
	}
	return nil
}

func (t *mongoReviewTxn) UpdateWorkerAggregate(workerID string, expectedCount int, next models.WorkerAggregate) error {
	filter := bson.M{"id": workerID, "reviewCount": expectedCount}
	if expectedCount == 0 {
		// Workers created before ratings existed have no reviewCount field.
		filter = bson.M{"id": workerID, "$or": bson.A{
			bson.M{"reviewCount": 0},
			bson.M{"reviewCount": bson.M{"$exists": false}},
		}}
	}
	update := bson.M{"$set": bson.M{
		"rating":      next.Rating,
		"reviewCount": next.ReviewCount,
		"updatedAt":   time.Now().UTC(),
	}}

	res, err := t.repo.userColl.UpdateOne(t.sc, filter, update)
	if err != nil {
		return fmt.Errorf("update worker aggregate failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("worker %s reviewCount moved: %w", workerID, repository.ErrWriteConflict)
	}
	return nil
}

func (t *mongoReviewTxn) MarkBookingReviewed(bookingID string) error {
	filter := bson.M{"id": bookingID, "hasBeenReviewed": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{"hasBeenReviewed": true, "updatedAt": time.Now().UTC()}}

	res, err := t.repo.bookingColl.UpdateOne(t.sc, filter, update)
	if err != nil {
		return fmt.Errorf("mark booking reviewed failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s already reviewed: %w", bookingID, repository.ErrWriteConflict)
	}
	return nil
}
