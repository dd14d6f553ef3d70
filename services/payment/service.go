package payment

import (
	"context"
	"errors"
	"fmt"

	"apnakam/database/repository"
	paymentRepo "apnakam/database/repository/payment"
	userRepo "apnakam/database/repository/user"
	"apnakam/models"
	"apnakam/services/apperrors"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

const currencyINR = string(stripe.CurrencyINR)

type PaymentService interface {
	CreateOrder(ctx context.Context, userID, workerID string) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, userID, intentID string) (*models.PaymentVerification, error)
}

// ContactUnlocker records a paid contact reveal on the customer.
type ContactUnlocker interface {
	UnlockContact(ctx context.Context, userID, workerID string) error
}

type DefaultPaymentService struct {
	Payments paymentRepo.PaymentRepository
	Users    userRepo.UserRepository
	Unlocker ContactUnlocker
	Gateway  IntentGateway
	FeePaisa int64
	Logger   *zap.Logger
}

func NewDefaultPaymentService(payments paymentRepo.PaymentRepository, users userRepo.UserRepository, unlocker ContactUnlocker, gateway IntentGateway, feePaisa int64, logger *zap.Logger) *DefaultPaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultPaymentService{
		Payments: payments,
		Users:    users,
		Unlocker: unlocker,
		Gateway:  gateway,
		FeePaisa: feePaisa,
		Logger:   logger,
	}
}

// CreateOrder opens a payment intent for revealing workerID's contact details.
func (s *DefaultPaymentService) CreateOrder(ctx context.Context, userID, workerID string) (*models.PaymentOrder, error) {
	if workerID == "" {
		return nil, apperrors.NewValidationError("workerId", "worker id is required")
	}
	if userID == workerID {
		return nil, apperrors.NewValidationError("workerId", "you cannot pay to see your own contact")
	}
	if s.FeePaisa <= 0 {
		return nil, errors.New("contact fee is not configured")
	}

	customer, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user", userID)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if customer.HasUnlocked(workerID) {
		return nil, &apperrors.ValidationError{Code: "already_unlocked", Field: "workerId", Message: "contact details are already unlocked"}
	}
	worker, err := s.Users.GetByID(ctx, workerID)
	if err != nil || !worker.IsWorker || !worker.IsApproved {
		return nil, apperrors.NewNotFoundError("worker", workerID)
	}

	intent, err := s.Gateway.CreateIntent(s.FeePaisa, currencyINR, map[string]string{
		"userId":   userID,
		"workerId": workerID,
		"purpose":  "contact_unlock",
	})
	if err != nil {
		s.Logger.Error("Failed to create payment intent", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	record := &models.Payment{
		UserID:   userID,
		WorkerID: workerID,
		Amount:   s.FeePaisa,
		Currency: currencyINR,
		IntentID: intent.ID,
		Status:   models.PaymentCreated,
	}
	paymentID, err := s.Payments.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Payment order created",
		zap.String("paymentID", paymentID),
		zap.String("userID", userID),
		zap.String("workerID", workerID),
	)
	return &models.PaymentOrder{
		PaymentID:    paymentID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       s.FeePaisa,
		Currency:     currencyINR,
	}, nil
}

// VerifyPayment checks the intent with the gateway and unlocks the worker's
// contact once it has succeeded. Verifying a paid order again returns the
// contact without another state change.
func (s *DefaultPaymentService) VerifyPayment(ctx context.Context, userID, intentID string) (*models.PaymentVerification, error) {
	if intentID == "" {
		return nil, apperrors.NewValidationError("intentId", "payment intent id is required")
	}
	record, err := s.Payments.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("payment", intentID)
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, &apperrors.AuthorizationError{UserID: userID, Action: "verify_payment", Message: "payment belongs to another user"}
	}

	if record.Status != models.PaymentPaid {
		intent, err := s.Gateway.GetIntent(intentID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
		}
		switch intent.Status {
		case stripe.PaymentIntentStatusSucceeded:
			if _, err := s.Payments.MarkStatus(ctx, record.ID, models.PaymentPaid); err != nil {
				return nil, err
			}
		case stripe.PaymentIntentStatusCanceled:
			if _, err := s.Payments.MarkStatus(ctx, record.ID, models.PaymentFailed); err != nil {
				return nil, err
			}
			return &models.PaymentVerification{IsSuccess: false, PaymentID: record.ID}, nil
		default:
			return &models.PaymentVerification{IsSuccess: false, PaymentID: record.ID}, nil
		}
	}

	if err := s.Unlocker.UnlockContact(ctx, userID, record.WorkerID); err != nil {
		return nil, err
	}
	worker, err := s.Users.GetByID(ctx, record.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}
	return &models.PaymentVerification{
		IsSuccess: true,
		PaymentID: record.ID,
		Contact:   &models.ContactInfo{Phone: worker.Phone, Email: worker.Email},
	}, nil
}
