package user

import (
	"context"
	"fmt"

	"apnakam/models"
	"apnakam/services/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetAllUsers retrieves all users for admin access.
func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// ApproveWorker lists or unlists a worker in search.
func (s *DefaultUserService) ApproveWorker(ctx context.Context, workerID string, approved bool) error {
	worker, err := s.GetProfile(ctx, workerID)
	if err != nil {
		return err
	}
	if !worker.IsWorker {
		return apperrors.NewValidationError("workerId", "user is not registered as a worker")
	}
	if err := s.Repo.UpdateSetDocument(ctx, workerID, bson.M{"isApproved": approved}); err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}
	s.Logger.Info("Worker approval changed", zap.String("workerID", workerID), zap.Bool("approved", approved))
	return nil
}
