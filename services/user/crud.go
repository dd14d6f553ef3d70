package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"apnakam/database/repository"
	"apnakam/models"
	"apnakam/services/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// EnsureUser returns the stored profile for an authenticated identity,
// creating a customer record on first sight.
func (s *DefaultUserService) EnsureUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	if strings.TrimSpace(identity.UID) == "" {
		return nil, apperrors.NewValidationError("uid", "identity has no uid")
	}
	u, err := s.Repo.EnsureFromIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return u, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user", userID)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (s *DefaultUserService) AddPortfolioItem(ctx context.Context, userID string, item models.PortfolioItem) error {
	if item.URL == "" {
		return apperrors.NewValidationError("url", "portfolio image url is required")
	}
	if err := s.Repo.UpdateAddToSetDocument(ctx, userID, bson.M{"portfolio": item}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("user", userID)
		}
		return fmt.Errorf("failed to add portfolio item: %w", err)
	}
	return nil
}

func (s *DefaultUserService) SuggestSkills(ctx context.Context, workerDetails string) (*models.SkillSuggestion, error) {
	if strings.TrimSpace(workerDetails) == "" {
		return nil, apperrors.NewValidationError("workerDetails", "describe your work to get suggestions")
	}
	if s.Suggester == nil {
		return nil, errors.New("skill suggestion is not configured")
	}
	return s.Suggester.SuggestSkills(ctx, workerDetails)
}

// GetWorker returns the public view of an approved worker. Contact details
// are included for the worker themself and for viewers who unlocked them.
func (s *DefaultUserService) GetWorker(ctx context.Context, viewerID, workerID string) (*models.WorkerProfile, error) {
	worker, err := s.GetProfile(ctx, workerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("worker", workerID)
		}
		return nil, err
	}
	self := viewerID != "" && viewerID == workerID
	if !worker.IsWorker || (!worker.IsApproved && !self) {
		return nil, apperrors.NewNotFoundError("worker", workerID)
	}

	withContact := self
	var viewer *models.User
	if viewerID != "" && !self {
		viewer, err = s.Repo.GetByID(ctx, viewerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch viewer: %w", err)
		}
		if viewer != nil {
			withContact = viewer.HasUnlocked(workerID)
		}
	}

	profile := worker.ToWorkerProfile(withContact)
	if viewer != nil {
		profile.IsFavorite = viewer.IsFavorite(workerID)
	}
	return &profile, nil
}

// UnlockContact records that userID paid to see workerID's contact details.
func (s *DefaultUserService) UnlockContact(ctx context.Context, userID, workerID string) error {
	if err := s.Repo.UpdateAddToSetDocument(ctx, userID, bson.M{"unlockedContacts": workerID}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("user", userID)
		}
		return fmt.Errorf("failed to unlock contact: %w", err)
	}
	s.Logger.Info("Worker contact unlocked", zap.String("userID", userID), zap.String("workerID", workerID))
	return nil
}
