package user

import (
	"context"

	userRepo "apnakam/database/repository/user"
	"apnakam/models"

	"go.uber.org/zap"
)

type UserService interface {
	// Profile
	EnsureUser(ctx context.Context, identity models.Identity) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfileUpdate) (*models.User, error)
	AddPortfolioItem(ctx context.Context, userID string, item models.PortfolioItem) error
	SuggestSkills(ctx context.Context, workerDetails string) (*models.SkillSuggestion, error)

	// Workers and favorites
	GetWorker(ctx context.Context, viewerID, workerID string) (*models.WorkerProfile, error)
	ToggleFavorite(ctx context.Context, userID, workerID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]models.WorkerProfile, error)
	UnlockContact(ctx context.Context, userID, workerID string) error

	// Admin
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ApproveWorker(ctx context.Context, workerID string, approved bool) error
}

// SkillSuggester generates skill suggestions from free-text details.
type SkillSuggester interface {
	SuggestSkills(ctx context.Context, workerDetails string) (*models.SkillSuggestion, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Suggester SkillSuggester
	Logger    *zap.Logger
}

func NewDefaultUserService(repo userRepo.UserRepository, suggester SkillSuggester, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Repo: repo, Suggester: suggester, Logger: logger}
}
