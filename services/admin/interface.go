package admin

import (
	"context"

	"apnakam/models"

	"go.uber.org/zap"
)

const RoleAdmin = "admin"

type AdminService interface {
	Login(ctx context.Context, username, password string) (*models.AdminSession, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetLegalSections() []models.LegalSection
	GetLegalSectionsFor(audience string) []models.LegalSection
}

// UserLister lists every account.
type UserLister interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// Credentials is the single admin account loaded from configuration.
type Credentials struct {
	Username     string
	PasswordHash string
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Creds  Credentials
	Users  UserLister
	Logger *zap.Logger
}

func NewDefaultAdminService(creds Credentials, users UserLister, logger *zap.Logger) *DefaultAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAdminService{Creds: creds, Users: users, Logger: logger}
}
