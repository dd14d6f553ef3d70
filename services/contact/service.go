package contact

import (
	"context"
	"net/mail"
	"strings"

	contactRepo "apnakam/database/repository/contact"
	"apnakam/models"
	"apnakam/services/apperrors"

	"go.uber.org/zap"
)

const maxMessageLength = 5000

type ContactService interface {
	SaveContactMessage(ctx context.Context, name, email, message string) (*models.ContactMessage, error)
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
}

type DefaultContactService struct {
	Repo   contactRepo.ContactRepository
	Logger *zap.Logger
}

func NewDefaultContactService(repo contactRepo.ContactRepository, logger *zap.Logger) *DefaultContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultContactService{Repo: repo, Logger: logger}
}

func (s *DefaultContactService) SaveContactMessage(ctx context.Context, name, email, message string) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	switch {
	case msg.Name == "":
		return nil, apperrors.NewValidationError("name", "name is required")
	case msg.Email == "":
		return nil, apperrors.NewValidationError("email", "email is required")
	case msg.Message == "":
		return nil, apperrors.NewValidationError("message", "message is required")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return nil, apperrors.NewValidationError("email", "email address is not valid")
	}
	if len([]rune(msg.Message)) > maxMessageLength {
		return nil, apperrors.NewValidationError("message", "message is too long")
	}

	if _, err := s.Repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.Logger.Info("Contact message saved", zap.String("id", msg.ID))
	return msg, nil
}

// ListMessages returns submissions newest first.
func (s *DefaultContactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.Repo.List(ctx)
}
