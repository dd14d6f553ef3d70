package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"apnakam/models"
	"apnakam/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

// Login checks the configured admin credentials and issues a signed token.
func (a *DefaultAdminService) Login(ctx context.Context, username, password string) (*models.AdminSession, error) {
	if a.Creds.PasswordHash == "" {
		return nil, errors.New("admin login is not configured")
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Creds.Username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := bcrypt.CompareHashAndPassword([]byte(a.Creds.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		a.Logger.Warn("Admin login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(a.Creds.Username, RoleAdmin, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue admin token: %w", err)
	}
	a.Logger.Info("Admin logged in", zap.String("username", username))
	return &models.AdminSession{Token: token, ExpiresAt: time.Now().Add(sessionTTL)}, nil
}

// DashboardStats counts users and workers for the console overview.
func (a *DefaultAdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	users, err := a.Users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	stats := &models.DashboardStats{TotalUsers: len(users)}
	for _, u := range users {
		if !u.IsWorker {
			continue
		}
		stats.TotalWorkers++
		if u.IsApproved {
			stats.ApprovedWorkers++
		} else {
			stats.PendingApprovals++
		}
	}
	return stats, nil
}
