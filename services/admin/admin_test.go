package admin

import (
	"context"
	"testing"

	"apnakam/models"
	"apnakam/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type staticUsers []models.User

func (s staticUsers) GetAllUsers(context.Context) ([]models.User, error) { return s, nil }

func newAdmin(t *testing.T) *DefaultAdminService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	utils.SetJWTSecret("admin-test")
	return NewDefaultAdminService(Credentials{Username: "admin", PasswordHash: string(hash)}, staticUsers{
		{ID: "c1"},
		{ID: "w1", IsWorker: true, IsApproved: true},
		{ID: "w2", IsWorker: true},
	}, nil)
}

func TestLogin(t *testing.T) {
	svc := newAdmin(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	sub, role, err := utils.ExtractClaims(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, RoleAdmin, role)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDashboardStats(t *testing.T) {
	stats, err := newAdmin(t).DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{TotalUsers: 3, TotalWorkers: 2, ApprovedWorkers: 1, PendingApprovals: 1}, stats)
}

func TestLegalSectionsFor(t *testing.T) {
	svc := newAdmin(t)
	ids := func(ss []models.LegalSection) []string {
		out := []string{}
		for _, s := range ss {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(t, []string{"terms", "refund"}, ids(svc.GetLegalSectionsFor(models.AudienceCustomer)))
	assert.Equal(t, []string{"terms", "worker-conduct"}, ids(svc.GetLegalSectionsFor(models.AudienceWorker)))
}
