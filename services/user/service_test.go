package user

import (
	"context"
	"testing"

	"apnakam/database/repository"
	"apnakam/models"
	"apnakam/services/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	us, _ := args.Get(0).([]models.User)
	return us, args.Error(1)
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]models.User)
	return us, args.Error(1)
}

func (m *mockUserRepo) EnsureFromIdentity(ctx context.Context, identity models.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateSetDocument(ctx context.Context, id string, doc bson.M) error {
	return m.Called(ctx, id, doc).Error(0)
}

func (m *mockUserRepo) UpdateAddToSetDocument(ctx context.Context, id string, doc bson.M) error {
	return m.Called(ctx, id, doc).Error(0)
}

func (m *mockUserRepo) PullFromArray(ctx context.Context, id, field string, value interface{}) error {
	return m.Called(ctx, id, field, value).Error(0)
}

func (m *mockUserRepo) SearchWorkers(ctx context.Context, c models.WorkerSearchCriteria) ([]models.User, error) {
	args := m.Called(ctx, c)
	us, _ := args.Get(0).([]models.User)
	return us, args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildProfileUpdate(t *testing.T) {
	customer := &models.User{ID: "u1"}
	worker := &models.User{ID: "w1", IsWorker: true, IsApproved: true, Category: "Plumber"}

	t.Run("trims and sets fields", func(t *testing.T) {
		set, err := buildProfileUpdate(customer, models.ProfileUpdate{Name: strPtr("  Asha  "), Pincode: strPtr("110001")})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"name": "Asha", "pincode": "110001"}, set)
	})

	t.Run("rejects bad pincode", func(t *testing.T) {
		_, err := buildProfileUpdate(customer, models.ProfileUpdate{Pincode: strPtr("1100")})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := buildProfileUpdate(customer, models.ProfileUpdate{Name: strPtr("   ")})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		p := -1.0
		_, err := buildProfileUpdate(worker, models.ProfileUpdate{Price: &p})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects unknown price type", func(t *testing.T) {
		pt := models.PriceType("hourly")
		_, err := buildProfileUpdate(worker, models.ProfileUpdate{PriceType: &pt})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("becoming a worker requires category and resets approval", func(t *testing.T) {
		_, err := buildProfileUpdate(customer, models.ProfileUpdate{IsWorker: boolPtr(true)})
		assert.True(t, apperrors.IsValidation(err))

		set, err := buildProfileUpdate(customer, models.ProfileUpdate{IsWorker: boolPtr(true), Category: strPtr("Electrician")})
		require.NoError(t, err)
		assert.Equal(t, true, set["isWorker"])
		assert.Equal(t, false, set["isApproved"])
	})

	t.Run("existing worker keeps approval", func(t *testing.T) {
		set, err := buildProfileUpdate(worker, models.ProfileUpdate{IsWorker: boolPtr(true)})
		require.NoError(t, err)
		_, touched := set["isApproved"]
		assert.False(t, touched)
	})

	t.Run("drops blank skills", func(t *testing.T) {
		skills := []string{"tiling", " ", " grouting "}
		set, err := buildProfileUpdate(worker, models.ProfileUpdate{Skills: &skills})
		require.NoError(t, err)
		assert.Equal(t, []string{"tiling", "grouting"}, set["skills"])
	})
}

func TestUpdateProfile_NoChangesSkipsWrite(t *testing.T) {
	repo := new(mockUserRepo)
	u := &models.User{ID: "u1", Name: "Asha"}
	repo.On("GetByID", mock.Anything, "u1").Return(u, nil).Once()

	svc := NewDefaultUserService(repo, nil, nil)
	got, err := svc.UpdateProfile(context.Background(), "u1", models.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, u, got)
	repo.AssertNotCalled(t, "UpdateSetDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	svc := NewDefaultUserService(repo, nil, nil)
	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	worker := &models.User{ID: "w1", IsWorker: true, IsApproved: true}

	t.Run("adds when absent", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)
		repo.On("GetByID", mock.Anything, "w1").Return(worker, nil)
		repo.On("UpdateAddToSetDocument", mock.Anything, "u1", bson.M{"favorites": "w1"}).Return(nil)

		fav, err := NewDefaultUserService(repo, nil, nil).ToggleFavorite(ctx, "u1", "w1")
		require.NoError(t, err)
		assert.True(t, fav)
		repo.AssertExpectations(t)
	})

	t.Run("removes when present", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Favorites: []string{"w1"}}, nil)
		repo.On("GetByID", mock.Anything, "w1").Return(worker, nil)
		repo.On("PullFromArray", mock.Anything, "u1", "favorites", "w1").Return(nil)

		fav, err := NewDefaultUserService(repo, nil, nil).ToggleFavorite(ctx, "u1", "w1")
		require.NoError(t, err)
		assert.False(t, fav)
		repo.AssertExpectations(t)
	})

	t.Run("self is rejected", func(t *testing.T) {
		_, err := NewDefaultUserService(new(mockUserRepo), nil, nil).ToggleFavorite(ctx, "w1", "w1")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("non-worker target is not found", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)
		repo.On("GetByID", mock.Anything, "u2").Return(&models.User{ID: "u2"}, nil)

		_, err := NewDefaultUserService(repo, nil, nil).ToggleFavorite(ctx, "u1", "u2")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestListFavorites_SkipsUnlistedAndKeepsOrder(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{
		ID:               "u1",
		Favorites:        []string{"w2", "w1", "w3"},
		UnlockedContacts: []string{"w1"},
	}, nil)
	repo.On("GetByIDs", mock.Anything, []string{"w2", "w1", "w3"}).Return([]models.User{
		{ID: "w1", IsWorker: true, IsApproved: true, Phone: "98"},
		{ID: "w2", IsWorker: true, IsApproved: true},
		{ID: "w3", IsWorker: true, IsApproved: false},
	}, nil)

	out, err := NewDefaultUserService(repo, nil, nil).ListFavorites(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "w2", out[0].ID)
	assert.Nil(t, out[0].Contact)
	assert.Equal(t, "w1", out[1].ID)
	require.NotNil(t, out[1].Contact)
	assert.Equal(t, "98", out[1].Contact.Phone)
	assert.True(t, out[1].IsFavorite)
}

func TestGetWorker(t *testing.T) {
	ctx := context.Background()
	approved := &models.User{ID: "w1", IsWorker: true, IsApproved: true, Phone: "98", Email: "w@x.in"}
	pending := &models.User{ID: "w2", IsWorker: true}

	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "w1").Return(approved, nil)
	repo.On("GetByID", mock.Anything, "w2").Return(pending, nil)
	repo.On("GetByID", mock.Anything, "payer").Return(&models.User{ID: "payer", UnlockedContacts: []string{"w1"}, Favorites: []string{"w1"}}, nil)
	repo.On("GetByID", mock.Anything, "stranger").Return(&models.User{ID: "stranger"}, nil)
	svc := NewDefaultUserService(repo, nil, nil)

	p, err := svc.GetWorker(ctx, "stranger", "w1")
	require.NoError(t, err)
	assert.Nil(t, p.Contact)
	assert.False(t, p.IsFavorite)

	p, err = svc.GetWorker(ctx, "payer", "w1")
	require.NoError(t, err)
	require.NotNil(t, p.Contact)
	assert.Equal(t, "w@x.in", p.Contact.Email)
	assert.True(t, p.IsFavorite)

	p, err = svc.GetWorker(ctx, "", "w1")
	require.NoError(t, err)
	assert.Nil(t, p.Contact)

	_, err = svc.GetWorker(ctx, "stranger", "w2")
	assert.True(t, apperrors.IsNotFound(err), "unapproved workers are hidden")

	p, err = svc.GetWorker(ctx, "w2", "w2")
	require.NoError(t, err, "workers can see their own pending profile")
	assert.NotNil(t, p.Contact)
}

func TestApproveWorker(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "w1").Return(&models.User{ID: "w1", IsWorker: true}, nil)
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)
	repo.On("UpdateSetDocument", mock.Anything, "w1", bson.M{"isApproved": true}).Return(nil)
	svc := NewDefaultUserService(repo, nil, nil)

	require.NoError(t, svc.ApproveWorker(context.Background(), "w1", true))
	assert.True(t, apperrors.IsValidation(svc.ApproveWorker(context.Background(), "u1", true)))
	repo.AssertNumberOfCalls(t, "UpdateSetDocument", 1)
}

type stubSuggester struct{ got string }

func (s *stubSuggester) SuggestSkills(_ context.Context, details string) (*models.SkillSuggestion, error) {
	s.got = details
	return &models.SkillSuggestion{SuggestedSkills: []string{"tiling"}}, nil
}

func TestSuggestSkills(t *testing.T) {
	sg := &stubSuggester{}
	svc := NewDefaultUserService(new(mockUserRepo), sg, nil)

	_, err := svc.SuggestSkills(context.Background(), "  ")
	assert.True(t, apperrors.IsValidation(err))

	out, err := svc.SuggestSkills(context.Background(), "I lay bathroom tiles")
	require.NoError(t, err)
	assert.Equal(t, []string{"tiling"}, out.SuggestedSkills)
	assert.Equal(t, "I lay bathroom tiles", sg.got)
}
