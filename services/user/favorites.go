package user

import (
	"context"
	"fmt"

	"apnakam/models"
	"apnakam/services/apperrors"

	"go.mongodb.org/mongo-driver/bson"
)

// ToggleFavorite adds or removes workerID from the user's favorites and
// reports whether it is now a favorite.
func (s *DefaultUserService) ToggleFavorite(ctx context.Context, userID, workerID string) (bool, error) {
	if userID == workerID {
		return false, apperrors.NewValidationError("workerId", "you cannot favorite yourself")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	worker, err := s.GetProfile(ctx, workerID)
	if err != nil || !worker.IsWorker {
		return false, apperrors.NewNotFoundError("worker", workerID)
	}

	if u.IsFavorite(workerID) {
		if err := s.Repo.PullFromArray(ctx, userID, "favorites", workerID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if err := s.Repo.UpdateAddToSetDocument(ctx, userID, bson.M{"favorites": workerID}); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// ListFavorites returns the user's favorite workers that are still listed.
func (s *DefaultUserService) ListFavorites(ctx context.Context, userID string) ([]models.WorkerProfile, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	workers, err := s.Repo.GetByIDs(ctx, u.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	byID := make(map[string]models.User, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
	}
	out := make([]models.WorkerProfile, 0, len(u.Favorites))
	for _, id := range u.Favorites {
		w, ok := byID[id]
		if !ok || !w.IsWorker || !w.IsApproved {
			continue
		}
		p := w.ToWorkerProfile(u.HasUnlocked(id))
		p.IsFavorite = true
		out = append(out, p)
	}
	return out, nil
}
