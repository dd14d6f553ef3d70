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

const maxDescriptionLength = 2000

// buildProfileUpdate validates the patch against the current record and
// returns the $set document.
func buildProfileUpdate(current *models.User, patch models.ProfileUpdate) (bson.M, error) {
	set := bson.M{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "name cannot be empty")
		}
		set["name"] = name
	}
	if patch.Phone != nil {
		set["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if patch.Avatar != nil {
		set["avatar"] = strings.TrimSpace(*patch.Avatar)
	}
	if patch.Category != nil {
		set["category"] = strings.TrimSpace(*patch.Category)
	}
	if patch.Location != nil {
		set["location"] = strings.TrimSpace(*patch.Location)
	}
	if patch.Pincode != nil {
		pin := strings.TrimSpace(*patch.Pincode)
		if pin != "" && !models.ValidPincode(pin) {
			return nil, apperrors.NewValidationError("pincode", "pincode must be exactly 6 digits")
		}
		set["pincode"] = pin
	}
	if patch.Skills != nil {
		skills := make([]string, 0, len(*patch.Skills))
		for _, sk := range *patch.Skills {
			if sk = strings.TrimSpace(sk); sk != "" {
				skills = append(skills, sk)
			}
		}
		set["skills"] = skills
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if len([]rune(desc)) > maxDescriptionLength {
			return nil, apperrors.NewValidationError("description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
		}
		set["description"] = desc
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, apperrors.NewValidationError("price", "price cannot be negative")
		}
		set["price"] = *patch.Price
	}
	if patch.PriceType != nil {
		switch *patch.PriceType {
		case models.PriceDaily, models.PriceJob, models.PriceSqft:
			set["priceType"] = *patch.PriceType
		default:
			return nil, apperrors.NewValidationError("priceType", "price type must be daily, job or sqft")
		}
	}
	if patch.FCMToken != nil {
		set["fcmToken"] = strings.TrimSpace(*patch.FCMToken)
	}

	if patch.IsWorker != nil {
		set["isWorker"] = *patch.IsWorker
		// Registering as a worker puts the profile back in the approval queue.
		if *patch.IsWorker && !current.IsWorker {
			set["isApproved"] = false
		}
	}

	becomesWorker := current.IsWorker
	if patch.IsWorker != nil {
		becomesWorker = *patch.IsWorker
	}
	if becomesWorker {
		category := current.Category
		if v, ok := set["category"].(string); ok {
			category = v
		}
		if category == "" {
			return nil, apperrors.NewValidationError("category", "workers must choose a category")
		}
	}
	return set, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, patch models.ProfileUpdate) (*models.User, error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	set, err := buildProfileUpdate(current, patch)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return current, nil
	}

	if err := s.Repo.UpdateSetDocument(ctx, userID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user", userID)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.Logger.Info("Profile updated", zap.String("userID", userID), zap.Int("fields", len(set)))
	return s.GetProfile(ctx, userID)
}
