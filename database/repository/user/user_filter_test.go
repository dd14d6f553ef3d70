package userRepo

import (
	"testing"

	"apnakam/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildWorkerFilter(t *testing.T) {
	t.Run("no criteria matches all approved workers", func(t *testing.T) {
		f := buildWorkerFilter(models.WorkerSearchCriteria{})
		assert.Equal(t, bson.M{"isWorker": true, "isApproved": true}, f)
	})

	t.Run("pincode and categories", func(t *testing.T) {
		f := buildWorkerFilter(models.WorkerSearchCriteria{
			Pincode:    "110001",
			Categories: []string{"Plumber", "Electrician"},
		})
		assert.Equal(t, "110001", f["pincode"])
		assert.Equal(t, bson.M{"$in": []string{"Plumber", "Electrician"}}, f["category"])
		assert.Equal(t, true, f["isApproved"])
	})
}
