package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"apnakam/database/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestClassifyTxnError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"transient", mongo.CommandError{Code: 112, Name: "WriteConflict", Labels: []string{"TransientTransactionError"}}, true},
		{"unknown commit", mongo.CommandError{Code: 91, Name: "ShutdownInProgress", Labels: []string{"UnknownTransactionCommitResult"}}, true},
		{"wrapped conflict", fmt.Errorf("commit: %w", repository.ErrWriteConflict), true},
		{"unlabelled server error", mongo.CommandError{Code: 11600, Name: "InterruptedAtShutdown"}, false},
		{"plain", errors.New("could not start mongo session"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTxnError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.retryable, errors.Is(got, repository.ErrWriteConflict))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestNewMongoReviewRepoLogsIndexFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(50*time.Millisecond))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	NewMongoReviewRepo(client.Database("apnakam_test"))

	assert.Equal(t, 1, logs.FilterMessage("Failed to create review indexes").Len())
}
