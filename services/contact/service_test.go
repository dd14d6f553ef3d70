package contact

import (
	"context"
	"testing"

	"apnakam/models"
	"apnakam/services/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memContacts struct {
	saved []models.ContactMessage
}

func (m *memContacts) Create(_ context.Context, msg *models.ContactMessage) (string, error) {
	msg.ID = "m1"
	m.saved = append(m.saved, *msg)
	return msg.ID, nil
}

func (m *memContacts) List(context.Context) ([]models.ContactMessage, error) {
	return m.saved, nil
}

func TestSaveContactMessage(t *testing.T) {
	repo := &memContacts{}
	svc := NewDefaultContactService(repo, nil)

	msg, err := svc.SaveContactMessage(context.Background(), " Ravi ", "ravi@example.in", " Need a carpenter ")
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "Ravi", repo.saved[0].Name)
	assert.Equal(t, "Need a carpenter", repo.saved[0].Message)
}

func TestSaveContactMessage_Validation(t *testing.T) {
	svc := NewDefaultContactService(&memContacts{}, nil)
	cases := []struct{ name, email, message, field string }{
		{"", "a@b.in", "hi", "name"},
		{"A", "", "hi", "email"},
		{"A", "a@b.in", "  ", "message"},
		{"A", "not-an-email", "hi", "email"},
	}
	for _, c := range cases {
		_, err := svc.SaveContactMessage(context.Background(), c.name, c.email, c.message)
		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, c.field, ve.Field)
	}
}
