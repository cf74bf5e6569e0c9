package registration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/collaborator"
)

func TestHTTPAdapter_CreateIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"patientId":"P-7"}`))
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(collaborator.NewClient(server.URL, "", time.Second))
	identity, err := adapter.CreateIdentity(context.Background(), entities.IdentityForm{FullName: "Amaka Obi", Email: "a@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "P-7", identity.PatientID)
	assert.Equal(t, "Amaka Obi", identity.PatientData["full_name"])
	assert.False(t, identity.Placeholder)
}

func TestHTTPAdapter_CreateIdentity_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(collaborator.NewClient(server.URL, "", time.Second))
	_, err := adapter.CreateIdentity(context.Background(), entities.IdentityForm{FullName: "x", Phone: "1"})
	assert.Error(t, err)
}
