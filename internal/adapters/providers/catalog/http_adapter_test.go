package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/collaborator"
	"github.com/zatekoja/surgicalbooking/pkg/retry"
)

func TestHTTPAdapter_FetchImplants_NormalizesTier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"k1","tier":" Premium ","cost":285000,"category":"knee"}]}`))
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(collaborator.NewClient(server.URL, "", time.Second))
	implants, err := adapter.FetchImplants(context.Background(), "knee")

	require.NoError(t, err)
	require.Len(t, implants, 1)
	assert.Equal(t, entities.ImplantTierPremium, implants[0].Tier)
}

func TestHTTPAdapter_FetchHospitals_MapsZone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"h1","zone":2,"basePrice":45000,"consumablesCost":15000,"address":{"city":"Lagos"}}]}`))
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(collaborator.NewClient(server.URL, "", time.Second))
	hospitals, err := adapter.FetchHospitals(context.Background())

	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, entities.ZoneMid, hospitals[0].Zone)
	assert.Equal(t, int64(45000), hospitals[0].BasePrice)
	assert.Equal(t, "Lagos", hospitals[0].Address.City)
}

func TestHTTPAdapter_ClientErrorIsPermanent(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(collaborator.NewClient(server.URL, "", time.Second))
	cfg := retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, BackoffFactor: 1}
	err := retry.Do(context.Background(), cfg, func(ctx context.Context) error {
		_, err := adapter.FetchSurgeons(ctx)
		return err
	})

	require.Error(t, err)
	var statusErr *collaborator.StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 1, calls)
}

func TestNewCatalogProvider_WithoutClientIsStatic(t *testing.T) {
	provider := NewCatalogProvider(nil)
	_, ok := provider.(*StaticAdapter)
	assert.True(t, ok)
}
