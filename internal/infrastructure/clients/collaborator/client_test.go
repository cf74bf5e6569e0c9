package collaborator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_ListImplants_SendsCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/implants", r.URL.Path)
		assert.Equal(t, "knee", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"k1","name":"Attune","tier":"premium","cost":285000,"category":"knee"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "", time.Second)
	implants, err := client.ListImplants(context.Background(), "knee")

	require.NoError(t, err)
	require.Len(t, implants, 1)
	assert.Equal(t, "premium", implants[0].Tier)
	assert.Equal(t, int64(285000), implants[0].Cost)
}

func TestHTTPClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	_, err := client.ListSurgeons(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.True(t, statusErr.Retryable())
}

func TestStatusError_ClientErrorsAreNotRetryable(t *testing.T) {
	assert.False(t, (&StatusError{StatusCode: http.StatusBadRequest}).Retryable())
	assert.True(t, (&StatusError{StatusCode: http.StatusTooManyRequests}).Retryable())
}

func TestHTTPClient_RegisterPatient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/patients", r.URL.Path)

		var req RegisterPatientRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Amaka Obi", req.FullName)

		_ = json.NewEncoder(w).Encode(RegisterPatientResponse{
			PatientID:   "P-42",
			PatientData: map[string]any{"full_name": req.FullName},
		})
	}))
	defer server.Close()

	client := NewClient("http://catalog.invalid", server.URL, time.Second)
	resp, err := client.RegisterPatient(context.Background(), RegisterPatientRequest{FullName: "Amaka Obi", Email: "a@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "P-42", resp.PatientID)
}

func TestHTTPClient_RegisterPatient_RequiresPatientID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	_, err := client.RegisterPatient(context.Background(), RegisterPatientRequest{FullName: "x"})
	assert.Error(t, err)
}
