package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-tailor/internal/types"
)

func tailorRequest() *TailorRequest {
	return &TailorRequest{
		JobTitle:     "Backend Engineer",
		Company:      "Acme",
		Description:  "Go and PostgreSQL",
		Requirements: []string{},
		UserProfile:  types.UserProfile{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"},
	}
}

func TestClient_Tailor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/functions/v1/tailor-application", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req TailorRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Backend Engineer", req.JobTitle)
		assert.Equal(t, "Jane", req.UserProfile.FirstName)

		json.NewEncoder(w).Encode(TailorResponse{
			TailoredResume: "JANE DOE ...",
			ResumePDF:      "JVBERi0=",
			MatchScore:     87,
			CVFileName:     "Jane_Doe_ATS_CV.pdf",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-token")
	resp, err := client.Tailor(context.Background(), tailorRequest())
	require.NoError(t, err)

	assert.Equal(t, 87, resp.MatchScore)
	assert.Equal(t, "Jane_Doe_ATS_CV.pdf", resp.CVFileName)
	assert.Equal(t, "JVBERi0=", resp.ResumePDF)
}

func TestClient_Tailor_ServerErrorSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "profile not found", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "")
	_, err := client.Tailor(context.Background(), tailorRequest())
	require.Error(t, err)

	var backendErr *Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusUnprocessableEntity, backendErr.StatusCode)
	assert.Contains(t, backendErr.Body, "profile not found")
}

func TestClient_Tailor_ApplicationLevelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TailorResponse{Error: "quota exceeded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "")
	_, err := client.Tailor(context.Background(), tailorRequest())
	require.Error(t, err)

	var backendErr *Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "quota exceeded", backendErr.Body)
}

func TestClient_Tailor_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TailorResponse{})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "", "")
	_, err := client.Tailor(ctx, tailorRequest())
	assert.Error(t, err)
}
