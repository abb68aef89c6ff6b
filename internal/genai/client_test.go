package genai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		TextModel:  "text-model",
		ImageModel: "image-model",
	}, zerolog.Nop())
}

func TestCompleteReturnsFirstTextPart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "text-model:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"لا بأس بالقلق"}]}}]}`))
	})

	got, err := client.Complete(context.Background(), "user", "system")
	require.NoError(t, err)
	assert.Equal(t, "لا بأس بالقلق", got)
}

func TestCompleteEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	got, err := client.Complete(context.Background(), "user", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerateImageBuildsDataURI(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "image-model:generateContent")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[
			{"text":"here is your image"},
			{"inlineData":{"mimeType":"image/png","data":"QUJD"}}
		]}}]}`))
	})

	got, err := client.GenerateImage(context.Background(), "breathing exercise")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QUJD", got)
}

func TestGenerateImageNoImagePart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`))
	})

	_, err := client.GenerateImage(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoImage)
	assert.False(t, IsPermissionOrQuota(err))
}

func TestQuotaAndPermissionClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		pq     bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`, true},
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`, true},
		{"server error", http.StatusInternalServerError, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`, false},
		{"bad request", http.StatusBadRequest, `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.GenerateImage(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, tc.pq, IsPermissionOrQuota(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
		})
	}
}

func TestKeyFuncRotation(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("key"))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	key := "first"
	client.SetKeyFunc(func() string { return key })

	_, err := client.Complete(context.Background(), "p", "")
	require.NoError(t, err)

	key = "second"
	_, err = client.Complete(context.Background(), "p", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestThematicPromptWrapsSubject(t *testing.T) {
	p := thematicPrompt("a calm sea")
	assert.True(t, strings.Contains(p, "Subject: a calm sea."))
	assert.True(t, strings.Contains(p, "minimalist artwork"))
}
