package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasktango/backend/domain"
)

func validAdvisorInput() Input {
	return Input{
		Title:       "ship release notes",
		Description: "summarize the changelog",
		DueDate:     "2024-05-20T00:00:00Z",
	}
}

func chatServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		require.Contains(t, req.Messages[0].Content, "ship release notes")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": answer}},
			},
		})
	}))
}

func TestSuggestPriority(t *testing.T) {
	srv := chatServer(t, "high")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", time.Second)
	priority, err := client.SuggestPriority(context.Background(), validAdvisorInput())
	require.NoError(t, err)
	require.Equal(t, domain.PriorityHigh, priority)
}

func TestSuggestPriorityNormalizesAnswer(t *testing.T) {
	srv := chatServer(t, "  Medium\n")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", time.Second)
	priority, err := client.SuggestPriority(context.Background(), validAdvisorInput())
	require.NoError(t, err)
	require.Equal(t, domain.PriorityMedium, priority)
}

func TestSuggestPriorityRejectsOffScriptAnswer(t *testing.T) {
	srv := chatServer(t, "it depends on the stakeholder")
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", time.Second)
	_, err := client.SuggestPriority(context.Background(), validAdvisorInput())
	require.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable), "got %v", err)
}

func TestSuggestPriorityValidation(t *testing.T) {
	client := NewClient("test-key", "http://unused", "test-model", time.Second)

	in := validAdvisorInput()
	in.Title = ""
	_, err := client.SuggestPriority(context.Background(), in)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	in = validAdvisorInput()
	in.DueDate = "next tuesday"
	_, err = client.SuggestPriority(context.Background(), in)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSuggestPriorityWithoutAPIKey(t *testing.T) {
	client := NewClient("", "http://unused", "test-model", time.Second)
	_, err := client.SuggestPriority(context.Background(), validAdvisorInput())
	require.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestSuggestPriorityUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit"},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", time.Second)
	_, err := client.SuggestPriority(context.Background(), validAdvisorInput())
	require.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
	require.True(t, strings.Contains(err.Error(), "rate limited"))
}

func TestSuggestPriorityUnreachableHost(t *testing.T) {
	client := NewClient("test-key", "http://127.0.0.1:1", "test-model", 200*time.Millisecond)
	_, err := client.SuggestPriority(context.Background(), validAdvisorInput())
	require.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestCacheKeyDistinguishesFields(t *testing.T) {
	a := Input{Title: "a", Description: "b", DueDate: "2024-05-20T00:00:00Z"}
	b := Input{Title: "ab", Description: "", DueDate: "2024-05-20T00:00:00Z"}
	require.NotEqual(t, a.CacheKey(), b.CacheKey())
	require.Equal(t, a.CacheKey(), a.CacheKey())
}
