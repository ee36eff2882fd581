package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_ReturnsFirstCandidateText(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{
					{"text": "Hello, "},
					{"text": "world."},
				}}},
			},
		})
	}))
	defer server.Close()

	repo := NewGeminiRepository("test-key", server.URL)
	text, err := repo.GenerateContent(context.Background(), "Say hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello, world.", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent?key=test-key", gotPath)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "Say hello", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateContent_ErrorsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	repo := NewGeminiRepository("bad-key", server.URL)
	_, err := repo.GenerateContent(context.Background(), "Say hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestGenerateContent_ErrorsOnEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	repo := NewGeminiRepository("test-key", server.URL)
	_, err := repo.GenerateContent(context.Background(), "Say hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
