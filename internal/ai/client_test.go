package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-lab-backend/config"
	"studio-lab-backend/internal/model"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.AIConfig{
		APIKey:        "test-key",
		BaseURL:       baseURL,
		AnalysisModel: "analysis-model",
		SuggestModel:  "suggest-model",
		Timeout:       5 * time.Second,
	})
}

// candidateResponse wraps text in the generateContent response envelope.
func candidateResponse(text string) generateResponse {
	var resp generateResponse
	resp.Candidates = []struct {
		Content generateContent `json:"content"`
	}{
		{Content: generateContent{Parts: []generatePart{{Text: text}}}},
	}
	return resp
}

func TestAnalyzeSketch(t *testing.T) {
	estimation := `{"complexity":"Medium","screen_count":4,"estimated_hours_min":20,"estimated_hours_max":40,"explanation":"Dense layout","risk_level":"Medium"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/analysis-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		assert.Equal(t, analysisPrompt, req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.Contents[0].Parts[1].InlineData)
		assert.Equal(t, "image/png", req.Contents[0].Parts[1].InlineData.MimeType)
		assert.Equal(t, "aGVsbG8=", req.Contents[0].Parts[1].InlineData.Data)
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		json.NewEncoder(w).Encode(candidateResponse(estimation))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.AnalyzeSketch(context.Background(), "aGVsbG8=", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "Medium", result.Complexity)
	assert.Equal(t, 4, result.ScreenCount)
	assert.Equal(t, 20, result.EstimatedHoursMin)
	assert.Equal(t, 40, result.EstimatedHoursMax)
	assert.Equal(t, "Dense layout", result.Explanation)
	assert.Equal(t, model.RiskMedium, result.RiskLevel)
}

func TestAnalyzeSketch_DefaultMimeType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "image/jpeg", req.Contents[0].Parts[1].InlineData.MimeType)
		json.NewEncoder(w).Encode(candidateResponse(`{"complexity":"Low"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).AnalyzeSketch(context.Background(), "aGVsbG8=", "")
	require.NoError(t, err)
}

func TestAnalyzeSketch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).AnalyzeSketch(context.Background(), "aGVsbG8=", "image/png")
	assert.Error(t, err)
}

func TestAnalyzeSketch_MalformedEstimation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(candidateResponse("not json at all"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).AnalyzeSketch(context.Background(), "aGVsbG8=", "image/png")
	assert.Error(t, err)
}

func TestSuggestAlternative(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/suggest-model:generateContent", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "SawStop Cabinet Saw")
		assert.Contains(t, prompt, "Form 4 3D Printer (Digital Fabrication)")

		json.NewEncoder(w).Encode(candidateResponse("Try the band saw in the wood shop."))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	suggestion := client.SuggestAlternative(context.Background(),
		model.Machine{ID: "w1", Name: "SawStop Cabinet Saw", Category: model.CategoryWood, Status: model.StatusInUse},
		[]model.Machine{
			{ID: "w1", Name: "SawStop Cabinet Saw", Category: model.CategoryWood, Status: model.StatusInUse},
			{ID: "df1", Name: "Form 4 3D Printer", Category: model.CategoryDigitalFab, Status: model.StatusAvailable},
			{ID: "w2", Name: "Wood Lathe", Category: model.CategoryWood, Status: model.StatusMaintenance},
		})

	assert.Equal(t, "Try the band saw in the wood shop.", suggestion)
}

func TestSuggestAlternative_FallbackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	suggestion := newTestClient(server.URL).SuggestAlternative(context.Background(),
		model.Machine{ID: "w1", Name: "SawStop Cabinet Saw"}, nil)

	assert.Equal(t, FallbackSuggestion, suggestion)
}

func TestSuggestAlternative_EmptyCandidateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(candidateResponse("  "))
	}))
	defer server.Close()

	suggestion := newTestClient(server.URL).SuggestAlternative(context.Background(),
		model.Machine{ID: "w1", Name: "SawStop Cabinet Saw"}, nil)

	assert.Equal(t, noSuggestionText, suggestion)
}
