// Package ai calls the hosted sketch-analysis models. Failures here are
// always recoverable: analysis errors surface a retry prompt, and machine
// suggestions fall back to canned text rather than propagate an error.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"studio-lab-backend/config"
	"studio-lab-backend/internal/model"
)

const analysisPrompt = "Act as a senior Creative Director and Project Manager. " +
	"Analyze this design sketch carefully. Evaluate complexity, layout density, " +
	"and potential engineering hurdles. Output valid JSON with the following " +
	"structure: complexity (Low/Medium/High), screen_count (integer), " +
	"estimated_hours_min (integer), estimated_hours_max (integer), " +
	"explanation (string), risk_level (Low/Medium/High)."

// FallbackSuggestion is returned whenever the suggestion call fails.
const FallbackSuggestion = "Check availability in adjacent labs for similar equipment."

// noSuggestionText covers a successful call that produced no usable text.
const noSuggestionText = "Consult with a lab technician for immediate alternatives."

// Client talks to the generative-model API over HTTP.
type Client struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewClient creates and initializes an AI client.
func NewClient(cfg *config.AIConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. AI client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// request/response shapes for the generateContent endpoint.

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// AnalyzeSketch submits a base64-encoded sketch for complexity estimation.
// Any failure (network, non-200, malformed payload) is returned as an
// error; the caller surfaces a retry prompt.
func (c *Client) AnalyzeSketch(ctx context.Context, imageBase64, mimeType string) (*model.EstimationResult, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{Text: analysisPrompt},
				{InlineData: &inlineData{MimeType: mimeType, Data: imageBase64}},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, c.cfg.AnalysisModel, req)
	if err != nil {
		return nil, err
	}

	var result model.EstimationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to decode estimation result: %w", err)
	}
	return &result, nil
}

// SuggestAlternative asks for a short alternative-machine suggestion when
// the wanted machine is unavailable. It never returns an error; failures
// produce the canned fallback text.
func (c *Client) SuggestAlternative(ctx context.Context, unavailable model.Machine, roster []model.Machine) string {
	var available []string
	for _, m := range roster {
		if m.ID != unavailable.ID && m.Status == model.StatusAvailable {
			available = append(available, fmt.Sprintf("%s (%s)", m.Name, m.Category))
		}
	}

	prompt := fmt.Sprintf(
		"Suggest a supportive and professional alternative for a student designer based on this context: "+
			"User wanted %s (%s) but it is currently %s. Here are other available machines in the lab: %s. "+
			"If no direct alternative exists, suggest the nearest related process. Keep it brief, under 30 words.",
		unavailable.Name, unavailable.Category, unavailable.Status, strings.Join(available, ", "))

	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}

	text, err := c.generate(ctx, c.cfg.SuggestModel, req)
	if err != nil {
		log.Printf("Suggestion call failed: %v", err)
		return FallbackSuggestion
	}
	if strings.TrimSpace(text) == "" {
		return noSuggestionText
	}
	return text
}

// generate performs one generateContent call and returns the first
// candidate's text.
func (c *Client) generate(ctx context.Context, modelName string, payload generateRequest) (string, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp generateResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal api response: %w", err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("api response contained no candidates")
	}
	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}
