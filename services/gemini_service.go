package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vivek-java-dev/Calorie-Tracker/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

var (
	// ErrGatewayAuth covers a missing or rejected Gemini API key.
	ErrGatewayAuth = errors.New("gemini authentication failed")

	// ErrRateLimited covers upstream quota and rate-limit rejections.
	ErrRateLimited = errors.New("gemini rate limited")
)

// NutritionData is the normalized analysis result: the Entry shape
// minus id, owner and timestamps.
type NutritionData struct {
	UserText       string             `json:"userText"`
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	Items          []models.EntryItem `json:"items,omitempty"`
	Calories       int                `json:"calories"`
	Proteins       float64            `json:"proteins"`
	Carbs          float64            `json:"carbs"`
	Fats           float64            `json:"fats"`
	Duration       int                `json:"duration,omitempty"`
	HealthAnalysis string             `json:"healthAnalysis"`
}

type GeminiService struct {
	apiKey      string
	textModel   string
	visionModel string
	baseURL     string
	client      *http.Client
}

// NewGeminiService initializes the service with credentials and HTTP client
func NewGeminiService() *GeminiService {
	textModel := os.Getenv("GEMINI_TEXT_MODEL")
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	visionModel := os.Getenv("GEMINI_VISION_MODEL")
	if visionModel == "" {
		visionModel = "gemini-2.5-flash"
	}
	return &GeminiService{
		apiKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		textModel:   textModel,
		visionModel: visionModel,
		baseURL:     defaultGeminiBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// AnalyzeUserText asks the model for a structured nutrition record for
// a free-text meal or exercise description.
func (s *GeminiService) AnalyzeUserText(ctx context.Context, userText string) (*NutritionData, error) {
	parts := []geminiPart{{Text: buildNutritionPrompt(userText, false)}}
	return s.generate(ctx, s.textModel, parts)
}

// AnalyzeMealImage asks the vision model for a structured nutrition
// record for a photographed meal.
func (s *GeminiService) AnalyzeMealImage(ctx context.Context, imageData []byte, mimeType string) (*NutritionData, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []geminiPart{
		{Text: buildNutritionPrompt("", true)},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(imageData),
		}},
	}
	return s.generate(ctx, s.visionModel, parts)
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiService) generate(ctx context.Context, model string, parts []geminiPart) (*NutritionData, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrGatewayAuth)
	}

	var reqBody geminiRequest
	reqBody.Contents = []struct {
		Parts []geminiPart `json:"parts"`
	}{{Parts: parts}}
	reqBody.GenerationConfig.Temperature = 0.3

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Gemini payload: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyGeminiError(resp.StatusCode, body)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	raw, err := extractJSONObject(gr.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	return normalizeNutritionData(raw), nil
}

// classifyGeminiError maps upstream failures onto the auth / quota /
// generic bands the API layer reports as 401, 429 and 500.
func classifyGeminiError(status int, body []byte) error {
	msg := strings.ToLower(string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden ||
		strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: upstream status %d", ErrGatewayAuth, status)
	case status == http.StatusTooManyRequests ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: upstream status %d", ErrRateLimited, status)
	default:
		return fmt.Errorf("gemini API error %d: %s", status, string(body))
	}
}

// extractJSONObject parses the model output, tolerating prose or code
// fences around the JSON object.
func extractJSONObject(text string) (*rawNutritionData, error) {
	var raw rawNutritionData
	if err := json.Unmarshal([]byte(text), &raw); err == nil {
		return &raw, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("failed to parse model response as JSON")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return &raw, nil
}

type rawNutritionData struct {
	UserText       string             `json:"userText"`
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	Items          []models.EntryItem `json:"items"`
	Calories       float64            `json:"calories"`
	Proteins       float64            `json:"proteins"`
	Carbs          float64            `json:"carbs"`
	Fats           float64            `json:"fats"`
	Duration       float64            `json:"duration"`
	HealthAnalysis string             `json:"healthAnalysis"`
}

// normalizeNutritionData clamps the model output into the stored
// conventions: whole calories, macros at one decimal, type defaulted
// to meal, no item breakdown on exercises. A missing items key stays
// nil rather than becoming an empty slice.
func normalizeNutritionData(raw *rawNutritionData) *NutritionData {
	typ := models.EntryTypeMeal
	if raw.Type == models.EntryTypeExercise {
		typ = models.EntryTypeExercise
	}

	items := raw.Items
	if typ == models.EntryTypeExercise {
		items = nil
	}

	return &NutritionData{
		UserText:       strings.TrimSpace(raw.UserText),
		Name:           defaultString(strings.TrimSpace(raw.Name), "Meal"),
		Type:           typ,
		Items:          items,
		Calories:       int(math.Round(raw.Calories)),
		Proteins:       math.Round(raw.Proteins*10) / 10,
		Carbs:          math.Round(raw.Carbs*10) / 10,
		Fats:           math.Round(raw.Fats*10) / 10,
		Duration:       int(math.Round(raw.Duration)),
		HealthAnalysis: strings.TrimSpace(raw.HealthAnalysis),
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
