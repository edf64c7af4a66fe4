package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// aiService implements AISvcFacade against the Gemini generateContent REST
// API. Each operation builds one prompt, asks for JSON and decodes the reply
// into the matching response type.
type aiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAIService creates a new instance of aiService.
func NewAIService(cfg *config.Config) portssvc.AISvcFacade {
	return &aiService{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

var _ portssvc.AISvcFacade = (*aiService)(nil)

// Wire types for the generateContent endpoint.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
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
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate sends one prompt and returns the model's raw text reply.
func (s *aiService) generate(ctx context.Context, parts []geminiPart, temperature float64, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not configured")
	}

	var reqBody geminiRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})
	reqBody.GenerationConfig.Temperature = temperature
	reqBody.GenerationConfig.MaxOutputTokens = maxTokens

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode model request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read model response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("model returned %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Model call completed",
		slog.String("model", s.model),
		slog.Duration("latency", time.Since(start)),
	)

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// stripFences removes a surrounding markdown code fence. The prompt forbids
// fences but the model sends them anyway often enough to matter.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func decodeModelJSON(text string, out any) error {
	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		return fmt.Errorf("failed to parse model reply as JSON: %w", err)
	}
	return nil
}

func (s *aiService) AnalyzeRecipe(ctx context.Context, recipeText string, family []models.FamilyMember) (*dto.RecipeAnalysis, error) {
	prompt := buildRecipeAnalysisPrompt(recipeText, family)
	text, err := s.generate(ctx, []geminiPart{{Text: prompt}}, 0.3, 4000)
	if err != nil {
		return nil, err
	}
	var analysis dto.RecipeAnalysis
	if err := decodeModelJSON(text, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *aiService) AnalyzeIngredients(ctx context.Context, ingredients []string, family []models.FamilyMember) (*dto.IngredientAnalysis, error) {
	prompt := buildIngredientAnalysisPrompt(ingredients, family)
	text, err := s.generate(ctx, []geminiPart{{Text: prompt}}, 0.3, 2000)
	if err != nil {
		return nil, err
	}
	var analysis dto.IngredientAnalysis
	if err := decodeModelJSON(text, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *aiService) AnalyzeIngredientImage(ctx context.Context, imageData []byte, mimeType string, family []models.FamilyMember) (*dto.IngredientAnalysis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []geminiPart{
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(imageData),
		}},
		{Text: buildLabelImagePrompt(family)},
	}
	text, err := s.generate(ctx, parts, 0.3, 2000)
	if err != nil {
		return nil, err
	}
	var analysis dto.IngredientAnalysis
	if err := decodeModelJSON(text, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *aiService) SuggestRecipes(ctx context.Context, ingredients []string, family []models.FamilyMember) (*dto.RecipeSuggestions, error) {
	prompt := buildSuggestionPrompt(ingredients, family)
	text, err := s.generate(ctx, []geminiPart{{Text: prompt}}, 0.7, 3000)
	if err != nil {
		return nil, err
	}
	var suggestions dto.RecipeSuggestions
	if err := decodeModelJSON(text, &suggestions); err != nil {
		return nil, err
	}
	return &suggestions, nil
}

func (s *aiService) ExtractIngredients(ctx context.Context, recipes []string) ([]dto.ExtractedIngredient, error) {
	prompt := buildExtractionPrompt(recipes)
	text, err := s.generate(ctx, []geminiPart{{Text: prompt}}, 0.3, 3000)
	if err != nil {
		return nil, err
	}
	var result dto.ExtractedIngredientsResponse
	if err := decodeModelJSON(text, &result); err != nil {
		return nil, err
	}
	return result.Ingredients, nil
}
