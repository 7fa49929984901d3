package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"homeinventory/pkg/domain"
)

const (
	// DefaultBaseURL is the public Generative Language API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is used when GeminiOptions.Model is empty.
	DefaultModel = "gemini-2.5-flash"
)

// GeminiOptions configures the REST client.
type GeminiOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *zap.Logger
}

// Gemini calls the generateContent endpoint of the Gemini REST API.
type Gemini struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

var _ Assistant = (*Gemini)(nil)

// New returns a Gemini client, or Disabled when no API key is set.
func New(opts GeminiOptions) Assistant {
	if strings.TrimSpace(opts.APIKey) == "" {
		return Disabled{}
	}
	return NewGemini(opts)
}

// NewGemini builds the client unconditionally.
func NewGemini(opts GeminiOptions) *Gemini {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-goog-api-key", opts.APIKey)
	return &Gemini{httpClient: client, model: opts.Model, logger: opts.Logger}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []map[string]any  `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type groundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content           content `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []groundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func (g *Gemini) generate(ctx context.Context, op string, req generateRequest) (generateResponse, error) {
	var out generateResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		g.logger.Error("gemini call failed", zap.String("op", op), zap.Error(err))
		return generateResponse{}, &Error{Op: op, Err: err}
	}
	if resp.IsError() {
		g.logger.Error("gemini returned error",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode()),
		)
		return generateResponse{}, &Error{Op: op, StatusCode: resp.StatusCode(), Err: errors.New(strings.TrimSpace(resp.String()))}
	}
	return out, nil
}

// FindManual grounds the query with Google Search and returns the web
// sources that carry both a uri and a title.
func (g *Gemini) FindManual(ctx context.Context, description, details string) ([]domain.ManualLink, error) {
	out, err := g.generate(ctx, "find_manual", generateRequest{
		Contents: []content{{Parts: []part{{Text: manualPrompt(description, details)}}}},
		Tools:    []map[string]any{{"google_search": map[string]any{}}},
	})
	if err != nil {
		return nil, err
	}
	links := []domain.ManualLink{}
	if len(out.Candidates) == 0 || out.Candidates[0].GroundingMetadata == nil {
		return links, nil
	}
	for _, chunk := range out.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		links = append(links, domain.ManualLink{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	g.logger.Debug("manual lookup", zap.String("query", description), zap.Int("results", len(links)))
	return links, nil
}

// SuggestRoomItems asks for a JSON array; anything else yields no suggestions.
func (g *Gemini) SuggestRoomItems(ctx context.Context, roomName, description string) ([]string, error) {
	out, err := g.generate(ctx, "suggest_room_items", generateRequest{
		Contents:         []content{{Parts: []part{{Text: suggestionPrompt(roomName, description)}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}
	text := out.text()
	if text == "" {
		return []string{}, nil
	}
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		g.logger.Warn("unparseable suggestion payload", zap.Error(err))
		return []string{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return []string{}, nil
	}
	suggestions := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions, nil
}

// AnalyzeItemValue returns the model text verbatim.
func (g *Gemini) AnalyzeItemValue(ctx context.Context, description, notes, currency string) (string, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	out, err := g.generate(ctx, "analyze_item_value", generateRequest{
		Contents: []content{{Parts: []part{{Text: valuationPrompt(description, notes, currency)}}}},
	})
	if err != nil {
		return "", err
	}
	if text := out.text(); text != "" {
		return text, nil
	}
	return UnknownEstimate, nil
}
