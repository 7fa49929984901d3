package assist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homeinventory/pkg/domain"
)

type capturedRequest struct {
	path   string
	apiKey string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func promptOf(t *testing.T, body map[string]any) string {
	t.Helper()
	contents, _ := body["contents"].([]any)
	if len(contents) != 1 {
		t.Fatalf("expected one content entry, got %+v", body)
	}
	parts := contents[0].(map[string]any)["parts"].([]any)
	return parts[0].(map[string]any)["text"].(string)
}

func TestNewWithoutKeyIsDisabled(t *testing.T) {
	a := New(GeminiOptions{})
	if _, ok := a.(Disabled); !ok {
		t.Fatalf("expected Disabled, got %T", a)
	}
	links, err := a.FindManual(context.Background(), "Bosch Dishwasher", "")
	if err != nil || len(links) != 0 {
		t.Fatalf("unexpected manual result %+v %v", links, err)
	}
	got, _ := a.AnalyzeItemValue(context.Background(), "x", "", "EUR")
	if got != UnableToEstimate {
		t.Fatalf("expected neutral estimate, got %q", got)
	}
}

func TestFindManualReturnsGroundedSources(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"see links"}]},
		"groundingMetadata":{"groundingChunks":[
			{"web":{"uri":"https://example.com/manual.pdf","title":"SMS6 manual"}},
			{"web":{"uri":"https://example.com/no-title"}},
			{"retrievedContext":{}}]}}]}`)
	g := NewGemini(GeminiOptions{APIKey: "k", BaseURL: srv.URL})

	links, err := g.FindManual(context.Background(), "Bosch Dishwasher SMS6", "stainless")
	if err != nil {
		t.Fatalf("find manual: %v", err)
	}
	if len(links) != 1 || links[0] != (domain.ManualLink{Title: "SMS6 manual", URI: "https://example.com/manual.pdf"}) {
		t.Fatalf("unexpected links %+v", links)
	}
	if captured.path != "/v1beta/models/gemini-2.5-flash:generateContent" || captured.apiKey != "k" {
		t.Fatalf("unexpected request %s key=%q", captured.path, captured.apiKey)
	}
	if got := promptOf(t, captured.body); got != "Find the official PDF user manual or support page for: Bosch Dishwasher SMS6 stainless" {
		t.Fatalf("unexpected prompt %q", got)
	}
	if _, ok := captured.body["tools"]; !ok {
		t.Fatalf("expected search tool in request")
	}
}

func TestSuggestRoomItems(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"array", `[\"Sofa\",\"Lamp\",3]`, []string{"Sofa", "Lamp"}},
		{"object", `{\"items\":[\"Sofa\"]}`, []string{}},
		{"garbage", `not json`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, captured := newTestServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"`+tc.text+`"}]}}]}`)
			g := NewGemini(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
			got, err := g.SuggestRoomItems(context.Background(), "Den", "cosy")
			if err != nil {
				t.Fatalf("suggest: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tc.want, "|") || got == nil {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			cfg, _ := captured.body["generationConfig"].(map[string]any)
			if cfg["responseMimeType"] != "application/json" {
				t.Fatalf("expected JSON response mime type, got %+v", captured.body)
			}
			if !strings.Contains(promptOf(t, captured.body), `"Den" described as "cosy"`) {
				t.Fatalf("unexpected prompt %q", promptOf(t, captured.body))
			}
		})
	}
}

func TestAnalyzeItemValue(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"300 - 450 EUR"}]}}]}`)
	g := NewGemini(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	got, err := g.AnalyzeItemValue(context.Background(), "Sony TV", "55 inch", "EUR")
	if err != nil || got != "300 - 450 EUR" {
		t.Fatalf("unexpected estimate %q %v", got, err)
	}
	if !strings.HasPrefix(promptOf(t, captured.body), "Estimate the average insurance replacement value range (in EUR) for a used: Sony TV.") {
		t.Fatalf("unexpected prompt %q", promptOf(t, captured.body))
	}

	empty, _ := newTestServer(t, http.StatusOK, `{"candidates":[]}`)
	got, err = NewGemini(GeminiOptions{APIKey: "k", BaseURL: empty.URL}).AnalyzeItemValue(context.Background(), "x", "", "")
	if err != nil || got != UnknownEstimate {
		t.Fatalf("expected %q, got %q %v", UnknownEstimate, got, err)
	}
}

func TestServerErrorIsTyped(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusForbidden, `{"error":{"message":"bad key"}}`)
	g := NewGemini(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	_, err := g.SuggestRoomItems(context.Background(), "Den", "")
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if aerr.StatusCode != http.StatusForbidden || aerr.Op != "suggest_room_items" {
		t.Fatalf("unexpected error %+v", aerr)
	}
}

func TestFullDescriptionAndDetails(t *testing.T) {
	it := domain.Item{Brand: "Bosch", Name: "Dishwasher", Model: "SMS6", Notes: "kitchen"}
	if got := FullDescription(it); got != "Bosch Dishwasher SMS6" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := FullDescription(domain.Item{Name: "Chair"}); got != "Chair " {
		t.Fatalf("unexpected description %q", got)
	}
	if ItemDetails(it) != "kitchen" {
		t.Fatalf("expected notes fallback")
	}
	it.Description = "white"
	if ItemDetails(it) != "white" {
		t.Fatalf("expected description first")
	}
}
