// Package assist talks to a generative model for manual lookup, room item
// suggestions and value estimates. Every call is a plain request/response;
// callers merge results into the repository themselves.
package assist

import (
	"context"
	"fmt"
	"strings"

	"homeinventory/pkg/domain"
)

const (
	// UnableToEstimate is returned when no credential is configured.
	UnableToEstimate = "Unable to estimate"
	// UnknownEstimate is returned when the model answers with no text.
	UnknownEstimate = "Unknown"
	// EstimateFailed is the neutral answer callers show after an *Error.
	EstimateFailed = "Error"
)

// Assistant is the AI collaborator used by the presentation layer.
type Assistant interface {
	// FindManual returns candidate manual pages, best match first.
	FindManual(ctx context.Context, description, details string) ([]domain.ManualLink, error)
	// SuggestRoomItems returns item names typical for the room.
	SuggestRoomItems(ctx context.Context, roomName, description string) ([]string, error)
	// AnalyzeItemValue returns a short free-text replacement value range.
	AnalyzeItemValue(ctx context.Context, description, notes, currency string) (string, error)
}

// Error reports a failed model call.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

// Error formats the operation, status and cause.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("assist %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("assist %s: %v", e.Op, e.Err)
}

// Unwrap returns the transport or decode failure.
func (e *Error) Unwrap() error { return e.Err }

// Disabled answers every call neutrally without contacting anything.
type Disabled struct{}

var _ Assistant = Disabled{}

// FindManual returns no links.
func (Disabled) FindManual(context.Context, string, string) ([]domain.ManualLink, error) {
	return []domain.ManualLink{}, nil
}

// SuggestRoomItems returns no suggestions.
func (Disabled) SuggestRoomItems(context.Context, string, string) ([]string, error) {
	return []string{}, nil
}

// AnalyzeItemValue returns UnableToEstimate.
func (Disabled) AnalyzeItemValue(context.Context, string, string, string) (string, error) {
	return UnableToEstimate, nil
}

// FullDescription is the "{brand }{name} {model}" phrase sent to the model.
func FullDescription(it domain.Item) string {
	var b strings.Builder
	if it.Brand != "" {
		b.WriteString(it.Brand)
		b.WriteByte(' ')
	}
	b.WriteString(it.Name)
	b.WriteByte(' ')
	b.WriteString(it.Model)
	return b.String()
}

// ItemDetails prefers the description and falls back to the notes.
func ItemDetails(it domain.Item) string {
	if it.Description != "" {
		return it.Description
	}
	return it.Notes
}

func manualPrompt(description, details string) string {
	return fmt.Sprintf("Find the official PDF user manual or support page for: %s %s", description, details)
}

func suggestionPrompt(roomName, description string) string {
	return fmt.Sprintf("List 5 common household items one might find in a %q described as %q. Return only a JSON array of strings.", roomName, description)
}

func valuationPrompt(description, notes, currency string) string {
	return fmt.Sprintf("Estimate the average insurance replacement value range (in %s) for a used: %s. Description: %s. Keep it very brief (e.g., \"50 - 100 %s\").",
		currency, description, notes, currency)
}
