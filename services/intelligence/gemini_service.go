package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tripflow/models"
)

// GeminiLanguageService implements LanguageService on top of the Gemini
// client. Every call is prompt-in, JSON-or-text-out; callers are expected
// to degrade to the deterministic fallbacks in this package when a call
// errors.
type GeminiLanguageService struct {
	client *GeminiClient
}

func NewGeminiLanguageService(apiKey string) (*GeminiLanguageService, error) {
	client, err := NewGeminiClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &GeminiLanguageService{client: client}, nil
}

type extractedIntent struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	PartySize   int      `json:"partySize"`
	Preferences []string `json:"preferences"`
}

func (s *GeminiLanguageService) ExtractIntent(ctx context.Context, text string) (*models.TripIntent, error) {
	prompt := fmt.Sprintf(`Extract travel parameters from the request below.
Respond with ONLY a JSON object with keys: source, destination, startDate,
endDate (both ISO 8601 dates or ""), partySize (integer, 0 if unknown),
preferences (array of short tags such as "budget", "luxury", "food",
"museums"). Leave unknown string fields empty.

Request: %q`, text)

	raw, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var out extractedIntent
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	intent := &models.TripIntent{
		Source:      strings.TrimSpace(out.Source),
		Destination: strings.TrimSpace(out.Destination),
		PartySize:   out.PartySize,
		Preferences: out.Preferences,
	}
	if t, err := time.Parse("2006-01-02", out.StartDate); err == nil {
		intent.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", out.EndDate); err == nil {
		intent.EndDate = &t
	}
	return intent, nil
}

func (s *GeminiLanguageService) GenerateQuestion(ctx context.Context, field string, intent models.TripIntent, history []models.Message) (string, error) {
	var sb strings.Builder
	for _, m := range history {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Text)
	}

	prompt := fmt.Sprintf(`You are a travel planning assistant gathering
trip details. Known so far: source=%q destination=%q party size=%d.
Conversation so far:
%s
Ask the user one short, friendly question for the missing field %q. Do not
re-ask anything already answered. Respond with only the question text.`,
		intent.Source, intent.Destination, intent.PartySize, sb.String(), field)

	question, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(question), nil
}

func (s *GeminiLanguageService) ClassifyFlexible(ctx context.Context, text string) (bool, error) {
	prompt := fmt.Sprintf(`Does the reply below express indifference or
flexibility (e.g. "whatever works", "you pick") rather than an actual
answer? Respond with only "yes" or "no".

Reply: %q`, text)

	raw, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "yes"), nil
}

func (s *GeminiLanguageService) ComposeItinerary(ctx context.Context, itinerary *models.Itinerary, intent models.TripIntent) (string, error) {
	data, err := json.Marshal(itinerary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	prompt := fmt.Sprintf(`Write a friendly day-by-day travel itinerary for
a %d-person trip to %s based on this schedule. Keep every scheduled item,
its day and its time. Plain text, one section per day.

Schedule JSON: %s`, intent.PartySize, intent.Destination, string(data))

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
