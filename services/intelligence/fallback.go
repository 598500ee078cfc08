package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tripflow/models"
	"tripflow/utils"
)

// Deterministic fallbacks for every language capability. They run when
// the model call errors or no API key is configured, so the pipeline is
// always completable.

var (
	toRe    = regexp.MustCompile(`(?i)\b(?:to|in|visit(?:ing)?)\s+([A-Z][A-Za-z .'-]+?)(?:\s+(?:for|from|on|with|between)\b|[,.!?]|$)`)
	fromRe  = regexp.MustCompile(`(?i)\bfrom\s+([A-Z][A-Za-z .'-]+?)(?:\s+(?:to|for|on|with|between)\b|[,.!?]|$)`)
	partyRe = regexp.MustCompile(`(?i)\bfor\s+(\d+|a couple(?: of)?|two|three|four|five|six)\s*(?:people|persons|adults|travellers|travelers|of us)?\b`)
	rangeRe = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s*(?:to|-|until|through)\s*(\d{1,2}/\d{1,2}/\d{4})`)
)

var preferenceCues = map[string]string{
	"budget": "budget", "cheap": "budget", "affordable": "budget",
	"luxury": "luxury", "upscale": "luxury", "fancy": "luxury",
	"food": "food", "restaurant": "food", "dining": "food",
	"museum": "museums", "history": "museums", "art": "museums",
	"nature": "nature", "hiking": "nature", "beach": "beach",
	"family": "family", "kids": "family",
}

// HeuristicExtract is the deterministic extraction parser.
func HeuristicExtract(text string, now time.Time) *models.TripIntent {
	intent := &models.TripIntent{}

	if m := toRe.FindStringSubmatch(text); m != nil {
		intent.Destination = utils.NormalizeLocation(m[1])
	}
	if m := fromRe.FindStringSubmatch(text); m != nil {
		intent.Source = utils.NormalizeLocation(m[1])
	}
	if m := partyRe.FindStringSubmatch(text); m != nil {
		if n, ok := utils.ParseCount(m[1]); ok {
			intent.PartySize = n
		}
	}
	if m := rangeRe.FindStringSubmatch(text); m != nil {
		if start, ok := utils.ParseNaturalDate(m[1], now); ok {
			intent.StartDate = &start
		}
		if end, ok := utils.ParseNaturalDate(m[2], now); ok {
			intent.EndDate = &end
		}
	}

	lower := strings.ToLower(text)
	seen := map[string]bool{}
	for cue, tag := range preferenceCues {
		if strings.Contains(lower, cue) && !seen[tag] {
			intent.Preferences = append(intent.Preferences, tag)
			seen[tag] = true
		}
	}
	return intent
}

// FallbackQuestion is the canned question per missing field.
func FallbackQuestion(field string) string {
	switch field {
	case models.FieldSource:
		return "Where will you be traveling from?"
	case models.FieldDestination:
		return "Where would you like to go?"
	case models.FieldStartDate:
		return "When would you like your trip to start?"
	case models.FieldEndDate:
		return "When will your trip end?"
	case models.FieldPartySize:
		return "How many people are traveling?"
	default:
		return fmt.Sprintf("Could you tell me your %s?", field)
	}
}

var flexiblePhrases = []string{
	"whatever", "anything", "any time", "anytime", "you decide", "you pick",
	"flexible", "don't care", "dont care", "doesn't matter", "doesnt matter",
	"up to you", "surprise me", "no preference",
}

// HeuristicFlexible is the fixed-trigger-phrase indifference check. It
// runs before any model classifier.
func HeuristicFlexible(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range flexiblePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// RenderItineraryText is the degraded text payload used when narrative
// composition fails.
func RenderItineraryText(itinerary *models.Itinerary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Trip to %s, %s to %s (%d days, est. $%.0f)\n",
		itinerary.Summary.Destination, itinerary.Summary.StartDate,
		itinerary.Summary.EndDate, itinerary.Summary.Days, itinerary.Summary.TotalCost)
	for _, day := range itinerary.Days {
		fmt.Fprintf(&sb, "\nDay %d (%s)\n", day.Day, day.Date)
		for _, act := range day.Activities {
			fmt.Fprintf(&sb, "  %s  %s", act.Time, act.Title)
			if act.Detail != "" {
				fmt.Fprintf(&sb, " - %s", act.Detail)
			}
			sb.WriteString("\n")
		}
	}
	if len(itinerary.Highlights) > 0 {
		sb.WriteString("\nHighlights: " + strings.Join(itinerary.Highlights, "; ") + "\n")
	}
	return sb.String()
}

// FallbackLanguageService implements LanguageService with the
// deterministic heuristics only. Used when no model is configured, and in
// tests.
type FallbackLanguageService struct{}

func NewFallbackLanguageService() *FallbackLanguageService {
	return &FallbackLanguageService{}
}

func (s *FallbackLanguageService) ExtractIntent(ctx context.Context, text string) (*models.TripIntent, error) {
	return HeuristicExtract(text, time.Now()), nil
}

func (s *FallbackLanguageService) GenerateQuestion(ctx context.Context, field string, intent models.TripIntent, history []models.Message) (string, error) {
	return FallbackQuestion(field), nil
}

func (s *FallbackLanguageService) ClassifyFlexible(ctx context.Context, text string) (bool, error) {
	return HeuristicFlexible(text), nil
}

func (s *FallbackLanguageService) ComposeItinerary(ctx context.Context, itinerary *models.Itinerary, intent models.TripIntent) (string, error) {
	return RenderItineraryText(itinerary), nil
}
