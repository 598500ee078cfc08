// Package intake implements the interactive slot-filling loop that
// completes a TripIntent draft one missing field at a time.
package intake

import (
	"context"
	"time"

	"tripflow/models"
	"tripflow/services/intelligence"
	"tripflow/utils"

	"go.uber.org/zap"
)

// Defaults substituted when a reply signals flexibility instead of an
// actual answer.
const (
	defaultSource      = "New York"
	defaultDestination = "Paris"
	defaultPartySize   = 2
	defaultStartOffset = 28 * 24 * time.Hour
	defaultTripNights  = 7
)

// SlotFillService drives the slot-filling sub-machine.
type SlotFillService interface {
	// Check recomputes missing fields. When none remain it marks the
	// session valid; otherwise it picks the next field by priority and
	// stores the question to ask.
	Check(ctx context.Context, session *models.Session) error
	// ConsumeReply applies a reply to the currently pending field. An
	// unparseable reply re-asks the same field with a clarification; a
	// reply with no pending field is a no-op. Never returns an error for
	// bad input.
	ConsumeReply(ctx context.Context, session *models.Session, reply string)
}

// DefaultSlotFillService implements SlotFillService.
type DefaultSlotFillService struct {
	Lang intelligence.LanguageService
	Now  func() time.Time
}

func NewDefaultSlotFillService(lang intelligence.LanguageService) *DefaultSlotFillService {
	return &DefaultSlotFillService{Lang: lang, Now: time.Now}
}

func (s *DefaultSlotFillService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSlotFillService) Check(ctx context.Context, session *models.Session) error {
	missing := session.Intent.MissingFields(s.now())

	// A request missing nothing but the origin proceeds with the default
	// departure city instead of pausing to ask.
	if len(missing) == 1 && missing[0] == models.FieldSource {
		session.Intent.Source = defaultSource
		missing = nil
	}
	session.MissingFields = missing

	if len(missing) == 0 {
		session.Valid = true
		session.PendingField = ""
		session.Question = ""
		session.Awaiting = models.AwaitingNone
		return nil
	}

	session.Valid = false
	field := missing[0]

	// Keep the stored question when re-asking the same field after a
	// failed parse; ConsumeReply already set the clarification.
	if field != session.PendingField || session.Question == "" {
		session.Question = s.questionFor(ctx, field, session)
	}
	session.PendingField = field
	session.Awaiting = models.AwaitingSlotFill
	session.AppendMessage("assistant", session.Question)
	return nil
}

func (s *DefaultSlotFillService) questionFor(ctx context.Context, field string, session *models.Session) string {
	question, err := s.Lang.GenerateQuestion(ctx, field, session.Intent, session.Transcript)
	if err != nil || question == "" {
		if err != nil {
			utils.GetLogger().Warn("Question generation failed, using fallback",
				zap.String("sessionId", session.ID), zap.String("field", field), zap.Error(err))
		}
		return intelligence.FallbackQuestion(field)
	}
	return question
}

func (s *DefaultSlotFillService) ConsumeReply(ctx context.Context, session *models.Session, reply string) {
	field := session.PendingField
	if field == "" {
		// Nothing pending; the reply is not attributable to any field.
		return
	}
	session.AppendMessage("user", reply)

	if s.isFlexible(ctx, reply) {
		s.applyDefault(session, field)
		session.Question = ""
		return
	}

	if !s.applyReply(session, field, reply) {
		// Re-ask the same field with a clarification instead of advancing.
		session.Question = "Sorry, I didn't quite catch that. " + intelligence.FallbackQuestion(field)
		utils.GetLogger().Debug("Unparseable slot-fill reply",
			zap.String("sessionId", session.ID), zap.String("field", field), zap.String("reply", reply))
		return
	}
	session.Question = ""
}

func (s *DefaultSlotFillService) isFlexible(ctx context.Context, reply string) bool {
	if intelligence.HeuristicFlexible(reply) {
		return true
	}
	flexible, err := s.Lang.ClassifyFlexible(ctx, reply)
	if err != nil {
		// Classifier failure degrades to the trigger-phrase check above.
		return false
	}
	return flexible
}

func (s *DefaultSlotFillService) applyDefault(session *models.Session, field string) {
	now := s.now()
	switch field {
	case models.FieldSource:
		session.Intent.Source = defaultSource
	case models.FieldDestination:
		session.Intent.Destination = defaultDestination
	case models.FieldStartDate:
		start := now.Add(defaultStartOffset)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		session.Intent.StartDate = &start
	case models.FieldEndDate:
		base := now
		if session.Intent.StartDate != nil {
			base = *session.Intent.StartDate
		}
		end := base.AddDate(0, 0, defaultTripNights)
		session.Intent.EndDate = &end
	case models.FieldPartySize:
		session.Intent.PartySize = defaultPartySize
	}
}

// applyReply runs the field-specific extractor; false means the reply
// could not be parsed for that field.
func (s *DefaultSlotFillService) applyReply(session *models.Session, field, reply string) bool {
	now := s.now()
	switch field {
	case models.FieldSource:
		loc := utils.NormalizeLocation(reply)
		if loc == "" {
			return false
		}
		session.Intent.Source = loc
	case models.FieldDestination:
		loc := utils.NormalizeLocation(reply)
		if loc == "" {
			return false
		}
		session.Intent.Destination = loc
	case models.FieldStartDate:
		t, ok := utils.ParseNaturalDate(reply, now)
		if !ok || t.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())) {
			return false
		}
		session.Intent.StartDate = &t
	case models.FieldEndDate:
		base := now
		if session.Intent.StartDate != nil {
			base = *session.Intent.StartDate
		}
		t, ok := utils.ParseNaturalDate(reply, base)
		if !ok {
			return false
		}
		if session.Intent.StartDate != nil && !session.Intent.StartDate.Before(t) {
			return false
		}
		session.Intent.EndDate = &t
	case models.FieldPartySize:
		n, ok := utils.ParseCount(reply)
		if !ok {
			return false
		}
		session.Intent.PartySize = n
	default:
		return false
	}
	return true
}
