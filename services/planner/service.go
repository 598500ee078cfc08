// Package planner hosts the orchestrator: the resumable state machine
// that sequences extraction, slot-filling, gathering, selection and
// assembly for a session, one asynchronous job at a time.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripflow/models"
	"tripflow/services/gathering"
	"tripflow/services/intake"
	"tripflow/services/intelligence"
	"tripflow/services/itinerary"
	"tripflow/services/notification"
	"tripflow/store"
	"tripflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskEnqueuer hands a planner run to the async job queue.
type TaskEnqueuer interface {
	EnqueuePlan(ctx context.Context, payload models.PlanTaskPayload) error
}

// PlannerService is the boundary of the planning engine. Every mutating
// call starts one asynchronous job against the session; job status is
// the authoritative progress channel.
type PlannerService interface {
	Submit(ctx context.Context, sessionID, text string) (string, string, error)
	SubmitReply(ctx context.Context, sessionID, text string) (string, error)
	SelectFlight(ctx context.Context, sessionID string, index int) (string, error)
	SubmitFeedback(ctx context.Context, sessionID, category, detail string) (string, error)

	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	GetSnapshot(ctx context.Context, sessionID string) (*models.SessionSnapshot, error)

	// Run executes one queued planner job. Called by the worker.
	Run(ctx context.Context, payload models.PlanTaskPayload) error
}

// DefaultPlannerService implements PlannerService.
type DefaultPlannerService struct {
	Store     store.SessionStore
	Lang      intelligence.LanguageService
	SlotFill  intake.SlotFillService
	Gatherer  gathering.GatheringService
	Assembler itinerary.AssemblerService
	Notifier  notification.Publisher
	Enqueuer  TaskEnqueuer
}

func NewDefaultPlannerService(
	st store.SessionStore,
	lang intelligence.LanguageService,
	slotFill intake.SlotFillService,
	gatherer gathering.GatheringService,
	assembler itinerary.AssemblerService,
	notifier notification.Publisher,
	enqueuer TaskEnqueuer,
) *DefaultPlannerService {
	if notifier == nil {
		notifier = notification.NopPublisher{}
	}
	return &DefaultPlannerService{
		Store:     st,
		Lang:      lang,
		SlotFill:  slotFill,
		Gatherer:  gatherer,
		Assembler: assembler,
		Notifier:  notifier,
		Enqueuer:  enqueuer,
	}
}

// Submit starts a new planning session, or re-plans an existing one with
// a fresh utterance. A session suspended on a reply or a selection
// rejects a plain utterance as a state conflict.
func (s *DefaultPlannerService) Submit(ctx context.Context, sessionID, text string) (string, string, error) {
	logger := utils.GetLogger()

	var session *models.Session
	if sessionID == "" {
		session = &models.Session{
			ID:        uuid.New().String(),
			State:     models.StateReceived,
			Awaiting:  models.AwaitingNone,
			CreatedAt: time.Now(),
		}
	} else {
		loaded, err := s.Store.GetSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", "", NewValidationError(fmt.Sprintf("session %s not found", sessionID))
			}
			return "", "", fmt.Errorf("failed to load session %s: %w", sessionID, err)
		}
		session = loaded
		if session.Awaiting == models.AwaitingSlotFill {
			return "", "", NewStateConflictError("session is awaiting a slot-fill reply; use the reply endpoint")
		}
		if session.Awaiting == models.AwaitingFlightSelection {
			return "", "", NewStateConflictError("session is awaiting a flight selection; use the select endpoint")
		}
		resetForNewRequest(session)
	}

	session.Utterance = text
	session.AppendMessage("user", text)

	jobID, err := s.startJob(ctx, session, models.PlanInput{Kind: models.InputUtterance, Text: text})
	if err != nil {
		return "", "", err
	}
	logger.Info("Planning job submitted",
		zap.String("sessionId", session.ID), zap.String("jobId", jobID))
	return session.ID, jobID, nil
}

// SubmitReply resumes a session suspended on slot-filling.
func (s *DefaultPlannerService) SubmitReply(ctx context.Context, sessionID, text string) (string, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Awaiting != models.AwaitingSlotFill {
		return "", NewStateConflictError("session is not awaiting a slot-fill reply")
	}
	return s.startJob(ctx, session, models.PlanInput{Kind: models.InputReply, Text: text})
}

// SelectFlight resumes a session suspended on flight selection. An index
// outside the current option list fails validation with no mutation.
func (s *DefaultPlannerService) SelectFlight(ctx context.Context, sessionID string, index int) (string, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Awaiting != models.AwaitingFlightSelection {
		return "", NewStateConflictError("session is not awaiting a flight selection")
	}
	if index < 0 || index >= len(session.Resources.Flights) {
		return "", NewValidationError(fmt.Sprintf(
			"flight index %d outside options [0, %d)", index, len(session.Resources.Flights)))
	}
	return s.startJob(ctx, session, models.PlanInput{Kind: models.InputSelection, Selection: index})
}

// SubmitFeedback starts a re-planning round. Valid only once a completed
// itinerary exists.
func (s *DefaultPlannerService) SubmitFeedback(ctx context.Context, sessionID, category, detail string) (string, error) {
	if !ValidFeedbackCategory(category) {
		return "", NewValidationError(fmt.Sprintf("unknown feedback category %q", category))
	}
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !session.HasItinerary() {
		return "", NewStateConflictError("feedback requires a completed itinerary")
	}
	if session.Awaiting != models.AwaitingNone {
		return "", NewStateConflictError("session is awaiting other input")
	}
	return s.startJob(ctx, session, models.PlanInput{
		Kind: models.InputFeedback, Category: category, Detail: detail,
	})
}

func (s *DefaultPlannerService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.Store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewValidationError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}
	return job, nil
}

func (s *DefaultPlannerService) GetSnapshot(ctx context.Context, sessionID string) (*models.SessionSnapshot, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := session.Snapshot()
	return &snap, nil
}

func (s *DefaultPlannerService) loadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewValidationError(fmt.Sprintf("session %s not found", sessionID))
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return session, nil
}

// startJob creates the job record, claims the per-session lock and hands
// the run to the queue. A session with a live job rejects the second
// trigger.
func (s *DefaultPlannerService) startJob(ctx context.Context, session *models.Session, input models.PlanInput) (string, error) {
	job := &models.Job{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		Status:    models.JobPending,
		Message:   "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.Store.AcquireJob(ctx, session.ID, job.ID); err != nil {
		if errors.Is(err, store.ErrJobConflict) {
			return "", NewStateConflictError("another job is already running for this session")
		}
		return "", fmt.Errorf("failed to acquire job lock: %w", err)
	}

	session.ActiveJobID = job.ID
	session.UpdatedAt = time.Now()
	if err := s.Store.PutSession(ctx, session); err != nil {
		_ = s.Store.ReleaseJob(ctx, session.ID, job.ID)
		return "", fmt.Errorf("failed to persist session %s: %w", session.ID, err)
	}
	if err := s.Store.PutJob(ctx, job); err != nil {
		_ = s.Store.ReleaseJob(ctx, session.ID, job.ID)
		return "", fmt.Errorf("failed to persist job %s: %w", job.ID, err)
	}

	payload := models.PlanTaskPayload{SessionID: session.ID, JobID: job.ID, Input: input}
	if err := s.Enqueuer.EnqueuePlan(ctx, payload); err != nil {
		_ = s.Store.ReleaseJob(ctx, session.ID, job.ID)
		return "", fmt.Errorf("failed to enqueue planning job: %w", err)
	}
	return job.ID, nil
}

// resetForNewRequest clears per-plan state so a fresh utterance starts a
// new round on the same session id. The transcript is kept.
func resetForNewRequest(session *models.Session) {
	session.State = models.StateReceived
	session.Awaiting = models.AwaitingNone
	session.Intent = models.TripIntent{}
	session.Valid = false
	session.MissingFields = nil
	session.PendingField = ""
	session.Question = ""
	session.Stages = nil
	session.StagesPending = nil
	session.Resources = models.GatheredResources{}
	session.SelectedFlight = nil
	session.Itinerary = nil
	session.ItineraryText = ""
	session.Error = ""
	session.VisitedPlaces = nil
	session.VisitedRestaurants = nil
	session.CurrentDay = 0
	session.TotalDays = 0
}
