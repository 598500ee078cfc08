package planner

import (
	"context"
	"fmt"
	"time"

	"tripflow/models"
	"tripflow/services/gathering"
	"tripflow/services/intelligence"
	"tripflow/utils"

	"go.uber.org/zap"
)

// Progress checkpoints along the pipeline.
const (
	progressReceived   = 0.05
	progressExtracted  = 0.15
	progressValidated  = 0.25
	progressSelected   = 0.35
	progressGathered   = 0.80
	progressAssembling = 0.90
)

// Run executes one planner job against its session: applies the
// triggering input, then drives the state machine until the pipeline
// completes or suspends for human input. Every transition persists the
// session, so a later job resumes exactly where this one left off.
func (s *DefaultPlannerService) Run(ctx context.Context, payload models.PlanTaskPayload) error {
	logger := utils.GetLogger()

	job, err := s.Store.GetJob(ctx, payload.JobID)
	if err != nil {
		return fmt.Errorf("failed to load job %s: %w", payload.JobID, err)
	}
	if job.Terminal() {
		return nil
	}

	session, err := s.Store.GetSession(ctx, payload.SessionID)
	if err != nil {
		s.failJob(ctx, job, "session could not be loaded")
		return fmt.Errorf("failed to load session %s: %w", payload.SessionID, err)
	}
	defer func() {
		if err := s.Store.ReleaseJob(context.Background(), session.ID, job.ID); err != nil {
			logger.Warn("Failed to release job lock",
				zap.String("sessionId", session.ID), zap.String("jobId", job.ID), zap.Error(err))
		}
	}()

	job.Status = models.JobProcessing
	job.Advance(progressReceived, "processing")
	s.saveJob(ctx, job)

	if err := s.applyInput(ctx, session, payload.Input); err != nil {
		// Only state conflicts surface here; they reject without mutating.
		s.failJob(ctx, job, err.Error())
		return err
	}

	return s.drive(ctx, session, job)
}

// applyInput folds the triggering input into the session before the
// machine advances.
func (s *DefaultPlannerService) applyInput(ctx context.Context, session *models.Session, input models.PlanInput) error {
	switch input.Kind {
	case models.InputUtterance:
		// Utterance already stored at the boundary.
		return nil
	case models.InputReply:
		if session.Awaiting != models.AwaitingSlotFill {
			return NewStateConflictError("session is not awaiting a slot-fill reply")
		}
		s.SlotFill.ConsumeReply(ctx, session, input.Text)
		session.Awaiting = models.AwaitingNone
		session.State = models.StateSlotFill
		return nil
	case models.InputSelection:
		if session.Awaiting != models.AwaitingFlightSelection {
			return NewStateConflictError("session is not awaiting a flight selection")
		}
		if input.Selection < 0 || input.Selection >= len(session.Resources.Flights) {
			return NewStateConflictError("flight selection outside option bounds")
		}
		idx := input.Selection
		session.SelectedFlight = &idx
		session.Awaiting = models.AwaitingNone
		session.State = models.StateGathering
		return nil
	case models.InputFeedback:
		if !session.HasItinerary() {
			return NewStateConflictError("feedback requires a completed itinerary")
		}
		session.AppendMessage("user", input.Detail)
		session.StagesPending = applyFeedback(session, input.Category, input.Detail)
		session.State = models.StateReplanning
		return nil
	default:
		return NewStateConflictError(fmt.Sprintf("unknown input kind %q", input.Kind))
	}
}

// drive advances the state machine until completion or suspension.
func (s *DefaultPlannerService) drive(ctx context.Context, session *models.Session, job *models.Job) error {
	logger := utils.GetLogger()

	for {
		switch session.State {
		case models.StateReceived:
			session.State = models.StateExtracting

		case models.StateExtracting:
			s.extract(ctx, session)
			job.Advance(progressExtracted, "request analyzed")
			session.State = models.StateSlotFill

		case models.StateSlotFill:
			if err := s.SlotFill.Check(ctx, session); err != nil {
				return s.storeFailure(ctx, session, job, err)
			}
			if !session.Valid {
				return s.suspend(ctx, session, job, models.AwaitingSlotFill, "awaiting slot-fill reply")
			}
			job.Advance(progressValidated, "trip details complete")
			session.State = models.StateSelecting

		case models.StateSelecting:
			session.Stages = SelectStages(session.Intent, session.Utterance)
			session.StagesPending = append([]string(nil), session.Stages...)
			job.Advance(progressSelected, "stages selected")
			session.State = models.StateGathering

		case models.StateReplanning:
			// Feedback application already queued the rerun subset.
			session.State = models.StateGathering

		case models.StateGathering:
			suspended, err := s.gather(ctx, session, job)
			if err != nil {
				return s.storeFailure(ctx, session, job, err)
			}
			if suspended {
				return s.suspend(ctx, session, job, models.AwaitingFlightSelection, "awaiting flight selection")
			}
			job.Advance(progressGathered, "resources gathered")
			session.State = models.StateAssembling

		case models.StateAssembling:
			job.Advance(progressAssembling, "assembling itinerary")
			s.saveJob(ctx, job)
			if err := s.Assembler.Assemble(ctx, session); err != nil {
				return s.storeFailure(ctx, session, job, err)
			}
			session.State = models.StateComplete

		case models.StateComplete:
			session.Awaiting = models.AwaitingNone
			session.ActiveJobID = ""
			if err := s.persist(ctx, session, job); err != nil {
				return err
			}
			job.Status = models.JobComplete
			job.ResultRef = session.ID
			job.Advance(1.0, "itinerary ready")
			s.saveJob(ctx, job)
			s.Notifier.Publish(models.Event{
				Type: models.EventItineraryReady, SessionID: session.ID, JobID: job.ID,
			})
			logger.Info("Planning job complete",
				zap.String("sessionId", session.ID), zap.String("jobId", job.ID))
			return nil

		default:
			err := fmt.Errorf("session %s in unknown state %q", session.ID, session.State)
			s.failJob(ctx, job, "internal state error")
			return err
		}

		if err := s.persist(ctx, session, job); err != nil {
			return err
		}
	}
}

// extract turns the utterance into an intent draft, degrading to the
// deterministic parser when the language capability fails.
func (s *DefaultPlannerService) extract(ctx context.Context, session *models.Session) {
	draft, err := s.Lang.ExtractIntent(ctx, session.Utterance)
	if err != nil || draft == nil {
		if err != nil {
			utils.GetLogger().Warn("Intent extraction failed, using heuristic parser",
				zap.String("sessionId", session.ID), zap.Error(err))
			session.Error = "request analysis was degraded; some details may need confirming"
		}
		draft = intelligence.HeuristicExtract(session.Utterance, time.Now())
	}
	mergeIntent(&session.Intent, draft)
}

// gather runs the pending stages. Budget is withheld until every stage it
// aggregates has finished; a fresh transport-air result with no selection
// suspends the pipeline.
func (s *DefaultPlannerService) gather(ctx context.Context, session *models.Session, job *models.Job) (bool, error) {
	pending := session.StagesPending
	if len(pending) == 0 {
		return false, nil
	}

	hadAir := false
	var first []string
	var last []string
	for _, stage := range pending {
		switch stage {
		case gathering.StageBudget:
			last = append(last, stage)
		case gathering.StageTransportAir:
			hadAir = true
			first = append(first, stage)
		default:
			first = append(first, stage)
		}
	}

	if len(first) > 0 {
		if err := s.Gatherer.RunStages(ctx, session, first); err != nil {
			return false, err
		}
		job.Advance(progressSelected+0.25, "gathering in progress")
		s.saveJob(ctx, job)
	}

	session.StagesPending = last

	if hadAir && session.SelectedFlight == nil && len(session.Resources.Flights) > 0 {
		return true, nil
	}

	if len(last) > 0 {
		if err := s.Gatherer.RunStages(ctx, session, last); err != nil {
			return false, err
		}
		session.StagesPending = nil
	}
	return false, nil
}

// suspend persists the awaiting marker and finishes the job; a later
// call with the matching input resumes the machine.
func (s *DefaultPlannerService) suspend(ctx context.Context, session *models.Session, job *models.Job, awaiting, message string) error {
	session.Awaiting = awaiting
	session.ActiveJobID = ""
	if err := s.persist(ctx, session, job); err != nil {
		return err
	}

	job.Status = models.JobComplete
	job.ResultRef = session.ID
	job.Advance(1.0, message)
	s.saveJob(ctx, job)
	s.Notifier.Publish(models.Event{
		Type:      models.EventAwaitingInput,
		SessionID: session.ID,
		JobID:     job.ID,
		Data:      map[string]any{"awaiting": session.Awaiting, "question": session.Question},
	})
	return nil
}

// persist writes the session after a transition; a store failure is the
// one fatal error class and fails the job.
func (s *DefaultPlannerService) persist(ctx context.Context, session *models.Session, job *models.Job) error {
	session.UpdatedAt = time.Now()
	if err := s.Store.PutSession(ctx, session); err != nil {
		s.failJob(ctx, job, "failed to save session state")
		return fmt.Errorf("failed to persist session %s: %w", session.ID, err)
	}
	return nil
}

func (s *DefaultPlannerService) storeFailure(ctx context.Context, session *models.Session, job *models.Job, err error) error {
	s.failJob(ctx, job, "planning could not continue; please retry")
	return fmt.Errorf("unrecovered failure for session %s: %w", session.ID, err)
}

func (s *DefaultPlannerService) saveJob(ctx context.Context, job *models.Job) {
	if err := s.Store.PutJob(ctx, job); err != nil {
		utils.GetLogger().Error("Failed to persist job",
			zap.String("jobId", job.ID), zap.Error(err))
		return
	}
	s.Notifier.Publish(models.Event{
		Type:      models.EventJobUpdate,
		SessionID: job.SessionID,
		JobID:     job.ID,
		Data: map[string]any{
			"status": job.Status, "progress": job.Progress, "message": job.Message,
		},
	})
}

func (s *DefaultPlannerService) failJob(ctx context.Context, job *models.Job, message string) {
	job.Status = models.JobFailed
	job.Error = message
	job.Advance(1.0, message)
	s.saveJob(ctx, job)
}

// mergeIntent fills empty fields of dst from the extracted draft.
func mergeIntent(dst *models.TripIntent, draft *models.TripIntent) {
	if dst.Source == "" {
		dst.Source = draft.Source
	}
	if dst.Destination == "" {
		dst.Destination = draft.Destination
	}
	if dst.StartDate == nil {
		dst.StartDate = draft.StartDate
	}
	if dst.EndDate == nil {
		dst.EndDate = draft.EndDate
	}
	if dst.PartySize == 0 {
		dst.PartySize = draft.PartySize
	}
	for _, p := range draft.Preferences {
		found := false
		for _, existing := range dst.Preferences {
			if existing == p {
				found = true
				break
			}
		}
		if !found {
			dst.Preferences = append(dst.Preferences, p)
		}
	}
}
