package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"venue_ops_backend/internal/cache"
	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/queue"
	"venue_ops_backend/internal/repositories"
)

// Cache key for the resolved operative event. Invalidated on every applied
// transition.
const operativeEventCacheKey = "venue:operative_event"

// --- Event DTOs ---
type CreateEventRequest struct {
	Name        string     `json:"name" binding:"required"`
	EventDate   time.Time  `json:"event_date" binding:"required"`
	MusicGenre  *string    `json:"music_genre,omitempty"`
	DJArtist    *string    `json:"dj_artist,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	MaxCapacity int        `json:"max_capacity" binding:"required"`
	Category    string     `json:"category,omitempty"`
	AutoOpenAt  *time.Time `json:"auto_open_at,omitempty"`
	AutoCloseAt *time.Time `json:"auto_close_at,omitempty"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	MusicGenre  *string    `json:"music_genre,omitempty"`
	DJArtist    *string    `json:"dj_artist,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	MaxCapacity *int       `json:"max_capacity,omitempty"`
	Category    *string    `json:"category,omitempty"`
	AutoOpenAt  *time.Time `json:"auto_open_at,omitempty"`
	AutoCloseAt *time.Time `json:"auto_close_at,omitempty"`
}

// EventService manages the event lifecycle. The one structural invariant it
// defends is exclusivity: at most one event is live-and-operative at a time,
// enforced by writing the state flag and the operative pointer in the same
// transaction.
type EventService interface {
	CreateEvent(req CreateEventRequest, actorStaffID *int64) (*models.Event, error)
	GetEvent(id int64) (*models.Event, error)
	GetEvents(filters models.EventFilters) ([]models.Event, int, error)
	UpdateEvent(id int64, req UpdateEventRequest) (*models.Event, error)
	Transition(eventID int64, target string, actorStaffID *int64, automatic bool) (*models.Event, error)
	OperativeEvent() (*models.Event, error)
	ProcessAutoTransitions() (opened, closed int)
}

type eventService struct {
	eventRepo     repositories.EventRepository
	auditRepo     repositories.AuditRepository
	noShowService NoShowService
	txRunner      repositories.TxRunner
	publisher     *queue.Publisher
	cache         *cache.Client
}

// NewEventService creates a new instance of EventService.
func NewEventService(
	er repositories.EventRepository,
	ar repositories.AuditRepository,
	ns NoShowService,
	tx repositories.TxRunner,
	pub *queue.Publisher,
	cc *cache.Client,
) EventService {
	return &eventService{
		eventRepo:     er,
		auditRepo:     ar,
		noShowService: ns,
		txRunner:      tx,
		publisher:     pub,
		cache:         cc,
	}
}

func (s *eventService) CreateEvent(req CreateEventRequest, actorStaffID *int64) (*models.Event, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrValidation)
	}
	if req.MaxCapacity <= 0 {
		return nil, fmt.Errorf("%w: max capacity must be positive", ErrValidation)
	}
	if req.AutoOpenAt != nil && req.AutoCloseAt != nil && !req.AutoOpenAt.Before(*req.AutoCloseAt) {
		return nil, fmt.Errorf("%w: auto open must precede auto close", ErrValidation)
	}

	event := &models.Event{
		Name:        req.Name,
		EventDate:   req.EventDate,
		MusicGenre:  req.MusicGenre,
		DJArtist:    req.DJArtist,
		CoverURL:    req.CoverURL,
		MaxCapacity: req.MaxCapacity,
		Category:    req.Category,
		PublicState: string(models.EventStateScheduled),
		AutoOpenAt:  req.AutoOpenAt,
		AutoCloseAt: req.AutoCloseAt,
	}
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		created, err := s.eventRepo.CreateEvent(ex, event)
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		event = created
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "events",
			RecordID:  event.ID,
			StaffID:   actorStaffID,
			Action:    models.AuditActionEventCreate,
			Note:      fmt.Sprintf("Event %q scheduled for %s", event.Name, event.EventDate.Format("2006-01-02")),
		})
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEvent(id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetEventByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvents(filters models.EventFilters) ([]models.Event, int, error) {
	events, total, err := s.eventRepo.GetEvents(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) UpdateEvent(id int64, req UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}
	if event.PublicState == string(models.EventStateClosed) {
		return nil, fmt.Errorf("%w: closed events cannot be edited", ErrValidation)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: event name cannot be empty", ErrValidation)
		}
		event.Name = *req.Name
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.MusicGenre != nil {
		event.MusicGenre = req.MusicGenre
	}
	if req.DJArtist != nil {
		event.DJArtist = req.DJArtist
	}
	if req.CoverURL != nil {
		event.CoverURL = req.CoverURL
	}
	if req.MaxCapacity != nil {
		if *req.MaxCapacity <= 0 {
			return nil, fmt.Errorf("%w: max capacity must be positive", ErrValidation)
		}
		event.MaxCapacity = *req.MaxCapacity
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.AutoOpenAt != nil {
		event.AutoOpenAt = req.AutoOpenAt
	}
	if req.AutoCloseAt != nil {
		event.AutoCloseAt = req.AutoCloseAt
	}

	updated, err := s.eventRepo.UpdateEvent(nil, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	s.cache.Delete(context.Background(), operativeEventCacheKey)
	return updated, nil
}

// Transition moves an event to a target lifecycle state. Closed is terminal.
// Moving to live makes this event the single operative one: every other
// event's operative flag is cleared and the operative pointer is rewritten,
// all in the transition's transaction. Closing reconciles remaining active
// reservations in the same transaction, so an event never ends up closed
// with unsettled reservations.
func (s *eventService) Transition(eventID int64, target string, actorStaffID *int64, automatic bool) (*models.Event, error) {
	if !models.IsValidEventState(target) {
		return nil, fmt.Errorf("%w: unknown state %q", ErrValidation, target)
	}

	var (
		event *models.Event
		sweep *SweepResult
	)
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		loaded, err := s.eventRepo.GetEventByID(ex, eventID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}
		event = loaded

		if event.PublicState == target {
			return nil
		}
		if event.PublicState == string(models.EventStateClosed) {
			return fmt.Errorf("%w: event is closed", ErrInvalidTransition)
		}

		switch models.EventState(target) {
		case models.EventStateLive:
			return s.openWithin(ex, event, actorStaffID, automatic)
		case models.EventStateScheduled:
			return s.demoteWithin(ex, event, actorStaffID, automatic)
		case models.EventStateClosed:
			swept, err := s.closeWithin(ex, event, actorStaffID, automatic)
			if err != nil {
				return err
			}
			sweep = swept
			return nil
		}
		return fmt.Errorf("%w: unknown state %q", ErrValidation, target)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(context.Background(), operativeEventCacheKey)

	if sweep != nil {
		s.publisher.EventClosed(queue.EventClosedEvent{
			EventID:   event.ID,
			Fulfilled: sweep.Fulfilled,
			NoShow:    sweep.NoShow,
			ClosedAt:  time.Now(),
		})
	}
	return event, nil
}

func (s *eventService) openWithin(ex repositories.SQLExecutor, event *models.Event, actorStaffID *int64, automatic bool) error {
	if err := s.eventRepo.UpdateEventState(ex, event.ID, string(models.EventStateLive), true); err != nil {
		return fmt.Errorf("failed to open event: %w", err)
	}
	if _, err := s.eventRepo.ClearOperativeFlagExcept(ex, event.ID); err != nil {
		return fmt.Errorf("failed to clear operative flags: %w", err)
	}
	if err := s.eventRepo.SetOperativeEventID(ex, &event.ID); err != nil {
		return fmt.Errorf("failed to set operative pointer: %w", err)
	}
	event.PublicState = string(models.EventStateLive)
	event.IsStaffOperative = true
	return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
		TableName: "events",
		RecordID:  event.ID,
		StaffID:   actorStaffID,
		Action:    models.AuditActionSetOperative,
		Note:      transitionNote("Event opened", automatic),
	})
}

func (s *eventService) demoteWithin(ex repositories.SQLExecutor, event *models.Event, actorStaffID *int64, automatic bool) error {
	if err := s.eventRepo.UpdateEventState(ex, event.ID, string(models.EventStateScheduled), false); err != nil {
		return fmt.Errorf("failed to demote event: %w", err)
	}
	if err := s.clearOperativePointerIfHeld(ex, event.ID); err != nil {
		return err
	}
	event.PublicState = string(models.EventStateScheduled)
	event.IsStaffOperative = false
	return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
		TableName: "events",
		RecordID:  event.ID,
		StaffID:   actorStaffID,
		Action:    models.AuditActionUnsetOperative,
		Note:      transitionNote("Event demoted to scheduled", automatic),
	})
}

func (s *eventService) closeWithin(ex repositories.SQLExecutor, event *models.Event, actorStaffID *int64, automatic bool) (*SweepResult, error) {
	if err := s.eventRepo.UpdateEventState(ex, event.ID, string(models.EventStateClosed), false); err != nil {
		return nil, fmt.Errorf("failed to close event: %w", err)
	}
	if err := s.clearOperativePointerIfHeld(ex, event.ID); err != nil {
		return nil, err
	}
	sweep, err := s.noShowService.ReconcileEventWithin(ex, event.ID, actorStaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile reservations on close: %w", err)
	}
	event.PublicState = string(models.EventStateClosed)
	event.IsStaffOperative = false
	err = s.auditRepo.InsertEntry(ex, &models.AuditEntry{
		TableName: "events",
		RecordID:  event.ID,
		StaffID:   actorStaffID,
		Action:    models.AuditActionEventClose,
		Note: transitionNote(fmt.Sprintf("Event closed: %d fulfilled, %d no-show",
			sweep.Fulfilled, sweep.NoShow), automatic),
	})
	if err != nil {
		return nil, err
	}
	return sweep, nil
}

func (s *eventService) clearOperativePointerIfHeld(ex repositories.SQLExecutor, eventID int64) error {
	current, err := s.eventRepo.GetOperativeEventID(ex)
	if err != nil {
		return fmt.Errorf("failed to read operative pointer: %w", err)
	}
	if current != nil && *current == eventID {
		if err := s.eventRepo.SetOperativeEventID(ex, nil); err != nil {
			return fmt.Errorf("failed to clear operative pointer: %w", err)
		}
	}
	return nil
}

func transitionNote(base string, automatic bool) string {
	if automatic {
		return base + " (automatic)"
	}
	return base
}

// OperativeEvent resolves the event door scans charge against. Both sides of
// the invariant are checked: the pointer must be set and the event it names
// must still carry the operative flag and be live.
func (s *eventService) OperativeEvent() (*models.Event, error) {
	var cached models.Event
	if s.cache.GetJSON(context.Background(), operativeEventCacheKey, &cached) {
		return &cached, nil
	}

	id, err := s.eventRepo.GetOperativeEventID(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read operative pointer: %w", err)
	}
	if id == nil {
		return nil, ErrNoOperativeEvent
	}
	event, err := s.eventRepo.GetEventByID(nil, *id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoOperativeEvent
		}
		return nil, fmt.Errorf("failed to get operative event: %w", err)
	}
	if !event.IsStaffOperative || event.PublicState != string(models.EventStateLive) {
		return nil, ErrNoOperativeEvent
	}
	s.cache.SetJSON(context.Background(), operativeEventCacheKey, event)
	return event, nil
}

// ProcessAutoTransitions opens and closes events whose scheduled automation
// timestamps have passed. Per-event failures are logged and skipped so one
// stuck event cannot block the others.
func (s *eventService) ProcessAutoTransitions() (opened, closed int) {
	now := time.Now()

	dueOpen, err := s.eventRepo.ListDueAutoOpen(now)
	if err != nil {
		log.Error().Err(err).Msg("Auto transitions: failed to list events due to open")
	}
	for _, event := range dueOpen {
		if _, err := s.Transition(event.ID, string(models.EventStateLive), nil, true); err != nil {
			log.Error().Err(err).Int64("event_id", event.ID).Msg("Auto transitions: open failed")
			continue
		}
		opened++
	}

	dueClose, err := s.eventRepo.ListDueAutoClose(now)
	if err != nil {
		log.Error().Err(err).Msg("Auto transitions: failed to list events due to close")
	}
	for _, event := range dueClose {
		if _, err := s.Transition(event.ID, string(models.EventStateClosed), nil, true); err != nil {
			log.Error().Err(err).Int64("event_id", event.ID).Msg("Auto transitions: close failed")
			continue
		}
		closed++
	}
	return opened, closed
}
