package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Service handles the application lifecycle. It owns the in-memory
// collection: records are loaded once at startup, mutated under a single
// lock, and the whole collection is persisted after every mutation.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu   sync.Mutex
	apps []Application
}

// NewService creates a new application service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Load reads the persisted collection into memory. Call once before
// serving requests.
func (s *Service) Load(ctx context.Context) error {
	apps, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading applications: %w", err)
	}
	s.mu.Lock()
	s.apps = apps
	s.mu.Unlock()
	s.logger.Info("applications loaded", "count", len(apps))
	return nil
}

// SubmitRequest describes a citizen submission.
type SubmitRequest struct {
	FullName    string
	PhoneNumber string
	IDNumber    string
	ServiceType ServiceType
	Uploads     []FileUpload
}

// Submit validates the request, encodes every attachment, and appends a new
// pending application to the collection. The record is constructed only
// after all attachments have been encoded; any attachment failure aborts
// the submission with no record created.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Application, error) {
	if err := ValidateSubmitInput(req); err != nil {
		return nil, err
	}

	attachments, err := EncodeAttachments(ctx, req.Uploads)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	app := Application{
		OrderNumber: len(s.apps) + 1,
		Code:        NewTrackingCode(now),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		IDNumber:    req.IDNumber,
		ServiceType: req.ServiceType,
		Files:       attachments,
		Status:      StatusPending,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	s.apps = append(s.apps, app)
	if err := s.repo.SaveAll(ctx, s.apps); err != nil {
		s.apps = s.apps[:len(s.apps)-1]
		return nil, fmt.Errorf("persisting submission: %w", err)
	}

	s.logger.Info("application submitted",
		"code", app.Code,
		"service_type", app.ServiceType,
		"attachments", len(app.Files),
	)
	return &app, nil
}

// UpdateStatus moves an application to a new status. Any status is
// reachable from any other; completed is not terminal. A direct transition
// to needs_more_info is rejected, that path must supply a note through
// AttachNote. Entering completed stamps completedAt once and never again.
func (s *Service) UpdateStatus(ctx context.Context, code string, status Status) (*Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if status == StatusNeedsMoreInfo {
		return nil, ErrNoteRequired
	}

	return s.mutate(ctx, code, func(app *Application, now time.Time) {
		app.Status = status
		app.UpdatedAt = now
		if status == StatusCompleted && app.CompletedAt == nil {
			app.CompletedAt = &now
		}
	})
}

// AttachNote sets the admin note and moves the application to
// needs_more_info in one step.
func (s *Service) AttachNote(ctx context.Context, code, note string) (*Application, error) {
	if err := ValidateNote(note); err != nil {
		return nil, err
	}

	return s.mutate(ctx, code, func(app *Application, now time.Time) {
		app.Status = StatusNeedsMoreInfo
		app.AdminNote = note
		app.UpdatedAt = now
	})
}

// ToggleReceived flips the physical-receipt flag. receivedAt is stamped on
// pickup and cleared when the flag is undone.
func (s *Service) ToggleReceived(ctx context.Context, code string) (*Application, error) {
	return s.mutate(ctx, code, func(app *Application, now time.Time) {
		app.IsReceived = !app.IsReceived
		if app.IsReceived {
			app.ReceivedAt = &now
		} else {
			app.ReceivedAt = nil
		}
		app.UpdatedAt = now
	})
}

// Find resolves a tracking key (code or national ID) against the current
// collection.
func (s *Service) Find(key string) (*Application, error) {
	return FindByCodeOrID(s.Applications(), key)
}

// Filter returns applications whose national ID contains the query.
func (s *Service) Filter(query string) []Application {
	return FilterByIDSubstring(s.Applications(), query)
}

// Applications returns a snapshot of the collection in insertion order.
func (s *Service) Applications() []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Application, len(s.apps))
	copy(out, s.apps)
	return out
}

// mutate applies fn to the application with the given code and persists the
// collection, restoring the previous record if the write fails.
func (s *Service) mutate(ctx context.Context, code string, fn func(app *Application, now time.Time)) (*Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.apps {
		if s.apps[i].Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	prev := s.apps[idx]
	fn(&s.apps[idx], time.Now())

	if err := s.repo.SaveAll(ctx, s.apps); err != nil {
		s.apps[idx] = prev
		return nil, fmt.Errorf("persisting update: %w", err)
	}

	s.logger.Info("application updated", "code", code, "status", s.apps[idx].Status)
	updated := s.apps[idx]
	return &updated, nil
}
