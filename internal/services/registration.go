package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubportal/internal/domain"
)

type registrationService struct {
	userRepo     domain.UserRepository
	eventRepo    domain.EventRepository
	ledger       domain.RegistrationRepository
	emailService domain.EmailService // optional; nil disables confirmation mails
	logger       *slog.Logger
}

// NewRegistrationService creates the registration engine with its
// collaborators. emailService may be nil.
func NewRegistrationService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	ledger domain.RegistrationRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		ledger:       ledger,
		emailService: emailService,
		logger:       logger,
	}
}

// Register runs the sign-up workflow in a fixed order, failing fast on the
// first violated precondition: input validation, profile gate, duplicate
// check, event status and capacity check, ledger insert, atomic count
// increment. The capacity guard lives in the increment itself (a conditional
// update), so two concurrent calls racing for the last seat cannot both
// succeed; the loser's ledger row is compensated away.
func (s *registrationService) Register(ctx context.Context, eventID, userID, userEmail string) (*domain.Registration, error) {
	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	userEmail = strings.TrimSpace(userEmail)
	if eventID == "" || userID == "" || userEmail == "" {
		return nil, fmt.Errorf("%w: eventID, userID, and userEmail are required", domain.ErrInvalidInput)
	}

	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("load profile", err)
	}
	if c := domain.CheckProfileCompleteness(profile); !c.Complete {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrProfileIncomplete, strings.Join(c.Missing, ", "))
	}

	registered, err := s.ledger.HasConfirmed(ctx, eventID, userID)
	if err != nil {
		return nil, storeErr("check existing registration", err)
	}
	if registered {
		return nil, domain.ErrAlreadyRegistered
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("load event", err)
	}
	if !event.Status.AcceptsRegistrations() {
		return nil, domain.ErrRegistrationClosed
	}
	if event.CurrentCount >= event.MaxCapacity {
		return nil, domain.ErrEventFull
	}

	// Snapshot the profile fields now; later profile edits must not alter
	// this row.
	reg := &domain.Registration{
		EventID:      eventID,
		UserID:       userID,
		UserEmail:    userEmail,
		Year:         profile.Year,
		Dept:         profile.Dept,
		RollNo:       profile.RollNo,
		MobileNumber: profile.MobileNumber,
		Timestamp:    time.Now().UTC(),
		Status:       domain.RegistrationConfirmed,
	}
	if err := s.ledger.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, storeErr("create registration", err)
	}

	updated, err := s.eventRepo.IncrementCount(ctx, eventID)
	if err != nil {
		updated, err = s.recoverIncrementFailure(ctx, reg, err)
		if err != nil {
			return nil, err
		}
	}

	s.sendConfirmation(ctx, profile, updated)
	return reg, nil
}

// recoverIncrementFailure resolves the state after the ledger insert
// succeeded but the count increment did not. A business rejection means a
// concurrent writer consumed the seat (or an admin closed the event) between
// the pre-check and the increment: the fresh ledger row is compensated away
// and the rejection propagates. An infrastructure failure gets one retry;
// a business rejection on the retry is compensated the same way, and only a
// second infrastructure failure is logged for operator reconciliation and
// surfaced as ErrPartialFailure.
func (s *registrationService) recoverIncrementFailure(ctx context.Context, reg *domain.Registration, incErr error) (*domain.Event, error) {
	if isIncrementRejection(incErr) {
		return nil, s.compensate(ctx, reg, incErr)
	}

	updated, retryErr := s.eventRepo.IncrementCount(ctx, reg.EventID)
	if retryErr == nil {
		return updated, nil
	}
	if isIncrementRejection(retryErr) {
		// The seat was consumed between the failed attempt and the retry.
		return nil, s.compensate(ctx, reg, retryErr)
	}

	s.logger.ErrorContext(ctx, "event count increment failed after ledger insert; needs reconciliation",
		"registration_id", reg.ID, "event_id", reg.EventID, "err", incErr)
	return nil, fmt.Errorf("%w: registration %s created but count not incremented", domain.ErrPartialFailure, reg.ID)
}

// isIncrementRejection reports whether the increment failed on a business
// guard rather than on infrastructure.
func isIncrementRejection(err error) bool {
	return errors.Is(err, domain.ErrEventFull) ||
		errors.Is(err, domain.ErrRegistrationClosed) ||
		errors.Is(err, domain.ErrNotFound)
}

// compensate cancels the just-inserted ledger row after a lost capacity race
// and propagates the rejection that won it.
func (s *registrationService) compensate(ctx context.Context, reg *domain.Registration, rejection error) error {
	if _, err := s.ledger.MarkCancelled(ctx, reg.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to compensate registration after lost capacity race",
			"registration_id", reg.ID, "event_id", reg.EventID, "err", err)
		return fmt.Errorf("%w: registration %s not counted", domain.ErrPartialFailure, reg.ID)
	}
	return rejection
}

func (s *registrationService) sendConfirmation(ctx context.Context, profile *domain.User, event *domain.Event) {
	if s.emailService == nil || event == nil {
		return
	}
	data := &domain.RegistrationConfirmedEmailData{
		Email:          profile.Email,
		Name:           profile.Name,
		EventTitle:     event.Title,
		EventStartTime: event.StartTime.Format(time.RFC1123),
	}
	// Confirmation mail is best-effort; a mail failure never fails the registration.
	if err := s.emailService.SendRegistrationConfirmed(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send registration confirmation",
			"user_id", profile.ID, "event_id", event.ID, "err", err)
	}
}

// Cancel flips a confirmed registration to cancelled and releases its seat.
// Cancelling twice returns ErrAlreadyCancelled without touching the count,
// keeping the operation idempotent.
func (s *registrationService) Cancel(ctx context.Context, registrationID, requesterID string, asAdmin bool) error {
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return fmt.Errorf("%w: registrationID is required", domain.ErrInvalidInput)
	}

	reg, err := s.ledger.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return storeErr("load registration", err)
	}
	if !asAdmin && reg.UserID != requesterID {
		return domain.ErrForbidden
	}
	if reg.Status == domain.RegistrationCancelled {
		return domain.ErrAlreadyCancelled
	}

	// The flip is conditional on the row still being confirmed, so of two
	// concurrent cancels only one transitions the row and releases the seat.
	flipped, err := s.ledger.MarkCancelled(ctx, registrationID)
	if err != nil {
		return storeErr("cancel registration", err)
	}
	if !flipped {
		return domain.ErrAlreadyCancelled
	}

	if _, err := s.eventRepo.DecrementCount(ctx, reg.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Event already deleted; nothing to release.
			return nil
		}
		if _, retryErr := s.eventRepo.DecrementCount(ctx, reg.EventID); retryErr == nil {
			return nil
		}
		s.logger.ErrorContext(ctx, "event count decrement failed after cancellation; needs reconciliation",
			"registration_id", registrationID, "event_id", reg.EventID, "err", err)
		return fmt.Errorf("%w: registration %s cancelled but count not decremented", domain.ErrPartialFailure, registrationID)
	}
	return nil
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	regs, err := s.ledger.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr("list registrations", err)
	}

	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but registration remains; skip the entry.
					continue
				}
				return nil, storeErr("load event for registration", err)
			}
			eventsByID[reg.EventID] = ev
		}
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}
	return result, nil
}

func (s *registrationService) ListFiltered(ctx context.Context, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	regs, total, err := s.ledger.ListFiltered(ctx, filter, p)
	if err != nil {
		return nil, 0, storeErr("list filtered registrations", err)
	}
	return regs, total, nil
}

// storeErr wraps repository errors, tagging transient connectivity failures
// as ErrStoreUnavailable so callers can retry the whole operation.
func storeErr(op string, err error) error {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
