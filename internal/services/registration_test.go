package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"clubportal/internal/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.users == nil {
		f.users = map[string]*domain.User{}
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (f *fakeUserRepo) Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Year != nil {
		u.Year = *upd.Year
	}
	if upd.Dept != nil {
		u.Dept = *upd.Dept
	}
	if upd.RollNo != nil {
		u.RollNo = *upd.RollNo
	}
	if upd.MobileNumber != nil {
		u.MobileNumber = *upd.MobileNumber
	}
	if upd.Designation != nil {
		u.Designation = *upd.Designation
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

// fakeEventRepo mirrors the conditional-update semantics of the real
// repository: the capacity check and the increment happen under one lock, so
// concurrent callers observe it as a single atomic step.
type fakeEventRepo struct {
	mu      sync.Mutex
	events  map[string]*domain.Event
	incErrs []error // queued infrastructure errors, consumed per IncrementCount call
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error { return nil }

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) { return nil, nil }

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.MaxCapacity != nil {
		e.MaxCapacity = *upd.MaxCapacity
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) DeleteCascade(ctx context.Context, id string) error { return nil }

func (f *fakeEventRepo) IncrementCount(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.incErrs) > 0 {
		err := f.incErrs[0]
		f.incErrs = f.incErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !e.Status.AcceptsRegistrations() {
		return nil, domain.ErrRegistrationClosed
	}
	if e.CurrentCount >= e.MaxCapacity {
		return nil, domain.ErrEventFull
	}
	e.CurrentCount++
	if e.CurrentCount >= e.MaxCapacity {
		e.Status = domain.EventStatusFull
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) DecrementCount(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.CurrentCount > 0 {
		e.CurrentCount--
	}
	if e.Status == domain.EventStatusFull {
		e.Status = domain.EventStatusOpen
	}
	cp := *e
	return &cp, nil
}

type fakeLedger struct {
	mu        sync.Mutex
	regs      map[string]*domain.Registration
	nextID    int
	createErr error
	cancelErr error

	// readArrived/readRelease, when set, turn GetByID into a barrier: each
	// reader reports in and then blocks until the test releases them, so
	// concurrent cancellers can all observe the row as confirmed before any
	// of them writes.
	readArrived chan struct{}
	readRelease chan struct{}
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{regs: map[string]*domain.Registration{}}
}

func (f *fakeLedger) Create(ctx context.Context, reg *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.regs {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID &&
			existing.Status == domain.RegistrationConfirmed {
			return domain.ErrAlreadyRegistered
		}
	}
	f.nextID++
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	f.mu.Lock()
	reg, ok := f.regs[id]
	var cp domain.Registration
	if ok {
		cp = *reg
	}
	f.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if f.readArrived != nil {
		f.readArrived <- struct{}{}
		<-f.readRelease
	}
	return &cp, nil
}

func (f *fakeLedger) HasConfirmed(ctx context.Context, eventID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.UserID == userID && reg.Status == domain.RegistrationConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) MarkCancelled(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return false, f.cancelErr
	}
	reg, ok := f.regs[id]
	if !ok || reg.Status != domain.RegistrationConfirmed {
		return false, nil
	}
	reg.Status = domain.RegistrationCancelled
	return true, nil
}

func (f *fakeLedger) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range f.regs {
		if reg.UserID == userID {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return nil, nil
}

func (f *fakeLedger) ListFiltered(ctx context.Context, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	return nil, 0, nil
}

func (f *fakeLedger) confirmedCount(eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.Status == domain.RegistrationConfirmed {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completeUser(id string) *domain.User {
	return &domain.User{
		ID:           id,
		Name:         "Test User " + id,
		Email:        id + "@example.com",
		Role:         domain.RoleStudent,
		Year:         "3",
		Dept:         "CSE",
		RollNo:       "21CS" + id,
		MobileNumber: "9876543210",
	}
}

func openEvent(id string, capacity int) *domain.Event {
	return &domain.Event{
		ID:          id,
		Title:       "Event " + id,
		MaxCapacity: capacity,
		Status:      domain.EventStatusOpen,
	}
}

func TestRegistrationService_Register_success(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 10)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Status != domain.RegistrationConfirmed {
		t.Fatalf("expected confirmed registration, got %q", reg.Status)
	}
	if reg.Year != "3" || reg.Dept != "CSE" || reg.RollNo != "21CSu1" || reg.MobileNumber != "9876543210" {
		t.Fatalf("profile snapshot not copied: %+v", reg)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 1 {
		t.Fatalf("expected count 1, got %d", ev.CurrentCount)
	}
}

func TestRegistrationService_Register_lastSeatFlipsToFull(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 1)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	if _, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.Status != domain.EventStatusFull {
		t.Fatalf("expected status Full, got %q", ev.Status)
	}
}

func TestRegistrationService_Register_invalidInput(t *testing.T) {
	svc := NewRegistrationService(&fakeUserRepo{}, &fakeEventRepo{}, newFakeLedger(), nil, testLogger())

	_, err := svc.Register(context.Background(), "", "u1", "u1@example.com")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegistrationService_Register_profileNotFound(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 10)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	_, err := svc.Register(context.Background(), "e1", "ghost", "ghost@example.com")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestRegistrationService_Register_profileIncomplete(t *testing.T) {
	incomplete := completeUser("u1")
	incomplete.RollNo = ""
	incomplete.MobileNumber = ""
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": incomplete}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 10)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	_, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}

	// The gate must reject before any state changes.
	if ledger.confirmedCount("e1") != 0 {
		t.Fatal("ledger must not be written when the profile gate rejects")
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 0 {
		t.Fatalf("count must stay 0, got %d", ev.CurrentCount)
	}
}

func TestRegistrationService_Register_duplicate(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 10)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	if _, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 1 {
		t.Fatalf("duplicate must not change the count, got %d", ev.CurrentCount)
	}
}

func TestRegistrationService_Register_closedAndFull(t *testing.T) {
	closed := openEvent("e1", 10)
	closed.Status = domain.EventStatusClosed
	full := openEvent("e2", 2)
	full.CurrentCount = 2
	full.Status = domain.EventStatusFull

	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": closed, "e2": full}}
	svc := NewRegistrationService(users, events, newFakeLedger(), nil, testLogger())

	if _, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com"); !errors.Is(err, domain.ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "e2", "u1", "u1@example.com"); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "missing", "u1", "u1@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistrationService_Register_lostRaceCompensates(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{
		events:  map[string]*domain.Event{"e1": openEvent("e1", 10)},
		incErrs: []error{domain.ErrEventFull},
	}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	_, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}

	// Losing the seat race must not leave a confirmed orphan row behind.
	if n := ledger.confirmedCount("e1"); n != 0 {
		t.Fatalf("expected 0 confirmed rows after compensation, got %d", n)
	}
	reg, err := ledger.GetByID(context.Background(), "reg-1")
	if err != nil {
		t.Fatalf("ledger row should survive as history: %v", err)
	}
	if reg.Status != domain.RegistrationCancelled {
		t.Fatalf("expected cancelled status, got %q", reg.Status)
	}
}

func TestRegistrationService_Register_incrementRetrySucceeds(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{
		events:  map[string]*domain.Event{"e1": openEvent("e1", 10)},
		incErrs: []error{errors.New("connection reset")},
	}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("expected the retry to recover, got %v", err)
	}
	if reg.Status != domain.RegistrationConfirmed {
		t.Fatalf("expected confirmed registration, got %q", reg.Status)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 1 {
		t.Fatalf("expected count 1 after retry, got %d", ev.CurrentCount)
	}
}

func TestRegistrationService_Register_partialFailure(t *testing.T) {
	infraErr := errors.New("connection reset")
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{
		events:  map[string]*domain.Event{"e1": openEvent("e1", 10)},
		incErrs: []error{infraErr, infraErr},
	}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	_, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if !errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("expected ErrPartialFailure, got %v", err)
	}
	// The confirmed row stays for operator reconciliation.
	if n := ledger.confirmedCount("e1"); n != 1 {
		t.Fatalf("expected the orphan row to remain confirmed, got %d", n)
	}
}

func TestRegistrationService_Register_retryRejectionCompensates(t *testing.T) {
	// The first increment fails on infrastructure; by the time of the retry a
	// concurrent writer has consumed the seat. The rejection must propagate
	// and the fresh row must be compensated, not left as a confirmed orphan.
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{
		events:  map[string]*domain.Event{"e1": openEvent("e1", 10)},
		incErrs: []error{errors.New("connection reset"), domain.ErrEventFull},
	}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	_, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected ErrEventFull from the retry, got %v", err)
	}
	if errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("a classified rejection must not surface as partial failure")
	}
	if n := ledger.confirmedCount("e1"); n != 0 {
		t.Fatalf("expected the row to be compensated, got %d confirmed", n)
	}
	reg, err := ledger.GetByID(context.Background(), "reg-1")
	if err != nil {
		t.Fatalf("ledger row should survive as history: %v", err)
	}
	if reg.Status != domain.RegistrationCancelled {
		t.Fatalf("expected cancelled status, got %q", reg.Status)
	}
}

func TestRegistrationService_Register_concurrentCapacity(t *testing.T) {
	const capacity = 5
	const contenders = 20

	users := &fakeUserRepo{users: map[string]*domain.User{}}
	for i := 0; i < contenders; i++ {
		id := fmt.Sprintf("u%d", i)
		users.users[id] = completeUser(id)
	}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", capacity)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "e1", id, id+"@example.com")
			results <- err
		}(fmt.Sprintf("u%d", i))
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrEventFull) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if succeeded != capacity {
		t.Fatalf("expected exactly %d successes, got %d", capacity, succeeded)
	}
	if n := ledger.confirmedCount("e1"); n != capacity {
		t.Fatalf("expected %d confirmed rows, got %d", capacity, n)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != capacity || ev.Status != domain.EventStatusFull {
		t.Fatalf("expected count %d and Full, got count=%d status=%q", capacity, ev.CurrentCount, ev.Status)
	}
}

func TestRegistrationService_Cancel(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 1)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.Status != domain.EventStatusFull {
		t.Fatalf("expected Full before cancel, got %q", ev.Status)
	}

	if err := svc.Cancel(context.Background(), reg.ID, "u1", false); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	ev, _ = events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 0 {
		t.Fatalf("expected count 0 after cancel, got %d", ev.CurrentCount)
	}
	if ev.Status != domain.EventStatusOpen {
		t.Fatalf("expected Full event to reopen, got %q", ev.Status)
	}

	// Second cancel is benign and must not decrement again.
	err = svc.Cancel(context.Background(), reg.ID, "u1", false)
	if !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	ev, _ = events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 0 {
		t.Fatalf("idempotent cancel must not decrement twice, got %d", ev.CurrentCount)
	}
}

func TestRegistrationService_Cancel_concurrentSingleDecrement(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"u1": completeUser("u1"),
		"u2": completeUser("u2"),
	}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 5)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("register u1 failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "e1", "u2", "u2@example.com"); err != nil {
		t.Fatalf("register u2 failed: %v", err)
	}

	// Hold both cancellers at the read so each observes the row as still
	// confirmed before either writes, then release them together.
	ledger.readArrived = make(chan struct{}, 2)
	ledger.readRelease = make(chan struct{})

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			results <- svc.Cancel(context.Background(), reg.ID, "u1", false)
		}()
	}
	<-ledger.readArrived
	<-ledger.readArrived
	close(ledger.readRelease)

	var nilErrs, benign int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			nilErrs++
		case errors.Is(err, domain.ErrAlreadyCancelled):
			benign++
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if nilErrs != 1 || benign != 1 {
		t.Fatalf("expected one winner and one benign loser, got nil=%d benign=%d", nilErrs, benign)
	}

	// Exactly one seat released: the count still matches the confirmed rows.
	ev, _ := events.GetByID(context.Background(), "e1")
	if n := ledger.confirmedCount("e1"); ev.CurrentCount != n || n != 1 {
		t.Fatalf("count consistency violated: current_count=%d confirmed_rows=%d", ev.CurrentCount, n)
	}
}

func TestRegistrationService_Register_reusesFreedSeat(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"u1": completeUser("u1"),
		"u2": completeUser("u2"),
	}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 1)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg1, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("register u1 failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "e1", "u2", "u2@example.com"); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected ErrEventFull for u2, got %v", err)
	}

	if err := svc.Cancel(context.Background(), reg1.ID, "u1", false); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The freed seat goes to a different user.
	reg2, err := svc.Register(context.Background(), "e1", "u2", "u2@example.com")
	if err != nil {
		t.Fatalf("u2 must be able to take the freed seat, got %v", err)
	}
	ev, _ := events.GetByID(context.Background(), "e1")
	if ev.CurrentCount != 1 || ev.Status != domain.EventStatusFull {
		t.Fatalf("expected count 1 and Full, got count=%d status=%q", ev.CurrentCount, ev.Status)
	}

	// And a previously-cancelled user may register again once a seat frees up:
	// only confirmed rows count toward the uniqueness rule.
	if err := svc.Cancel(context.Background(), reg2.ID, "u2", false); err != nil {
		t.Fatalf("cancel u2 failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com"); err != nil {
		t.Fatalf("u1 must be able to re-register after cancelling, got %v", err)
	}
	ev, _ = events.GetByID(context.Background(), "e1")
	if n := ledger.confirmedCount("e1"); ev.CurrentCount != 1 || n != 1 {
		t.Fatalf("expected count 1 and 1 confirmed row, got count=%d confirmed=%d", ev.CurrentCount, n)
	}
}

func TestRegistrationService_Cancel_authorization(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 5)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Cancel(context.Background(), reg.ID, "someone-else", false); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Cancel(context.Background(), reg.ID, "someone-else", true); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}

func TestRegistrationService_Cancel_notFound(t *testing.T) {
	svc := NewRegistrationService(&fakeUserRepo{}, &fakeEventRepo{}, newFakeLedger(), nil, testLogger())

	err := svc.Cancel(context.Background(), "missing", "u1", false)
	if !errors.Is(err, domain.ErrRegistrationNotFound) {
		t.Fatalf("expected ErrRegistrationNotFound, got %v", err)
	}
}

func TestRegistrationService_Cancel_eventDeleted(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 5)}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	reg, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	events.mu.Lock()
	delete(events.events, "e1")
	events.mu.Unlock()

	// Cancelling a registration for a deleted event still succeeds.
	if err := svc.Cancel(context.Background(), reg.ID, "u1", false); err != nil {
		t.Fatalf("expected cancel to succeed with no seat to release, got %v", err)
	}
}

func TestRegistrationService_ListMyRegistrations_skipsDeletedEvents(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{"u1": completeUser("u1")}}
	events := &fakeEventRepo{events: map[string]*domain.Event{
		"e1": openEvent("e1", 5),
		"e2": openEvent("e2", 5),
	}}
	ledger := newFakeLedger()
	svc := NewRegistrationService(users, events, ledger, nil, testLogger())

	if _, err := svc.Register(context.Background(), "e1", "u1", "u1@example.com"); err != nil {
		t.Fatalf("register e1 failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "e2", "u1", "u1@example.com"); err != nil {
		t.Fatalf("register e2 failed: %v", err)
	}

	events.mu.Lock()
	delete(events.events, "e2")
	events.mu.Unlock()

	items, err := svc.ListMyRegistrations(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after event deletion, got %d", len(items))
	}
	if items[0].Event.ID != "e1" {
		t.Fatalf("expected surviving event e1, got %q", items[0].Event.ID)
	}
}
