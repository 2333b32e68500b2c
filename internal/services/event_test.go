package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubportal/internal/domain"
)

func TestEventService_Create(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		startTime   time.Time
		endTime     time.Time
		maxCapacity int
		wantErr     bool
	}{
		{
			name:        "success",
			title:       "Hack Night",
			startTime:   start,
			endTime:     start.Add(3 * time.Hour),
			maxCapacity: 50,
			wantErr:     false,
		},
		{
			name:        "empty title",
			title:       "   ",
			startTime:   start,
			maxCapacity: 50,
			wantErr:     true,
		},
		{
			name:        "zero capacity",
			title:       "Hack Night",
			startTime:   start,
			maxCapacity: 0,
			wantErr:     true,
		},
		{
			name:        "negative capacity",
			title:       "Hack Night",
			startTime:   start,
			maxCapacity: -5,
			wantErr:     true,
		},
		{
			name:        "capacity over limit",
			title:       "Hack Night",
			startTime:   start,
			maxCapacity: maxEventCapacity + 1,
			wantErr:     true,
		},
		{
			name:        "end before start",
			title:       "Hack Night",
			startTime:   start,
			endTime:     start.Add(-time.Hour),
			maxCapacity: 50,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepo{events: map[string]*domain.Event{}}
			svc := NewEventService(repo)

			event, err := svc.Create(context.Background(), tt.title, "desc", tt.startTime, tt.endTime, tt.maxCapacity, "workshop", "")
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Status != domain.EventStatusOpen {
				t.Fatalf("new events must start Open, got %q", event.Status)
			}
			if event.CurrentCount != 0 {
				t.Fatalf("new events must start with count 0, got %d", event.CurrentCount)
			}
		})
	}
}

func TestEventService_Update_validation(t *testing.T) {
	repo := &fakeEventRepo{events: map[string]*domain.Event{"e1": openEvent("e1", 10)}}
	svc := NewEventService(repo)

	zero := 0
	if _, err := svc.Update(context.Background(), "e1", domain.EventUpdate{MaxCapacity: &zero}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero capacity, got %v", err)
	}

	bad := domain.EventStatus("Paused")
	if _, err := svc.Update(context.Background(), "e1", domain.EventUpdate{Status: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}

	if _, err := svc.Update(context.Background(), "", domain.EventUpdate{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
}

func TestEventService_Update_lowersCapacityBelowCount(t *testing.T) {
	ev := openEvent("e1", 50)
	ev.CurrentCount = 30
	repo := &fakeEventRepo{events: map[string]*domain.Event{"e1": ev}}
	svc := NewEventService(repo)

	// Over-subscription relative to the new cap is a historical fact, not an
	// error; only new registrations are blocked by the capacity guard.
	lowered := 10
	updated, err := svc.Update(context.Background(), "e1", domain.EventUpdate{MaxCapacity: &lowered})
	if err != nil {
		t.Fatalf("lowering capacity below the live count must succeed, got %v", err)
	}
	if updated.MaxCapacity != 10 {
		t.Fatalf("expected max capacity 10, got %d", updated.MaxCapacity)
	}
	if updated.CurrentCount != 30 {
		t.Fatalf("count must not be auto-corrected, got %d", updated.CurrentCount)
	}
}

func TestEventService_GetByID_notFound(t *testing.T) {
	repo := &fakeEventRepo{events: map[string]*domain.Event{}}
	svc := NewEventService(repo)

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
