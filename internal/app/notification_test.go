package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

func TestNotificationService_ListSinceCursor(t *testing.T) {
	svc := app.NewNotificationService(&memNotifications{})

	if _, err := svc.Notify(context.Background(), tenant.ID, "Booking approved", "", "/payments"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	all, err := svc.List(context.Background(), tenant, time.Time{}, 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d notifications, want 1", len(all))
	}

	// Cursor past the row's creation time excludes it.
	none, err := svc.List(context.Background(), tenant, time.Now().Add(time.Hour), 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d notifications after cursor, want 0", len(none))
	}
}

func TestNotificationService_MarkRead_Ownership(t *testing.T) {
	notes := &memNotifications{}
	svc := app.NewNotificationService(notes)

	note, err := svc.Notify(context.Background(), tenant.ID, "Booking approved", "", "")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if err := svc.MarkRead(context.Background(), owner, note.ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("other user's MarkRead err = %v, want ErrNotificationNotFound", err)
	}

	if err := svc.MarkRead(context.Background(), tenant, note.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !notes.notes[0].IsRead {
		t.Error("notification should be marked read")
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	svc := app.NewNotificationService(&memNotifications{})

	for i := 0; i < 3; i++ {
		if _, err := svc.Notify(context.Background(), tenant.ID, "Payment verified", "", ""); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}
	if _, err := svc.Notify(context.Background(), owner.ID, "New booking", "", ""); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	n, err := svc.MarkAllRead(context.Background(), tenant)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if n != 3 {
		t.Errorf("marked %d, want 3", n)
	}

	// A second pass has nothing left to mark.
	n, err = svc.MarkAllRead(context.Background(), tenant)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if n != 0 {
		t.Errorf("marked %d on repeat, want 0", n)
	}
}

func TestNotificationService_Anonymous(t *testing.T) {
	svc := app.NewNotificationService(&memNotifications{})

	if _, err := svc.List(context.Background(), domain.Actor{}, time.Time{}, 50); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("List err = %v, want ErrUnauthorized", err)
	}
	if err := svc.MarkRead(context.Background(), domain.Actor{}, "n1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("MarkRead err = %v, want ErrUnauthorized", err)
	}
}
