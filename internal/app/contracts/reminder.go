package contracts

import (
	"context"
	"time"
)

type ReminderUsecase interface {
	// RunScan dispatches due reminders for every configured lead time around
	// now. Per-appointment failures are logged and skipped.
	RunScan(ctx context.Context, now time.Time) error
}

type ReminderLedger interface {
	// TryRecord inserts the (appointmentID, leadTime) pair. It returns false
	// without error when the pair already exists, which callers use as the
	// already-sent signal.
	TryRecord(ctx context.Context, appointmentID, leadTime string) (bool, error)
}
