package service

import (
	"errors"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/google/uuid"
)

// stamp returns the clock's current time at the second precision that the
// store keeps, so values read back compare equal to values written.
func stamp(clk clock.Clock) time.Time {
	return clk.Now().UTC().Truncate(time.Second)
}

func newID() string {
	return uuid.New().String()
}

func looksLikeUUID(ref string) bool {
	_, err := uuid.Parse(ref)
	return err == nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
