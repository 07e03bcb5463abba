package commands

import (
	"errors"
	"time"

	"procserve/internal/pkg/errs"
	"procserve/internal/pkg/guard"
)

var ErrPurgeStaleDraftsCommandIsNotConstructed = errors.New(
	"PurgeStaleDraftsCommand must be created via NewPurgeStaleDraftsCommand constructor",
)

// PurgeStaleDraftsCommand represents a request to delete drafts that have
// not been touched for the retention period. Issued by the scheduled
// housekeeping job.
type PurgeStaleDraftsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeStaleDraftsCommand creates a purge command with the given
// retention period.
func NewPurgeStaleDraftsCommand(retention time.Duration) (PurgeStaleDraftsCommand, error) {
	cmd := PurgeStaleDraftsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRetention(retention); err != nil {
		return PurgeStaleDraftsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeStaleDraftsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeStaleDraftsCommandIsNotConstructed)
}

// Retention returns how long an untouched draft is kept.
func (c PurgeStaleDraftsCommand) Retention() time.Duration {
	return c.retention
}

func (c *PurgeStaleDraftsCommand) setRetention(retention time.Duration) error {
	if retention <= 0 {
		return errs.NewValueIsInvalidError("retention")
	}

	c.retention = retention
	return nil
}
