package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrValidation marks failures caught before any remote call was made.
var ErrValidation = eris.New("validation failed")

// DefaultSuccessTTL is how long a success banner stays visible.
const DefaultSuccessTTL = 3 * time.Second

// banner holds the error and success messages of an editor. An error stays until it is
// dismissed or replaced; a success message expires after ttl.
type banner struct {
	ttl          time.Duration
	err          string
	success      string
	successUntil time.Time
}

func newBanner(ttl time.Duration) banner {
	if ttl <= 0 {
		ttl = DefaultSuccessTTL
	}
	return banner{ttl: ttl}
}

func (b *banner) fail(message string) {
	b.err = message
}

func (b *banner) succeed(message string, now time.Time) {
	b.success = message
	b.successUntil = now.Add(b.ttl)
}

func (b *banner) reset() {
	b.err = ""
	b.success = ""
	b.successUntil = time.Time{}
}

func (b *banner) dismissError() { b.err = "" }

func (b *banner) dismissSuccess() {
	b.success = ""
	b.successUntil = time.Time{}
}

func (b *banner) current(now time.Time) (errMsg, success string) {
	if b.success != "" && !now.Before(b.successUntil) {
		b.dismissSuccess()
	}
	return b.err, b.success
}

// serviceError is implemented by data service errors that carry a message meant for the admin.
type serviceError interface {
	ServiceMessage() string
}

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	var svcErr serviceError
	if errors.As(err, &svcErr) {
		if message := svcErr.ServiceMessage(); message != "" {
			return message
		}
	}
	return eris.Cause(err).Error()
}

func validationError(message string) error {
	return eris.Wrap(ErrValidation, message)
}

// ValidationMessage returns the user-facing text carried by a validation error.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSuffix(err.Error(), ": "+ErrValidation.Error())
}
