package renderstream

import (
	"errors"
	"fmt"

	"github.com/hupe1980/renderstream/internal/dump"
)

var (
	// ErrCorruptDump is returned when a diagnostic report fails to parse.
	ErrCorruptDump = errors.New("corrupt dump")

	// ErrUnknownCompression is returned for an unsupported report compression.
	ErrUnknownCompression = errors.New("unknown compression")
)

// ErrDumpVersion indicates a report written by an incompatible format version.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDumpVersion struct {
	Got   uint16
	Want  uint16
	cause error
}

func (e *ErrDumpVersion) Error() string {
	return fmt.Sprintf("dump version mismatch: got %d, want %d", e.Got, e.Want)
}

func (e *ErrDumpVersion) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ve *dump.VersionError
	if errors.As(err, &ve) {
		return &ErrDumpVersion{Got: ve.Got, Want: ve.Want, cause: err}
	}
	if errors.Is(err, dump.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrCorruptDump, err)
	}
	if errors.Is(err, dump.ErrUnknownCompression) {
		return fmt.Errorf("%w: %w", ErrUnknownCompression, err)
	}

	return err
}
