package feed

import "errors"

// Write-path validation errors. These are the only feed errors surfaced
// to the caller with a specific reason; a rejected write has no side
// effects.
var (
	ErrEmptyPost      = errors.New("post requires content or at least one media attachment")
	ErrContentTooLong = errors.New("post content exceeds the length limit")
	ErrTooManyMedia   = errors.New("too many media attachments")
	ErrInvalidMedia   = errors.New("media attachments require a type of image or video and a url")
)

// IsValidationError reports whether err is a write-path validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyPost) ||
		errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrTooManyMedia) ||
		errors.Is(err, ErrInvalidMedia)
}
