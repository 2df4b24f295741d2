package codec

import (
	"github.com/wippyai/axdr/errors"
)

// Sentinels for classifying codec failures with errors.Is. They match an
// *errors.Error of the same kind regardless of phase.
var (
	ErrOverflow     = errors.Sentinel(errors.KindOverflow)
	ErrConstraint   = errors.Sentinel(errors.KindConstraint)
	ErrInvalidValue = errors.Sentinel(errors.KindInvalidValue)
	ErrInvalidType  = errors.Sentinel(errors.KindInvalidType)
)
