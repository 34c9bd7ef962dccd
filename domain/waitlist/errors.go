package waitlist

import (
	apperrors "github.com/hebed-ai/accelerator-landing/pkg/errors"
)

// FailureKind is how a failed insert is reported back to the person submitting the form.
type FailureKind int

const (
	KindNone FailureKind = iota
	// KindDuplicate: the normalized email is already on the list.
	KindDuplicate
	// KindRejected: the backend answered with any other error.
	KindRejected
	// KindUnreachable: the request never completed.
	KindUnreachable
)

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "stored"
	case KindDuplicate:
		return "duplicate"
	case KindRejected:
		return "rejected"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

func ClassifyError(err error) FailureKind {
	if err == nil {
		return KindNone
	}

	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeConflict:
		return KindDuplicate
	case apperrors.ErrorTypeBackendUnavailable:
		return KindUnreachable
	default:
		return KindRejected
	}
}
