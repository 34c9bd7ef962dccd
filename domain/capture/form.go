package capture

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hebed-ai/accelerator-landing/domain/waitlist"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	// StateSubmitted is terminal for the form instance.
	StateSubmitted
	// StateFailed behaves like idle with an error message shown.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	MessageDuplicate   = "This email is already registered!"
	MessageRejected    = "Something went wrong. Please try again."
	MessageUnreachable = "Network error. Please check your connection and try again."
)

var (
	ErrNotSubmittable     = errors.New("capture: email is empty or not a valid address")
	ErrSubmissionInFlight = errors.New("capture: a submission is already in flight")
	ErrAlreadySubmitted   = errors.New("capture: form was already submitted")
)

// Submitter is satisfied by waitlist.WaitlistService.
type Submitter interface {
	Submit(ctx context.Context, req *waitlist.SubmissionRequest) (*waitlist.SubmissionResponse, error)
}

// Client describes the browser that submitted the form.
type Client struct {
	UserAgent string
	IP        string
}

// Form is one mounted capture component. Instances never share state.
type Form struct {
	placement Placement
	submitter Submitter

	mu      sync.Mutex
	state   State
	email   string
	message string
	failure waitlist.FailureKind
}

func NewForm(placement Placement, submitter Submitter) *Form {
	return &Form{
		placement: placement,
		submitter: submitter,
		state:     StateIdle,
	}
}

// SetEmail records what is in the input. It has no effect while submitting or once submitted.
func (f *Form) SetEmail(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateSubmitting, StateSubmitted:
		return
	case StateFailed:
		// the error stays visible until the next attempt
		f.email = value
		return
	}

	f.email = value
	if value == "" {
		f.state = StateIdle
	} else {
		f.state = StateEditing
	}
}

// Submit sends exactly one insert for the current input. A failed attempt leaves the
// form editable with the input preserved; nothing is retried automatically.
func (f *Form) Submit(ctx context.Context, client Client) error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmissionInFlight
	case StateSubmitted:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}

	if !submittable(f.email) {
		f.mu.Unlock()
		return ErrNotSubmittable
	}

	f.state = StateSubmitting
	f.message = ""
	f.failure = waitlist.KindNone
	email := f.email
	f.mu.Unlock()

	_, err := f.submitter.Submit(ctx, &waitlist.SubmissionRequest{
		Email:     email,
		Source:    f.placement.Source,
		UserAgent: client.UserAgent,
		IPAddress: client.IP,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = StateFailed
		f.failure = waitlist.ClassifyError(err)
		f.message = FailureMessage(f.failure)
		return err
	}

	f.state = StateSubmitted
	f.email = ""
	return nil
}

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return View{
		Placement:      f.placement,
		State:          f.state,
		Email:          f.email,
		Message:        f.message,
		Failure:        f.failure,
		SubmitDisabled: f.state == StateSubmitting || f.email == "",
	}
}

// View is a snapshot of a form used for rendering.
type View struct {
	Placement      Placement
	State          State
	Email          string
	Message        string
	Failure        waitlist.FailureKind
	SubmitDisabled bool
}

func FailureMessage(kind waitlist.FailureKind) string {
	switch kind {
	case waitlist.KindNone:
		return ""
	case waitlist.KindDuplicate:
		return MessageDuplicate
	case waitlist.KindUnreachable:
		return MessageUnreachable
	default:
		return MessageRejected
	}
}

func submittable(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return waitlist.ValidateEmail(waitlist.NormalizeEmail(email)) == nil
}
