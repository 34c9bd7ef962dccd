package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

type CircuitState int

const (
	Closed CircuitState = iota
	Open
	HalfOpen
)

var stateNames = map[CircuitState]string{
	Closed:   "closed",
	Open:     "open",
	HalfOpen: "half-open",
}

func (s CircuitState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

var errPanicked = errors.New("call panicked")

// CircuitBreaker stops calling a dependency after repeated failures and probes it again once
// RecoveryTimeout has passed.
type CircuitBreaker interface {
	Call(func() error) error
	State() CircuitState
	Reset()
}

type Config struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before one probe is let through.
	RecoveryTimeout time.Duration
	// SuccessThreshold successful probes close it again.
	SuccessThreshold int

	// OnStateChange runs outside the lock, once per transition.
	OnStateChange func(from, to CircuitState)
}

func DefaultConfig() *Config {
	return &Config{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 1,
	}
}

type circuitBreaker struct {
	config Config
	now    func() time.Time

	mu        sync.Mutex
	state     CircuitState
	failures  int
	successes int
	openUntil time.Time
	probing   bool
}

func NewCircuitBreaker(config *Config) CircuitBreaker {
	cfg := *DefaultConfig()
	if config != nil {
		cfg.OnStateChange = config.OnStateChange
		if config.FailureThreshold > 0 {
			cfg.FailureThreshold = config.FailureThreshold
		}
		if config.RecoveryTimeout > 0 {
			cfg.RecoveryTimeout = config.RecoveryTimeout
		}
		if config.SuccessThreshold > 0 {
			cfg.SuccessThreshold = config.SuccessThreshold
		}
	}
	return &circuitBreaker{config: cfg, now: time.Now}
}

// Call runs fn unless the circuit is open. While half-open only one probe runs at a time;
// concurrent callers get ErrCircuitOpen. A panic in fn counts as a failure and is re-raised.
func (cb *circuitBreaker) Call(fn func() error) (err error) {
	from, to, allowed := cb.admit()
	cb.notify(from, to)
	if !allowed {
		return ErrCircuitOpen
	}

	returned := false
	defer func() {
		outcome := err
		if !returned {
			outcome = errPanicked
		}
		from, to := cb.record(outcome)
		cb.notify(from, to)
	}()

	err = fn()
	returned = true
	return err
}

func (cb *circuitBreaker) admit() (from, to CircuitState, allowed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	from = cb.state
	if cb.state == Open && !cb.now().Before(cb.openUntil) {
		cb.state = HalfOpen
		cb.successes = 0
	}

	switch cb.state {
	case Open:
		return from, cb.state, false
	case HalfOpen:
		if cb.probing {
			return from, cb.state, false
		}
		cb.probing = true
	}
	return from, cb.state, true
}

func (cb *circuitBreaker) record(err error) (from, to CircuitState) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	from = cb.state
	wasProbe := cb.state == HalfOpen
	cb.probing = false

	if err != nil {
		cb.failures++
		if wasProbe || cb.failures >= cb.config.FailureThreshold {
			cb.state = Open
			cb.openUntil = cb.now().Add(cb.config.RecoveryTimeout)
		}
		return from, cb.state
	}

	cb.failures = 0
	if wasProbe {
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.state = Closed
			cb.successes = 0
		}
	}
	return from, cb.state
}

func (cb *circuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	from := cb.state
	cb.state, cb.failures, cb.successes, cb.probing = Closed, 0, 0, false
	cb.mu.Unlock()
	cb.notify(from, Closed)
}

func (cb *circuitBreaker) notify(from, to CircuitState) {
	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}
