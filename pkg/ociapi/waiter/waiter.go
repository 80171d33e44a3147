// Package waiter blocks until a resource reaches one of a set of lifecycle
// states, and chains that wait behind create, update and delete calls.
package waiter

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
)

// Condition reports whether a fetched resource is in the awaited state.
type Condition func(resp *ociapi.Response) (bool, error)

// LifecycleStateIn is satisfied when the lifecycle state of the response model
// equals one of states, ignoring case. Responses whose model has no lifecycle
// state never satisfy it.
func LifecycleStateIn(states ...string) Condition {
	lowered := make(map[string]struct{}, len(states))
	for _, s := range states {
		lowered[strings.ToLower(s)] = struct{}{}
	}
	return func(resp *ociapi.Response) (bool, error) {
		state, ok := resp.LifecycleState()
		if !ok {
			return false, nil
		}
		_, found := lowered[strings.ToLower(state)]
		return found, nil
	}
}

type Option func(*Waiter)

func WithClock(clock clockwork.Clock) Option {
	return func(w *Waiter) {
		w.clock = clock
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(w *Waiter) {
		w.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(w *Waiter) {
		w.metrics = m
	}
}

// Waiter polls resources. It holds no per-wait state and may be shared.
type Waiter struct {
	clock   clockwork.Clock
	logger  log.FieldLogger
	metrics *Metrics
}

func New(opts ...Option) *Waiter {
	w := &Waiter{
		clock:  clockwork.NewRealClock(),
		logger: log.StandardLogger(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// WaitUntil calls poll until cond is satisfied. The first fetch is immediate;
// the spacing then doubles from one second up to cfg.MaxIntervalSeconds, and the
// last sleep is shortened so the final fetch happens at the deadline.
//
// When cfg.SucceedOnNotFound is set, a not found error from poll ends the wait
// with a nil response and a nil error.
func (w *Waiter) WaitUntil(ctx context.Context, poll ociapi.PollFunc, cond Condition, cfg Config) (*ociapi.Response, error) {
	maxInterval := cfg.maxInterval()
	maxWait := cfg.maxWait()

	backoff := wait.Backoff{
		Duration: min(initialInterval, maxInterval),
		Factor:   2,
		Cap:      maxInterval,
		Steps:    math.MaxInt32,
	}

	start := w.clock.Now()
	lastState := ""
	for polls := 1; ; polls++ {
		logger := w.logger.WithField("poll", polls)

		resp, err := poll(ctx)
		w.metrics.observePoll()
		if err != nil {
			if cfg.SucceedOnNotFound && ociapi.IsNotFound(err) {
				logger.Info("resource no longer exists, wait finished")
				w.finish(OutcomeNotFound, start)
				return nil, nil
			}
			w.finish(OutcomeError, start)
			return nil, errors.Wrap(err, "failed to fetch resource state")
		}

		if state, ok := resp.LifecycleState(); ok {
			lastState = state
		}
		logger.WithField("lifecycleState", lastState).Debug("fetched resource state")

		done, err := cond(resp)
		if err != nil {
			w.finish(OutcomeError, start)
			return nil, errors.Wrap(err, "failed to evaluate wait condition")
		}
		if done {
			logger.WithField("lifecycleState", lastState).Info("resource reached the awaited state")
			w.finish(OutcomeSatisfied, start)
			return resp, nil
		}

		elapsed := w.clock.Since(start)
		if elapsed >= maxWait {
			w.finish(OutcomeTimedOut, start)
			return nil, &TimeoutError{Elapsed: elapsed, MaxWait: maxWait, Polls: polls, LastState: lastState}
		}

		sleep := min(backoff.Step(), maxWait-elapsed)
		select {
		case <-ctx.Done():
			w.finish(OutcomeError, start)
			return nil, errors.Wrap(ctx.Err(), "wait canceled")
		case <-w.clock.After(sleep):
		}
	}
}

func (w *Waiter) finish(outcome string, start time.Time) {
	w.metrics.observeOutcome(outcome, w.clock.Since(start).Seconds())
}
