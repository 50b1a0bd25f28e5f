// Package orchestrator is the single chokepoint every remote call of the
// column client goes through.
//
// Each call raises the global loading flag and clears the global error
// record before it is sent. A success decodes the typed {code,msg,data}
// envelope, validates it, applies the caller's mutation to the cache and
// lowers the loading flag after a short trailing delay so fast answers do
// not flicker. A failure records the server message as the one current
// error and lowers loading at once.
//
// The loading flag is a single boolean, not a counter: with overlapping
// calls the earliest finisher may lower it while another call is still in
// flight. There is no retry; callers re-invoke the operation.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zheye/internal/client/models"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/logging"
	"github.com/google/uuid"
)

const DefaultLoadingDelay = time.Second

var (
	// ErrMalformedPayload means a 2xx body did not match the endpoint contract.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrApplication means the envelope carried a non-zero code.
	ErrApplication = errors.New("application error")
)

// State is the globally visible request status.
type State struct {
	Loading bool
	Error   models.ErrorRecord
}

type Option func(*Orchestrator)

// WithLoadingDelay sets the trailing delay before loading clears after a
// success. Zero or negative clears it immediately.
func WithLoadingDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.delay = d
	}
}

type Orchestrator struct {
	transport transport.Transport
	logger    logging.Logger
	delay     time.Duration

	mu          sync.Mutex
	state       State
	seq         uint64
	timers      map[*time.Timer]struct{}
	subscribers map[int]func(State)
	nextSubID   int
	closed      bool

	// deliver serializes subscriber calls; never taken while mu is held.
	deliver   sync.Mutex
	delivered uint64
}

func New(t transport.Transport, logger logging.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		transport:   t,
		logger:      logger,
		delay:       DefaultLoadingDelay,
		timers:      make(map[*time.Timer]struct{}),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run sends req and, on success, hands the decoded data to mutation before
// returning it. mutation may be nil. Extra context a mutation needs (such as
// the column a post list belongs to) is captured by the closure.
func Run[T any](ctx context.Context, o *Orchestrator, req *transport.Request, mutation func(T) error) (T, error) {
	var zero T

	log := o.logger.With("request_id", uuid.NewString(), "method", req.Method, "path", req.Path)
	o.begin()

	resp, err := o.transport.Do(ctx, req)
	if err != nil {
		o.fail(transport.Message(err))
		log.Warn(ctx, "request failed", "error", err)
		return zero, err
	}

	data, err := decode[T](resp.Body)
	if err != nil {
		o.fail(errorMessage(err))
		log.Error(ctx, "response rejected", "error", err)
		return zero, err
	}

	if mutation != nil {
		if err := mutation(data); err != nil {
			o.fail(err.Error())
			log.Error(ctx, "mutation failed", "error", err)
			return zero, err
		}
	}

	o.succeed()
	log.Debug(ctx, "request succeeded", "status", resp.StatusCode)
	return data, nil
}

func decode[T any](body []byte) (T, error) {
	var env models.Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return env.Data, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if env.Code != 0 {
		return env.Data, &appError{code: env.Code, msg: env.Msg}
	}
	if v, ok := any(env.Data).(models.Validator); ok {
		if err := v.Validate(); err != nil {
			return env.Data, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
	}
	return env.Data, nil
}

type appError struct {
	code int
	msg  string
}

func (e *appError) Error() string {
	return fmt.Sprintf("application error %d: %s", e.code, e.msg)
}

func (e *appError) Unwrap() error { return ErrApplication }

func errorMessage(err error) string {
	var ae *appError
	if errors.As(err, &ae) && ae.msg != "" {
		return ae.msg
	}
	return err.Error()
}

func (o *Orchestrator) begin() {
	o.mu.Lock()
	o.state = State{Loading: true, Error: models.ErrorRecord{Status: false}}
	o.notifyLocked()
}

func (o *Orchestrator) fail(message string) {
	o.mu.Lock()
	o.state = State{Loading: false, Error: models.ErrorRecord{Status: true, Message: message}}
	o.notifyLocked()
}

func (o *Orchestrator) succeed() {
	o.mu.Lock()
	if o.delay <= 0 || o.closed {
		o.state.Loading = false
		o.notifyLocked()
		return
	}

	// registered under the lock, so the callback always finds its own entry
	var timer *time.Timer
	timer = time.AfterFunc(o.delay, func() {
		o.mu.Lock()
		if _, ok := o.timers[timer]; !ok {
			o.mu.Unlock()
			return
		}
		delete(o.timers, timer)
		o.state.Loading = false
		o.notifyLocked()
	})
	o.timers[timer] = struct{}{}
	o.mu.Unlock()
}

// notifyLocked releases o.mu and then calls the subscribers with the state
// as it was under the lock. Notifications are delivered one at a time; one
// that lost the race to a newer state is dropped, so subscribers never see
// an older state after a newer one.
func (o *Orchestrator) notifyLocked() {
	o.seq++
	seq, st := o.seq, o.state
	subs := make([]func(State), 0, len(o.subscribers))
	for _, fn := range o.subscribers {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	o.deliver.Lock()
	defer o.deliver.Unlock()
	if seq < o.delivered {
		return
	}
	o.delivered = seq

	for _, fn := range subs {
		fn(st)
	}
}

func (o *Orchestrator) Loading() bool {
	return o.Snapshot().Loading
}

func (o *Orchestrator) Error() models.ErrorRecord {
	return o.Snapshot().Error
}

func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers fn to be called on state changes. fn must not start a
// request. The returned func removes it.
func (o *Orchestrator) Subscribe(fn func(State)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSubID
	o.nextSubID++
	o.subscribers[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subscribers, id)
	}
}

// Close cancels pending trailing timers and lowers the loading flag.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for t := range o.timers {
		t.Stop()
		delete(o.timers, t)
	}
	o.closed = true
	o.state.Loading = false
}
