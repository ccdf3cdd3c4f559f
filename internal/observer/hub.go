// Package observer maintains the set of subscribed observers and fans out
// change notifications when the directory mutates. The hub holds only
// references to observers, never their lifecycle: unsubscribing or a dead
// endpoint leaves the directory untouched.
package observer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"contactd/internal/directory"
	"contactd/pkg/types"
)

const defaultDeliveryTimeout = 5 * time.Second

// Observer is an external endpoint the hub pushes events to.
type Observer interface {
	OnEvent(ctx context.Context, e directory.Event) error
}

// Hub is the subscriber set plus fan-out. Subscribe/unsubscribe take the set
// lock; notification delivery runs concurrently outside it, each delivery
// under its own bounded timeout.
type Hub struct {
	mu      sync.Mutex
	subs    map[string]Observer
	refs    map[string]types.ObjectRef
	timeout time.Duration
	log     zerolog.Logger
	baseCtx context.Context
}

// NewHub builds an empty hub. timeout bounds each individual delivery;
// zero or negative selects the default.
func NewHub(timeout time.Duration, log zerolog.Logger) *Hub {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &Hub{
		subs:    make(map[string]Observer),
		refs:    make(map[string]types.ObjectRef),
		timeout: timeout,
		log:     log,
		baseCtx: context.Background(),
	}
}

// SetBaseContext sets the process-level context deliveries from Publish run
// under, so shutdown cancels in-flight webhook posts. Defaults to Background.
func (h *Hub) SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	h.mu.Lock()
	h.baseCtx = ctx
	h.mu.Unlock()
}

// Subscribe adds obs under ref's handle. Idempotent: re-subscribing the same
// handle replaces the stored observer without duplicating deliveries.
func (h *Hub) Subscribe(ref types.ObjectRef, obs Observer) {
	h.mu.Lock()
	h.subs[ref.Handle] = obs
	h.refs[ref.Handle] = ref
	h.mu.Unlock()
}

// Unsubscribe removes the observer for handle. Removing a handle that was
// never subscribed is a no-op, not an error.
func (h *Hub) Unsubscribe(handle string) {
	h.mu.Lock()
	delete(h.subs, handle)
	delete(h.refs, handle)
	h.mu.Unlock()
}

// Subscribed reports whether handle currently has an observer.
func (h *Hub) Subscribed(handle string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.subs[handle]
	return ok
}

// Observers returns a snapshot of the current subscriptions.
func (h *Hub) Observers() []types.ObjectRef {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.ObjectRef, 0, len(h.refs))
	for _, ref := range h.refs {
		out = append(out, ref)
	}
	return out
}

// Notify delivers e to every current subscriber. Deliveries run concurrently;
// one observer failing or timing out never prevents delivery to the others.
// The returned error joins the individual delivery failures and is advisory:
// the mutation that triggered the notification has already succeeded.
func (h *Hub) Notify(ctx context.Context, e directory.Event) error {
	h.mu.Lock()
	targets := make(map[string]Observer, len(h.subs))
	for handle, obs := range h.subs {
		targets[handle] = obs
	}
	h.mu.Unlock()

	notificationsTotal.WithLabelValues(e.Kind).Inc()
	if len(targets) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(targets))
	for handle, obs := range targets {
		wg.Add(1)
		go func(handle string, obs Observer) {
			defer wg.Done()
			dctx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()
			if err := obs.OnEvent(dctx, e); err != nil {
				deliveriesTotal.WithLabelValues("error").Inc()
				errCh <- ErrDelivery(handle, err)
				return
			}
			deliveriesTotal.WithLabelValues("ok").Inc()
		}(handle, obs)
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Publish implements directory.EventPublisher: fan out in the background of
// the mutating call and log failures instead of surfacing them to it.
func (h *Hub) Publish(e directory.Event) {
	h.mu.Lock()
	ctx := h.baseCtx
	h.mu.Unlock()
	if err := h.Notify(ctx, e); err != nil {
		h.log.Warn().Err(err).Str("kind", e.Kind).Msg("observer delivery failed")
	}
}
