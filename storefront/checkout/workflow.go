// Package checkout drives the cart through review, confirmation and
// order submission, reconciling state with the backend outcome.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dombialcz/SevenTestsShop/storefront/cart"
	"github.com/dombialcz/SevenTestsShop/storefront/catalog"
	"go.uber.org/zap"
)

// State is the workflow position.
type State int

const (
	// StateReviewing: cart is editable, checkout not yet requested.
	StateReviewing State = iota
	// StateConfirming: cart frozen for display as an order summary.
	StateConfirming
	// StateSubmitting: order in flight; confirm is not accepted.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateReviewing:
		return "reviewing"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// User-facing notices. The two failure texts are deliberately distinct.
const (
	NoticeOrderPlaced = "Order placed successfully!"
	NoticeOrderFailed = "Failed to place order. Please try again."
	NoticeNetwork     = "Error placing order. Please check your network connection."
)

var (
	ErrEmptyCart      = errors.New("cannot check out an empty cart")
	ErrNotConfirming  = errors.New("checkout is not awaiting confirmation")
	ErrNotReviewing   = errors.New("checkout already in progress")
	ErrSubmitInFlight = errors.New("order submission already in flight")
)

// Submitter posts an order payload. *catalog.Client satisfies it.
type Submitter interface {
	SubmitOrder(ctx context.Context, payload catalog.OrderPayload) (*catalog.OrderResponse, error)
}

// Workflow owns the review-confirm-submit state machine for one cart.
type Workflow struct {
	mu         sync.Mutex
	cart       *cart.Store
	api        Submitter
	log        *zap.Logger
	state      State
	notice     string
	inFlight   bool
	clearDelay time.Duration
	clearTimer *time.Timer
	closed     bool
	subs       []func(state State, notice string)
}

// NewWorkflow returns a workflow in StateReviewing. clearDelay is how
// long the success notice stays up before the cart is cleared.
func NewWorkflow(c *cart.Store, api Submitter, clearDelay time.Duration, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{
		cart:       c,
		api:        api,
		log:        log,
		state:      StateReviewing,
		clearDelay: clearDelay,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Notice returns the current transient user notice, if any.
func (w *Workflow) Notice() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notice
}

// OnChange registers a callback invoked after every state or notice
// transition.
func (w *Workflow) OnChange(fn func(state State, notice string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs = append(w.subs, fn)
}

// Begin moves Reviewing to Confirming. An empty cart makes checkout
// unreachable.
func (w *Workflow) Begin() error {
	w.mu.Lock()
	if w.state != StateReviewing {
		w.mu.Unlock()
		return ErrNotReviewing
	}
	if w.cart.Len() == 0 {
		w.mu.Unlock()
		return ErrEmptyCart
	}
	w.state = StateConfirming
	w.notice = ""
	w.notifyLocked()
	return nil
}

// Cancel moves Confirming back to Reviewing.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	if w.state != StateConfirming {
		w.mu.Unlock()
		return ErrNotConfirming
	}
	w.state = StateReviewing
	w.notice = ""
	w.notifyLocked()
	return nil
}

// Confirm submits the order: exactly one network call per accepted
// confirm. The in-flight guard stands on its own; hiding the confirm
// control in a UI is not sufficient. On success the cart is cleared
// after the display delay; on any failure the cart is untouched and
// the state returns to Confirming so the user may retry or cancel.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	if w.state != StateConfirming {
		w.mu.Unlock()
		return ErrNotConfirming
	}
	w.inFlight = true
	w.state = StateSubmitting
	w.notice = ""
	payload := w.buildPayload()
	w.notifyLocked()

	resp, err := w.api.SubmitOrder(ctx, payload)

	w.mu.Lock()
	w.inFlight = false

	if err != nil {
		var statusErr *catalog.StatusError
		if errors.As(err, &statusErr) {
			w.log.Warn("Order rejected by server", zap.Int("status", statusErr.Code))
			w.notice = NoticeOrderFailed
		} else {
			w.log.Warn("Order submission transport error", zap.Error(err))
			w.notice = NoticeNetwork
		}
		w.state = StateConfirming
		w.notifyLocked()
		return nil
	}

	w.log.Info("Order placed", zap.String("order_id", resp.OrderID))
	w.notice = NoticeOrderPlaced
	w.clearTimer = time.AfterFunc(w.clearDelay, w.finishSuccess)
	w.notifyLocked()
	return nil
}

// finishSuccess runs after the success notice delay: clear the cart
// and reset to Reviewing. Skipped if the workflow was closed first.
func (w *Workflow) finishSuccess() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.cart.Clear(context.Background())

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.state = StateReviewing
	w.notice = ""
	w.notifyLocked()
}

// Close cancels any pending success timer so a stale callback cannot
// mutate state after the owning view is gone.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.clearTimer != nil {
		w.clearTimer.Stop()
		w.clearTimer = nil
	}
}

// buildPayload snapshots the cart into an immutable order payload.
// Caller holds the mutex.
func (w *Workflow) buildPayload() catalog.OrderPayload {
	items := w.cart.Items()
	lines := make([]catalog.OrderLine, 0, len(items))
	for _, item := range items {
		line := catalog.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		if item.Customization != nil {
			line.CustomCoffee = item.Customization
		}
		lines = append(lines, line)
	}
	return catalog.OrderPayload{
		Items:       lines,
		TotalAmount: w.cart.Total(),
	}
}

// notifyLocked snapshots state, unlocks, and invokes subscribers.
func (w *Workflow) notifyLocked() {
	state, notice := w.state, w.notice
	subs := make([]func(State, string), len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(state, notice)
	}
}
