package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dombialcz/SevenTestsShop/storefront/cart"
	"github.com/dombialcz/SevenTestsShop/storefront/catalog"
	"github.com/dombialcz/SevenTestsShop/storefront/coffee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 100 * time.Millisecond

func newCartWithItems(t *testing.T) *cart.Store {
	t.Helper()
	ctx := context.Background()
	store := cart.NewStore(ctx, cart.NewMemorySlot(), nil)
	store.AddItem(ctx, catalog.Product{ID: "1", Name: "Espresso", Price: 3.99}, 2, nil)
	store.AddItem(ctx, catalog.Product{ID: "c1", Name: "Custom Coffee", Price: 5.99}, 1,
		&coffee.Customization{Size: "large", Strength: 3})
	return store
}

func orderServer(t *testing.T, status int, calls *atomic.Int32, lastPayload *catalog.OrderPayload) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if lastPayload != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(lastPayload))
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"success": status < 300, "orderId": "abc123"})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	store := cart.NewStore(context.Background(), cart.NewMemorySlot(), nil)
	w := NewWorkflow(store, nil, testDelay, nil)

	err := w.Begin()

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateReviewing, w.State())
}

func TestCancelReturnsToReviewing(t *testing.T) {
	w := NewWorkflow(newCartWithItems(t), nil, testDelay, nil)
	require.NoError(t, w.Begin())
	require.Equal(t, StateConfirming, w.State())

	require.NoError(t, w.Cancel())

	assert.Equal(t, StateReviewing, w.State())
}

func TestConfirmOutsideConfirmingIsRejected(t *testing.T) {
	w := NewWorkflow(newCartWithItems(t), nil, testDelay, nil)

	err := w.Confirm(context.Background())

	assert.ErrorIs(t, err, ErrNotConfirming)
}

func TestConfirmSuccessClearsCartAfterDelay(t *testing.T) {
	store := newCartWithItems(t)
	var calls atomic.Int32
	var payload catalog.OrderPayload
	server := orderServer(t, http.StatusCreated, &calls, &payload)

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)
	require.NoError(t, w.Begin())
	require.NoError(t, w.Confirm(context.Background()))

	// success notice is up, cart not yet cleared
	assert.Equal(t, NoticeOrderPlaced, w.Notice())
	assert.Equal(t, 2, store.Len())

	assert.Eventually(t, func() bool {
		return w.State() == StateReviewing && store.Len() == 0
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "1", payload.Items[0].ProductID)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	assert.NotNil(t, payload.Items[1].CustomCoffee)
	assert.InDelta(t, 13.97, payload.TotalAmount, 1e-9)
}

func TestConfirmRejectedKeepsCart(t *testing.T) {
	store := newCartWithItems(t)
	server := orderServer(t, http.StatusInternalServerError, nil, nil)

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)
	require.NoError(t, w.Begin())
	require.NoError(t, w.Confirm(context.Background()))

	assert.Equal(t, StateConfirming, w.State())
	assert.Equal(t, NoticeOrderFailed, w.Notice())
	assert.Equal(t, 2, store.Len())
}

func TestConfirmNetworkErrorIsDistinct(t *testing.T) {
	store := newCartWithItems(t)
	server := orderServer(t, http.StatusCreated, nil, nil)
	server.Close() // transport error: no response at all

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)
	require.NoError(t, w.Begin())
	require.NoError(t, w.Confirm(context.Background()))

	assert.Equal(t, StateConfirming, w.State())
	assert.Equal(t, NoticeNetwork, w.Notice())
	assert.Equal(t, 2, store.Len())
}

func TestConfirmRetryAfterFailure(t *testing.T) {
	store := newCartWithItems(t)
	var status atomic.Int32
	status.Store(http.StatusBadRequest)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "orderId": "abc123"})
	}))
	t.Cleanup(server.Close)

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)
	require.NoError(t, w.Begin())
	require.NoError(t, w.Confirm(context.Background()))
	require.Equal(t, StateConfirming, w.State())

	status.Store(http.StatusCreated)
	require.NoError(t, w.Confirm(context.Background()))

	assert.Eventually(t, func() bool {
		return w.State() == StateReviewing && store.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSecondConfirmWhileInFlightIsIgnored(t *testing.T) {
	store := newCartWithItems(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		close(started)
		<-release
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
	})

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)
	require.NoError(t, w.Begin())

	done := make(chan error, 1)
	go func() { done <- w.Confirm(context.Background()) }()

	<-started
	assert.ErrorIs(t, w.Confirm(context.Background()), ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCloseCancelsPendingClear(t *testing.T) {
	store := newCartWithItems(t)
	server := orderServer(t, http.StatusCreated, nil, nil)

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)
	require.NoError(t, w.Begin())
	require.NoError(t, w.Confirm(context.Background()))

	w.Close()
	time.Sleep(3 * testDelay)

	// stale callback must not fire after teardown
	assert.Equal(t, 2, store.Len())
}

func TestOnChangeObservesTransitions(t *testing.T) {
	store := newCartWithItems(t)
	server := orderServer(t, http.StatusCreated, nil, nil)

	w := NewWorkflow(store, catalog.NewClient(server.URL, nil, nil), testDelay, nil)

	var mu sync.Mutex
	var states []State
	w.OnChange(func(state State, notice string) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	require.NoError(t, w.Begin())
	require.NoError(t, w.Confirm(context.Background()))

	assert.Eventually(t, func() bool { return w.State() == StateReviewing }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, states, StateConfirming)
	assert.Contains(t, states, StateSubmitting)
}
