package sync

import (
	"context"
	"sync/atomic"
	"time"

	"pos-sync-service/apperrors"
	"pos-sync-service/remote"
	"pos-sync-service/storage"

	"go.uber.org/zap"
)

// RemoteAPI is the slice of the backoffice client the manager needs.
type RemoteAPI interface {
	SyncOrders(ctx context.Context, batch remote.SyncBatch) error
}

// Manager reconciles locally-mutated rows with the backoffice. It never
// blocks local operations and tolerates redundant or concurrent triggers:
// overlapping triggers coalesce into a no-op while a cycle is in flight.
//
// Concurrent edits to the same order from two terminals are not reconciled
// here; the remote side resolves them last-write-wins.
type Manager struct {
	store      *storage.Store
	remote     RemoteAPI
	log        *zap.Logger
	maxRetries int
	baseDelay  time.Duration
	inFlight   atomic.Bool
}

func NewManager(store *storage.Store, remoteAPI RemoteAPI, log *zap.Logger, maxRetries int, baseDelay time.Duration) *Manager {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return &Manager{
		store:      store,
		remote:     remoteAPI,
		log:        log,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// SyncDataWithRetry runs one sync cycle, retrying with exponential backoff
// up to the attempt cap. After exhaustion it logs and returns nil: rows stay
// unsynced and the next trigger picks them up, so no data is lost. A trigger
// arriving while a cycle is in flight returns apperrors.SyncInProgress.
func (m *Manager) SyncDataWithRetry(ctx context.Context) error {
	if !m.inFlight.CompareAndSwap(false, true) {
		m.log.Debug("sync trigger coalesced; cycle already in flight")
		return apperrors.SyncInProgress
	}
	defer m.inFlight.Store(false)

	delay := m.baseDelay
	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		err := m.syncOnce(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		m.log.Warn("sync attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", m.maxRetries),
			zap.Error(err))

		if attempt == m.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	m.log.Error("sync cycle aborted; rows remain unsynced until the next trigger",
		zap.Error(lastErr))
	return nil
}

// syncOnce is one scan→push→acknowledge pass. An empty scan ends the cycle
// without a remote call. On remote failure all rows are left untouched.
func (m *Manager) syncOnce(ctx context.Context) error {
	orders, err := m.store.UnsyncedOrders(ctx)
	if err != nil {
		return err
	}
	items, err := m.store.UnsyncedItems(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 && len(items) == 0 {
		m.log.Debug("nothing to sync")
		return nil
	}

	batch := remote.SyncBatch{Orders: orders, Items: items}
	if err := m.remote.SyncOrders(ctx, batch); err != nil {
		return err
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.OrderID)
	}
	itemIDs := make([]uint, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	if err := m.store.MarkSynced(ctx, orderIDs, itemIDs); err != nil {
		return err
	}
	m.log.Info("sync cycle completed",
		zap.Int("orders", len(orders)),
		zap.Int("items", len(items)))
	return nil
}

// TriggerAsync fires a sync cycle in the background, for callers that must
// not wait on it, like the post-completion hook in the order repository.
func (m *Manager) TriggerAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := m.SyncDataWithRetry(ctx); err != nil && !apperrors.Is(err, apperrors.CodeSyncInProgress) {
			m.log.Warn("background sync trigger failed", zap.Error(err))
		}
	}()
}
