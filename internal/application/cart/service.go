package cartapp

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/cart"
	"github.com/zaylo/backend/internal/domain/shared"
)

// Snapshot is the service's local view of one session's cart. It is a cache
// of the last backend response, never authoritative.
type Snapshot struct {
	Cart       *cart.Cart `json:"cart"`
	DrawerOpen bool       `json:"drawer_open"`
}

// Service synchronizes per-session carts with the remote commerce backend.
// Cart identity is persisted in the IDStore keyed by an opaque session key;
// the snapshot map is guarded only against data races. Calls for the same
// session are not serialized: the backend is the point of serialization, and
// every successful mutation replaces the whole snapshot with its response.
type Service struct {
	gateway cart.Gateway
	ids     cart.IDStore
	logger  *zap.Logger

	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewService creates a cart service.
func NewService(gateway cart.Gateway, ids cart.IDStore, logger *zap.Logger) *Service {
	return &Service{
		gateway:   gateway,
		ids:       ids,
		logger:    logger.Named("cart"),
		snapshots: make(map[string]*Snapshot),
	}
}

// Initialize returns the session's cart, fetching the persisted one when it
// still exists and creating a new remote cart otherwise. The fallback paths
// issue exactly one create call.
func (s *Service) Initialize(ctx context.Context, key string) (*cart.Cart, error) {
	cartID, err := s.ids.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if cartID != "" {
		existing, err := s.gateway.GetCart(ctx, cartID)
		if err == nil && existing != nil {
			s.replaceSnapshot(key, existing, false)
			return existing, nil
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("persisted cart fetch failed, creating a new cart",
				zap.String("cart_id", cartID), zap.Error(err))
		}
	}

	return s.createCart(ctx, key)
}

// AddItem adds one variant to the session's cart, bootstrapping a cart first
// when none exists. At most one add call is issued; on failure the local
// snapshot is left unchanged.
func (s *Service) AddItem(ctx context.Context, key, variantID string, quantity int) (*cart.Cart, error) {
	input := cart.LineInput{MerchandiseID: variantID, Quantity: quantity}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cartID, err := s.ids.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if cartID == "" {
		created, err := s.createCart(ctx, key)
		if err != nil {
			return nil, err
		}
		cartID = created.ID
	}

	updated, err := s.gateway.AddLines(ctx, cartID, []cart.LineInput{input})
	if err != nil {
		s.logger.Warn("add to cart failed",
			zap.String("variant_id", variantID), zap.Error(err))
		return nil, err
	}

	s.replaceSnapshot(key, updated, true)
	return updated, nil
}

// RemoveItem removes a line from the session's cart. Without an existing
// cart this is a no-op: there is nothing to remove from.
func (s *Service) RemoveItem(ctx context.Context, key, lineID string) (*cart.Cart, error) {
	if lineID == "" {
		return nil, cart.ErrEmptyLineID
	}

	cartID, err := s.ids.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if cartID == "" {
		return nil, nil
	}

	updated, err := s.gateway.RemoveLines(ctx, cartID, []string{lineID})
	if err != nil {
		s.logger.Warn("remove from cart failed",
			zap.String("line_id", lineID), zap.Error(err))
		return nil, err
	}

	s.replaceSnapshot(key, updated, s.drawerOpen(key))
	return updated, nil
}

// UpdateItem changes a line's quantity. Without an existing cart this is a
// no-op.
func (s *Service) UpdateItem(ctx context.Context, key, lineID string, quantity int) (*cart.Cart, error) {
	update := cart.LineUpdate{LineID: lineID, Quantity: quantity}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	cartID, err := s.ids.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if cartID == "" {
		return nil, nil
	}

	updated, err := s.gateway.UpdateLines(ctx, cartID, []cart.LineUpdate{update})
	if err != nil {
		s.logger.Warn("cart quantity update failed",
			zap.String("line_id", lineID), zap.Error(err))
		return nil, err
	}

	s.replaceSnapshot(key, updated, s.drawerOpen(key))
	return updated, nil
}

// Current returns the local snapshot for a session, nil when none exists.
func (s *Service) Current(key string) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[key]
}

// CloseDrawer clears the drawer-open flag set by a successful add.
func (s *Service) CloseDrawer(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot, ok := s.snapshots[key]; ok {
		snapshot.DrawerOpen = false
	}
}

// createCart creates a remote cart and persists its ID for the session.
func (s *Service) createCart(ctx context.Context, key string) (*cart.Cart, error) {
	created, err := s.gateway.CreateCart(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ids.Save(ctx, key, created.ID); err != nil {
		return nil, err
	}
	s.replaceSnapshot(key, created, false)
	s.logger.Info("cart created", zap.String("cart_id", created.ID))
	return created, nil
}

// drawerOpen reports the session's current drawer flag so line mutations
// other than add preserve it.
func (s *Service) drawerOpen(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if snapshot, ok := s.snapshots[key]; ok {
		return snapshot.DrawerOpen
	}
	return false
}

// replaceSnapshot swaps in a whole new snapshot for the session.
func (s *Service) replaceSnapshot(key string, c *cart.Cart, drawerOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = &Snapshot{Cart: c, DrawerOpen: drawerOpen}
}
