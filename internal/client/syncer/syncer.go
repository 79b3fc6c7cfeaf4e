// Package syncer keeps the three user-scoped collections (cart, favourites,
// comparison set) eventually consistent with the server.
//
// Each collection is tracked by a version counter bumped on every local
// mutation. At most one push per collection is in flight at any time; a
// mutation that lands while a push is outstanding is picked up by the
// re-evaluation that runs when the push settles, so no change is ever
// dropped. The snapshot recorded as "last pushed" is the one that was
// actually sent, which may already be stale by the time the push completes.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/transport"
	"github.com/dmitrijs2005/shopsync/internal/logging"
)

// Kind identifies one synchronized collection. The value doubles as the
// resource's path segment on the server.
type Kind string

const (
	KindCart    Kind = "cart"
	KindFavs    Kind = "favs"
	KindCompare Kind = "compare"
)

// Kinds lists every synchronized collection.
func Kinds() []Kind {
	return []Kind{KindCart, KindFavs, KindCompare}
}

// itemsPayload is the wire shape for both directions: GET responses and PUT
// bodies.
type itemsPayload struct {
	Items []models.Item `json:"items"`
}

// resource is the tracking state for one collection.
type resource struct {
	local      []models.Item
	lastPushed []models.Item

	// version counts local mutations; pushedVersion is the version captured
	// by the most recently settled push attempt. They differ exactly when
	// there are unsynchronized local changes.
	version       uint64
	pushedVersion uint64

	inFlight bool
}

// Synchronizer watches the collections for one authenticated user and pushes
// snapshots through the gated transport.
type Synchronizer struct {
	api    transport.Requester
	logger logging.Logger

	mu        sync.Mutex
	userID    string
	resources map[Kind]*resource

	wg sync.WaitGroup
}

func New(api transport.Requester, logger logging.Logger) *Synchronizer {
	s := &Synchronizer{
		api:       api,
		logger:    logger.With("component", "syncer"),
		resources: make(map[Kind]*resource),
	}
	for _, kind := range Kinds() {
		s.resources[kind] = &resource{}
	}
	return s
}

// Activate binds the synchronizer to userID and replaces every local
// snapshot with the server's copy, marking all collections clean so the
// first change detection is a no-op.
func (s *Synchronizer) Activate(ctx context.Context, userID string) error {
	for _, kind := range Kinds() {
		var resp itemsPayload
		if err := s.api.Request(ctx, http.MethodGet, resourcePath(kind, userID), nil, &resp); err != nil {
			return fmt.Errorf("failed to load %s: %w", kind, err)
		}

		s.mu.Lock()
		r := s.resources[kind]
		r.local = models.CloneItems(resp.Items)
		r.lastPushed = models.CloneItems(resp.Items)
		r.pushedVersion = r.version
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	s.logger.Info(ctx, "activated", "user", userID)
	return nil
}

// Deactivate detaches the synchronizer from the current user. In-flight
// pushes settle but schedule no successors.
func (s *Synchronizer) Deactivate() {
	s.mu.Lock()
	s.userID = ""
	for _, r := range s.resources {
		r.local = nil
		r.lastPushed = nil
		r.pushedVersion = r.version
	}
	s.mu.Unlock()
}

// Items returns a copy of the current local snapshot for kind.
func (s *Synchronizer) Items(kind Kind) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneItems(s.resources[kind].local)
}

// Set replaces the local snapshot for kind. The mutation bumps the version
// counter and triggers change detection.
func (s *Synchronizer) Set(kind Kind, items []models.Item) {
	s.Update(kind, func([]models.Item) []models.Item {
		return models.CloneItems(items)
	})
}

// Update applies fn to a copy of the local snapshot and installs the result.
// This is the reducer entry point: local state changes immediately and the
// push happens in the background.
func (s *Synchronizer) Update(kind Kind, fn func(items []models.Item) []models.Item) {
	s.mu.Lock()
	r := s.resources[kind]
	r.local = fn(models.CloneItems(r.local))
	r.version++
	s.mu.Unlock()

	s.evaluate(kind)
}

// Unsynced reports whether kind has local changes no settled push has
// carried yet.
func (s *Synchronizer) Unsynced(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.resources[kind]
	return r.version != r.pushedVersion
}

// Wait blocks until every outstanding push (including follow-ups scheduled
// by settling pushes) has completed.
func (s *Synchronizer) Wait() {
	s.wg.Wait()
}

// evaluate runs change detection for kind and dispatches a push when the
// collection is dirty and nothing is in flight. Called on both triggers the
// correctness argument needs: local mutation and push completion.
func (s *Synchronizer) evaluate(kind Kind) {
	s.mu.Lock()
	r := s.resources[kind]

	if s.userID == "" || r.inFlight || r.version == r.pushedVersion {
		s.mu.Unlock()
		return
	}

	// The counters differ but the content may not (e.g. an add immediately
	// undone). Settle without a network round trip.
	if models.ItemsEqual(r.local, r.lastPushed) {
		r.pushedVersion = r.version
		s.mu.Unlock()
		return
	}

	r.inFlight = true
	snapshot := models.CloneItems(r.local)
	version := r.version
	userID := s.userID
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.push(kind, userID, snapshot, version)
	}()
}

// push sends snapshot and settles the resource. Success and failure both
// count as an attempt: the guard clears, the attempted snapshot is recorded,
// and detection re-runs to catch mutations that raced the round trip.
func (s *Synchronizer) push(kind Kind, userID string, snapshot []models.Item, version uint64) {
	ctx := context.Background()
	err := s.api.Request(ctx, http.MethodPut, resourcePath(kind, userID), itemsPayload{Items: snapshot}, nil)

	s.mu.Lock()
	r := s.resources[kind]
	r.inFlight = false
	r.pushedVersion = version
	r.lastPushed = snapshot

	if err != nil && (errors.Is(err, transport.ErrUnauthenticated) || errors.Is(err, transport.ErrForbidden)) {
		// The transport already evicted the credential store; stop pushing
		// until a new session activates us.
		s.userID = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error(ctx, "push failed", "kind", kind, "user", userID, "error", err)
	} else {
		s.logger.Debug(ctx, "push settled", "kind", kind, "user", userID, "items", len(snapshot))
	}

	s.evaluate(kind)
}

func resourcePath(kind Kind, userID string) string {
	return "/" + string(kind) + "/" + userID
}
