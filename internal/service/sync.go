package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
)

// Syncer serializes the entire session cache into the entity store. Flushes
// run one at a time under their own mutex, independent of the session mutex,
// so a slow database never blocks logins or store edits.
//
// A flush works on a deep snapshot of the cache: unseen entities are created
// bottom-up (elements, then decks, then users) with their new ids written
// into the snapshot, already-persisted entities are staged into three bulk
// replace batches, and finally the new ids are backfilled into the live
// records that still lack them. There is no rollback: ids assigned before a
// failure are kept so a retried flush does not create those entities twice.
type Syncer struct {
	mu sync.Mutex

	sessions *Session
	users    model.UserStore
	decks    model.DeckStore
	elements model.ElementStore
	logger   *logger.Logger
}

func NewSyncer(
	sessions *Session,
	users model.UserStore,
	decks model.DeckStore,
	elements model.ElementStore,
	logger *logger.Logger,
) *Syncer {
	return &Syncer{
		sessions: sessions,
		users:    users,
		decks:    decks,
		elements: elements,
		logger:   logger,
	}
}

// Schedule runs a flush in the background. Mutating requests call it after
// they complete; failures are logged and never surfaced to the client.
func (s *Syncer) Schedule() {
	go func() {
		if err := s.Flush(context.Background()); err != nil {
			s.logger.Error("Syncer: background save failed", "error", err.Error())
		}
	}()
}

// Flush persists the whole cache. At most one flush runs at a time; callers
// requesting one while another is in flight queue behind it.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := s.capture()
	err := s.persist(ctx, plan)
	s.backfill(plan)

	if err != nil {
		s.logger.Error("Syncer: flush failed", "error", err.Error())
		return fmt.Errorf("writing to database failed: %w", err)
	}

	s.logger.Debug("Syncer: flush completed", "sessions", len(plan.users))
	return nil
}

// userLink pairs a snapshot entity with the live cache entity it was copied
// from, for records that still need an id assigned.
type userLink struct{ snapshot, live *model.User }
type deckLink struct{ snapshot, live *model.Deck }
type elementLink struct{ snapshot, live *model.Element }

type flushPlan struct {
	users []*model.User

	userLinks    []userLink
	deckLinks    []deckLink
	elementLinks []elementLink
}

// capture deep-copies the cache under the session lock. No I/O happens here,
// so accessors are blocked only for the duration of the copy.
func (s *Syncer) capture() *flushPlan {
	sess := s.sessions
	sess.mu.Lock()
	defer sess.mu.Unlock()

	plan := &flushPlan{}
	for _, email := range sess.emails() {
		live := sess.sessions[email]
		snapshot := live.Clone()
		plan.users = append(plan.users, snapshot)

		if live.ID.IsZero() {
			plan.userLinks = append(plan.userLinks, userLink{snapshot: snapshot, live: live})
		}
		for di, liveDeck := range live.Store {
			snapshotDeck := snapshot.Store[di]
			if liveDeck.ID.IsZero() {
				plan.deckLinks = append(plan.deckLinks, deckLink{snapshot: snapshotDeck, live: liveDeck})
			}
			for pi, livePage := range liveDeck.Pages {
				snapshotPage := snapshotDeck.Pages[pi]
				for ei, liveElement := range livePage.Elements {
					if liveElement.ID.IsZero() {
						plan.elementLinks = append(plan.elementLinks, elementLink{
							snapshot: snapshotPage.Elements[ei],
							live:     liveElement,
						})
					}
				}
			}
		}
	}
	return plan
}

// persist walks the snapshot bottom-up. Entities without an id are created
// immediately and the assigned id recorded on the snapshot; the rest are
// staged and written as three bulk batches, children first.
func (s *Syncer) persist(ctx context.Context, plan *flushPlan) error {
	var elementBatch []*model.Element
	var deckBatch []*model.Deck
	var userBatch []*model.User

	for _, user := range plan.users {
		for _, deck := range user.Store {
			for _, page := range deck.Pages {
				for _, element := range page.Elements {
					if element.ID.IsZero() {
						id, err := s.elements.Create(ctx, element)
						if err != nil {
							return fmt.Errorf("failed to create element: %w", err)
						}
						element.ID = id
					} else {
						elementBatch = append(elementBatch, element)
					}
				}
			}

			if deck.ID.IsZero() {
				id, err := s.decks.Create(ctx, deck)
				if err != nil {
					return fmt.Errorf("failed to create deck: %w", err)
				}
				deck.ID = id
			} else {
				deckBatch = append(deckBatch, deck)
			}
		}

		if user.ID.IsZero() {
			id, err := s.users.Create(ctx, user)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			user.ID = id
		} else {
			userBatch = append(userBatch, user)
		}
	}

	if err := s.elements.BulkReplace(ctx, elementBatch); err != nil {
		return fmt.Errorf("failed to write element batch: %w", err)
	}
	if err := s.decks.BulkReplace(ctx, deckBatch); err != nil {
		return fmt.Errorf("failed to write deck batch: %w", err)
	}
	if err := s.users.BulkReplace(ctx, userBatch); err != nil {
		return fmt.Errorf("failed to write user batch: %w", err)
	}
	return nil
}

// backfill copies ids assigned during persist back into the live records.
// It runs even after a failed persist so partial creations are not repeated
// on the next flush. A live record replaced by SetStore since the capture
// keeps its zero id and is simply created again next time.
func (s *Syncer) backfill(plan *flushPlan) {
	sess := s.sessions
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, l := range plan.elementLinks {
		if l.live.ID.IsZero() && !l.snapshot.ID.IsZero() {
			l.live.ID = l.snapshot.ID
		}
	}
	for _, l := range plan.deckLinks {
		if l.live.ID.IsZero() && !l.snapshot.ID.IsZero() {
			l.live.ID = l.snapshot.ID
		}
	}
	for _, l := range plan.userLinks {
		if l.live.ID.IsZero() && !l.snapshot.ID.IsZero() {
			l.live.ID = l.snapshot.ID
		}
	}
}
