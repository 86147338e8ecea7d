package enrollment

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/coursely/coursely/core"
)

// Change describes an effective mutation of the Store.
type Change struct {
	Slug     string
	Enrolled bool     // state of Slug after the change
	Slugs    []string // snapshot of the whole set after the change
}

// Listener is notified synchronously after every effective mutation, in mutation order.
// Listeners may subscribe or unsubscribe but must not mutate the Store.
type Listener func(Change)

// slugSet is never modified once published.
type slugSet struct {
	order []string
	index map[string]struct{}
}

func newSlugSet(slugs []string) *slugSet {
	set := &slugSet{
		order: make([]string, 0, len(slugs)),
		index: make(map[string]struct{}, len(slugs)),
	}
	for _, slug := range slugs {
		slug = core.CleanSlug(slug)
		if _, ok := set.index[slug]; ok || slug == "" {
			continue
		}
		set.order = append(set.order, slug)
		set.index[slug] = struct{}{}
	}
	return set
}

func (s *slugSet) has(slug string) bool {
	_, ok := s.index[slug]
	return ok
}

func (s *slugSet) slugs() []string {
	cp := make([]string, len(s.order))
	copy(cp, s.order)
	return cp
}

// Store holds the slugs of the courses the current user is enrolled in.
// Reads are lock-free; every mutation publishes a fresh set (copy-on-write).
type Store struct {
	mu  sync.Mutex // serializes writers
	set atomic.Pointer[slugSet]

	lmu       sync.Mutex // guards listeners & nextID
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a Store seeded with the given slugs. Blank and duplicate slugs are dropped.
func NewStore(seed ...string) *Store {
	s := &Store{listeners: make(map[int]Listener)}
	s.set.Store(newSlugSet(seed))
	return s
}

// Enroll adds slug to the set. It is a no-op if slug is blank or already enrolled.
func (s *Store) Enroll(slug string) {
	slug = core.CleanSlug(slug)
	if slug == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.set.Load()
	if cur.has(slug) {
		return
	}
	next := make([]string, 0, len(cur.order)+1)
	next = append(next, cur.order...)
	next = append(next, slug)
	s.publish(newSlugSet(next), Change{Slug: slug, Enrolled: true})
}

// Unenroll removes slug from the set. It is a no-op if slug is blank or not enrolled.
func (s *Store) Unenroll(slug string) {
	slug = core.CleanSlug(slug)
	if slug == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.set.Load()
	if !cur.has(slug) {
		return
	}
	next := make([]string, 0, len(cur.order)-1)
	for _, sl := range cur.order {
		if sl != slug {
			next = append(next, sl)
		}
	}
	s.publish(newSlugSet(next), Change{Slug: slug, Enrolled: false})
}

// Replace swaps the whole set for slugs. Listeners get a Change with an empty Slug.
func (s *Store) Replace(slugs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(newSlugSet(slugs), Change{})
}

func (s *Store) IsEnrolled(slug string) bool {
	return s.set.Load().has(core.CleanSlug(slug))
}

// List returns the enrolled slugs in enrollment order. The returned slice is owned by the caller.
func (s *Store) List() []string {
	return s.set.Load().slugs()
}

func (s *Store) Len() int {
	return len(s.set.Load().order)
}

// Subscribe registers l and returns a func removing it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

// publish must be called with s.mu held. Listeners are called on a snapshot,
// outside of s.lmu.
func (s *Store) publish(next *slugSet, ch Change) {
	s.set.Store(next)

	s.lmu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, l := range ls {
		ch.Slugs = next.slugs()
		l(ch)
	}
}
