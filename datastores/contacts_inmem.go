package datastores

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
type ContactsInmem struct {
	mu       sync.Mutex
	ids      *IDCounter
	contacts map[ContactID]*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

// NewContactsInmem returns a store minting identifiers from ids and holding
// cs. Identifiers of cs are not checked against ids.
func NewContactsInmem(ids *IDCounter, cs ...*Contact) *ContactsInmem {
	contacts := make(map[ContactID]*Contact, len(cs))
	for _, c := range cs {
		contacts[c.ID()] = c
	}
	return &ContactsInmem{ids: ids, contacts: contacts}
}

func (s *ContactsInmem) Create(_ context.Context, name string) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := NewContact(name, s.ids)
	s.contacts[c.ID()] = c
	return c.clone(), nil
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(), nil
}

func (s *ContactsInmem) list() []*Contact {
	ids := slices.Sorted(maps.Keys(s.contacts))
	contacts := make([]*Contact, 0, len(ids))
	for _, id := range ids {
		contacts = append(contacts, s.contacts[id].clone())
	}
	return contacts
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return c.clone(), nil
}

func (s *ContactsInmem) AddNotes(_ context.Context, id ContactID, text string) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	c.AddNotes(text)
	return c.clone(), nil
}

func (s *ContactsInmem) Delete(_ context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contacts, id)
	return nil
}

// restore puts back prev under id, or drops id when prev is nil.
func (s *ContactsInmem) restore(id ContactID, prev *Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev == nil {
		delete(s.contacts, id)
		return
	}
	s.contacts[id] = prev
}

// Len returns the number of contacts held.
func (s *ContactsInmem) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}
