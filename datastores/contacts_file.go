package datastores

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ContactsFile implements [ContactsStore] on top of [ContactsInmem] and
// rewrites a YAML document at path after every mutation. A mutation whose
// document cannot be saved is undone in memory, but identifiers minted by a
// failed Create are not handed out again.
type ContactsFile struct {
	path  string
	mu    sync.Mutex // serializes mutate then save
	ids   *IDCounter
	inmem *ContactsInmem
}

var _ ContactsStore = (*ContactsFile)(nil)

type contactsDocument struct {
	NextID   ContactID       `yaml:"next_id"`
	Contacts []contactRecord `yaml:"contacts"`
}

type contactRecord struct {
	ID    ContactID `yaml:"id"`
	Name  string    `yaml:"name"`
	Notes string    `yaml:"notes,omitempty"`
}

// OpenContactsFile loads the contacts stored at path, if any, and resumes ids
// past every identifier found there. A missing file yields an empty store and
// leaves ids untouched.
func OpenContactsFile(path string, ids *IDCounter) (*ContactsFile, error) {
	s := &ContactsFile{path: path, ids: ids}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.inmem = NewContactsInmem(ids)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("could not read contacts file %s: %w", path, err)
	}

	var doc contactsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not decode contacts file %s: %w", path, err)
	}

	next := doc.NextID
	cs := make([]*Contact, 0, len(doc.Contacts))
	seen := make(map[ContactID]bool, len(doc.Contacts))
	for _, r := range doc.Contacts {
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate contact id %d in contacts file %s: %w", r.ID, path, ErrDuplicateID)
		}
		seen[r.ID] = true
		cs = append(cs, RestoreContact(r.ID, r.Name, r.Notes))
		next = max(next, r.ID+1)
	}
	ids.Resume(next)
	s.inmem = NewContactsInmem(ids, cs...)
	return s, nil
}

func (s *ContactsFile) Create(ctx context.Context, name string) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.inmem.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.save(); err != nil {
		s.inmem.restore(c.ID(), nil)
		return nil, err
	}
	return c, nil
}

func (s *ContactsFile) List(ctx context.Context) ([]*Contact, error) {
	return s.inmem.List(ctx)
}

func (s *ContactsFile) Get(ctx context.Context, id ContactID) (*Contact, error) {
	return s.inmem.Get(ctx, id)
}

func (s *ContactsFile) AddNotes(ctx context.Context, id ContactID, text string) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, err := s.inmem.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.inmem.AddNotes(ctx, id, text)
	if err != nil {
		return nil, err
	}
	if err := s.save(); err != nil {
		s.inmem.restore(id, prev)
		return nil, err
	}
	return c, nil
}

func (s *ContactsFile) Delete(ctx context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, err := s.inmem.Get(ctx, id)
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	if err := s.inmem.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		s.inmem.restore(id, prev)
		return err
	}
	return nil
}

// Len returns the number of contacts held.
func (s *ContactsFile) Len() int { return s.inmem.Len() }

// save writes the contacts to a temporary file next to path and renames it
// over path.
func (s *ContactsFile) save() error {
	s.inmem.mu.Lock()
	contacts := s.inmem.list()
	s.inmem.mu.Unlock()

	doc := contactsDocument{NextID: s.ids.Current(), Contacts: make([]contactRecord, 0, len(contacts))}
	for _, c := range contacts {
		doc.Contacts = append(doc.Contacts, contactRecord{ID: c.ID(), Name: c.Name(), Notes: c.Notes()})
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("could not encode contacts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".contacts-*") // created 0600
	if err != nil {
		return fmt.Errorf("could not save contacts to %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	_, err = tmp.Write(data)
	err = errors.Join(err, tmp.Sync(), tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), s.path)
	}
	if err != nil {
		return fmt.Errorf("could not save contacts to %s: %w", s.path, err)
	}
	return nil
}
