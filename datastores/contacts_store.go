package datastores

import (
	"context"
	"errors"
)

type ContactID = int64

type ContactsStore interface {
	Create(ctx context.Context, name string) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	Get(ctx context.Context, id ContactID) (*Contact, error)
	AddNotes(ctx context.Context, id ContactID, text string) (*Contact, error)
	Delete(ctx context.Context, id ContactID) error
}

var (
	ErrObjectNotFound = errors.New("store: object not found")
	ErrDuplicateID    = errors.New("store: duplicate id")
)
