package datastores

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactsInmem(t *testing.T) {
	ctx := context.Background()
	s := NewContactsInmem(NewIDCounter(10), RestoreContact(3, "restored", "old"))

	alice, err := s.Create(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ContactID(10), alice.ID())

	bob, err := s.Create(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, ContactID(11), bob.ID())

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []ContactID{3, 10, 11}, []ContactID{list[0].ID(), list[1].ID(), list[2].ID()})
	assert.Equal(t, "old", list[0].Notes())

	got, err := s.AddNotes(ctx, alice.ID(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", got.Notes())
	_, err = s.AddNotes(ctx, alice.ID(), "bar")
	require.NoError(t, err)

	got, err = s.Get(ctx, alice.ID())
	require.NoError(t, err)
	assert.Equal(t, "foobar", got.Notes())
	assert.True(t, got.Equal(alice))

	// returned contacts are copies
	got.AddNotes("local")
	got, err = s.Get(ctx, alice.ID())
	require.NoError(t, err)
	assert.Equal(t, "foobar", got.Notes())

	require.NoError(t, s.Delete(ctx, alice.ID()))
	require.NoError(t, s.Delete(ctx, alice.ID()))
	_, err = s.Get(ctx, alice.ID())
	require.ErrorIs(t, err, ErrObjectNotFound)
	_, err = s.AddNotes(ctx, alice.ID(), "x")
	require.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestContactsInmemConcurrentNotes(t *testing.T) {
	ctx := context.Background()
	s := NewContactsInmem(NewIDCounter(0))
	c, err := s.Create(ctx, "busy")
	require.NoError(t, err)

	const n = 200
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddNotes(ctx, c.ID(), "x")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, c.ID())
	require.NoError(t, err)
	assert.Len(t, got.Notes(), n)
}
