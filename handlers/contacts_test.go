package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/huma-contacts/datastores"
)

func newTestAPI(t *testing.T, store ds.ContactsStore, onError func(context.Context, error)) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	huma.AutoRegister(huma.NewGroup(api, "/contacts"), &Contacts{Store: store, ErrorHandler: onError})
	return api
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestContacts(t *testing.T) {
	var errs []error
	api := newTestAPI(t, ds.NewContactsInmem(ds.NewIDCounter(100)), func(_ context.Context, err error) {
		errs = append(errs, err)
	})

	resp := api.Post("/contacts/", map[string]any{"name": "alice"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	alice := decode[ContactModel](t, resp.Body.Bytes())
	assert.Equal(t, ContactModel{ID: 100, Name: "alice"}, alice)

	resp = api.Post("/contacts/", map[string]any{"name": ""})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, ds.ContactID(101), decode[ContactModel](t, resp.Body.Bytes()).ID)

	resp = api.Post("/contacts/100/notes", map[string]any{"text": "foo"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	resp = api.Post("/contacts/100/notes", map[string]any{"text": "bar"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "foobar", decode[ContactModel](t, resp.Body.Bytes()).Notes)

	resp = api.Get("/contacts/100")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, ContactModel{ID: 100, Name: "alice", Notes: "foobar"}, decode[ContactModel](t, resp.Body.Bytes()))

	resp = api.Get("/contacts/")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Len(t, decode[[]ContactModel](t, resp.Body.Bytes()), 2)

	resp = api.Delete("/contacts/100")
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	assert.Empty(t, errs)

	resp = api.Get("/contacts/100")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = api.Post("/contacts/100/notes", map[string]any{"text": "late"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	require.Len(t, errs, 2)
	for _, err := range errs {
		var statusErr huma.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.GetStatus())
	}
}

func TestContactsCreateRequiresName(t *testing.T) {
	api := newTestAPI(t, ds.NewContactsInmem(ds.NewIDCounter(0)), nil)

	resp := api.Post("/contacts/", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

type failingStore struct{ ds.ContactsStore }

func (failingStore) List(context.Context) ([]*ds.Contact, error) {
	return nil, errors.New("disk on fire")
}

func TestContactsStoreFailure(t *testing.T) {
	var got error
	api := newTestAPI(t, failingStore{}, func(_ context.Context, err error) { got = err })

	resp := api.Get("/contacts/")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.EqualError(t, got, "disk on fire")
}
