package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-contacts/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID ds.ContactID `json:"id" readOnly:"true"`

	Name  string `json:"name"  example:"john smith"`
	Notes string `json:"notes" example:"met at the conference" readOnly:"true"`
}

func newContactModel(c *ds.Contact) ContactModel {
	return ContactModel{ID: c.ID(), Name: c.Name(), Notes: c.Notes()}
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]ContactModel, 0, len(contacts))
	for _, contact := range contacts {
		body = append(body, newContactModel(contact))
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type ContactOutput struct {
	Body ContactModel
}

func (h *Contacts) create(ctx context.Context, input *struct {
	Body struct {
		Name string `json:"name" example:"john smith" doc:"name of the contact, may be empty"`
	}
}) (*ContactOutput, error) {
	contact, err := h.Store.Create(ctx, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &ContactOutput{Body: newContactModel(contact)}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) get(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to get"`
}) (*ContactOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	switch {
	case err == nil:
		return &ContactOutput{Body: newContactModel(contact)}, nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound("id not found", err)

	default:
		return nil, err
	}
}

func (h *Contacts) RegisterAddNotes(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/{id}/notes",
		handlerWithErrorHandler(h.addNotes, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) addNotes(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" doc:"ID of the contact to write notes about"`
	Body struct {
		Text string `json:"text" example:"likes tea" doc:"appended as is to the notes"`
	}
}) (*ContactOutput, error) {
	contact, err := h.Store.AddNotes(ctx, input.ID, input.Body.Text)
	switch {
	case err == nil:
		return &ContactOutput{Body: newContactModel(contact)}, nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound("id not found", err)

	default:
		return nil, err
	}
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	return nil, h.Store.Delete(ctx, input.ID)
}
