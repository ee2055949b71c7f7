package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/contacts-directory/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID    ds.ContactID `json:"id"    readOnly:"true" example:"m4yzkcd7ovbxfp3h2eqsrtyu3e"`
	Name  string       `json:"name"  example:"Ann"`
	Phone string       `json:"phone" example:"+1 555 0100"`
}

func contactModel(c ds.Contact) *ContactModel {
	return &ContactModel{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

// ContactBody is the input of create and update. Fields are optional in the
// schema so that blank values reach the store and get reported as 400.
// Unknown fields are ignored.
type ContactBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name  string `json:"name,omitempty"  example:"Ann"        doc:"Contact name, surrounding spaces are trimmed"`
	Phone string `json:"phone,omitempty" example:"+1 555 0100" doc:"Contact phone, surrounding spaces are trimmed"`
}

type ContactData struct {
	Contact *ContactModel `json:"contact"`
}

type ContactOutput struct {
	Body Envelope[ContactData]
}

type ContactsData struct {
	Contacts []ContactModel `json:"contacts"`
}

type ContactsListOutput struct {
	Body Envelope[ContactsData]
}

type ContactsDeleteOutput struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

// storeError maps store errors to responses.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, ds.ErrValidation):
		return huma.Error400BadRequest("invalid contact", err)
	case errors.Is(err, ds.ErrObjectNotFound):
		return huma.Error404NotFound(notFound, err)
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	register(api, "list-contacts", http.MethodGet, "",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, storeError(err, "")
	}

	data := ContactsData{Contacts: make([]ContactModel, 0, len(contacts))}
	for _, contact := range contacts {
		data.Contacts = append(data.Contacts, *contactModel(contact))
	}

	return &ContactsListOutput{Body: ok("contacts retrieved", &data)}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	register(api, "get-contact", http.MethodGet, "/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) get(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to get"`
}) (*ContactOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "contact not found")
	}
	return &ContactOutput{Body: ok("contact retrieved", &ContactData{contactModel(contact)})}, nil
}

func (h *Contacts) RegisterPost(api huma.API) { // called by [huma.AutoRegister]
	register(api, "create-contact", http.MethodPost, "",
		handlerWithErrorHandler(h.post, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

func (h *Contacts) post(ctx context.Context, input *struct {
	Body ContactBody
}) (*ContactOutput, error) {
	contact, err := h.Store.Add(ctx, input.Body.Name, input.Body.Phone)
	if err != nil {
		return nil, storeError(err, "")
	}
	return &ContactOutput{Body: ok("contact created", &ContactData{contactModel(contact)})}, nil
}

func (h *Contacts) RegisterPut(api huma.API) { // called by [huma.AutoRegister]
	register(api, "update-contact", http.MethodPut, "/{id}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) put(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" doc:"ID of the contact to update"`
	Body ContactBody
}) (*ContactOutput, error) {
	contact, err := h.Store.Update(ctx, input.ID, input.Body.Name, input.Body.Phone)
	if err != nil {
		return nil, storeError(err, "contact not found")
	}
	return &ContactOutput{Body: ok("contact updated", &ContactData{contactModel(contact)})}, nil
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	register(api, "delete-contact", http.MethodDelete, "/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to delete"`
}) (*ContactsDeleteOutput, error) {
	return h.remove(ctx, input.ID)
}

// RegisterDelWithoutID answers deletes missing their id with the store's
// validation error rather than the mux's plain 404.
func (h *Contacts) RegisterDelWithoutID(api huma.API) { // called by [huma.AutoRegister]
	for id, path := range map[string]string{"delete-contact-no-id": "", "delete-contact-empty-id": "/"} {
		register(api, id, http.MethodDelete, path,
			handlerWithErrorHandler(h.delWithoutID, h.ErrorHandler),
			opHidden(),
			opErrors(http.StatusBadRequest),
		)
	}
}

func (h *Contacts) delWithoutID(ctx context.Context, _ *struct{}) (*ContactsDeleteOutput, error) {
	return h.remove(ctx, "")
}

func (h *Contacts) remove(ctx context.Context, id ds.ContactID) (*ContactsDeleteOutput, error) {
	err := h.Store.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "contact not found")
	}
	resp := &ContactsDeleteOutput{}
	resp.Body.Success, resp.Body.Message = true, "contact deleted"
	return resp, nil
}
