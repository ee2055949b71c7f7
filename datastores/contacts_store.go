package datastores

import (
	"context"
	"errors"
)

type (
	ContactID = string
	Contact   struct {
		ID    ContactID `json:"id"`
		Name  string    `json:"name"`
		Phone string    `json:"phone"`
	}
)

// ContactsStore is the contract between the HTTP handlers and the persisted collection.
type ContactsStore interface {
	List(context.Context) ([]Contact, error)
	Get(context.Context, ContactID) (Contact, error)
	Add(ctx context.Context, name, phone string) (Contact, error)
	Update(ctx context.Context, id ContactID, name, phone string) (Contact, error)
	Delete(context.Context, ContactID) error
	Ping(context.Context) error
}

var (
	ErrValidation     = errors.New("store: invalid contact")
	ErrObjectNotFound = errors.New("store: object not found")
	ErrRead           = errors.New("store: read failed")
	ErrWrite          = errors.New("store: write failed")
)
