package datastores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// ContactsJSON implements [ContactsStore] by keeping the whole collection as
// a JSON array in a [Blob]. Every call is one load-mutate-save cycle and
// cycles never overlap.
type ContactsJSON struct {
	mu     sync.Mutex
	blob   Blob
	logger *slog.Logger
	newID  func() ContactID
}

var _ ContactsStore = (*ContactsJSON)(nil)

type ContactsJSONOption func(*ContactsJSON)

// WithLogger sets the logger receiving masked read failures.
func WithLogger(logger *slog.Logger) ContactsJSONOption {
	return func(s *ContactsJSON) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(newID func() ContactID) ContactsJSONOption {
	return func(s *ContactsJSON) { s.newID = newID }
}

func NewContactsJSON(blob Blob, opts ...ContactsJSONOption) *ContactsJSON {
	s := &ContactsJSON{
		blob:   blob,
		logger: slog.New(slog.DiscardHandler),
		newID:  newContactID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection. A missing or unparsable artifact
// yields an empty collection and records lacking an id, name or phone are
// skipped; only backend failures are reported, as [ErrRead].
func (s *ContactsJSON) Load(ctx context.Context) ([]Contact, error) {
	data, err := s.blob.Read(ctx)
	switch {
	case errors.Is(err, ErrBlobNotExist):
		return []Contact{}, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	var contacts []Contact
	err = json.Unmarshal(data, &contacts)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring unparsable contacts", slog.Any("err", err))
		return []Contact{}, nil
	}
	n := len(contacts)
	contacts = slices.DeleteFunc(contacts, func(c Contact) bool {
		return strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == ""
	})
	if dropped := n - len(contacts); dropped > 0 {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring incomplete contacts", slog.Int("count", dropped))
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}

// Save overwrites the persisted collection with contacts.
func (s *ContactsJSON) Save(ctx context.Context, contacts []Contact) error {
	if contacts == nil {
		contacts = []Contact{}
	}
	data, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	err = s.blob.Write(ctx, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (s *ContactsJSON) List(ctx context.Context) ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Load(ctx)
}

func (s *ContactsJSON) Get(ctx context.Context, id ContactID) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, err := s.Load(ctx)
	if err != nil {
		return Contact{}, err
	}
	i := slices.IndexFunc(contacts, func(c Contact) bool { return c.ID == id })
	if i < 0 {
		return Contact{}, ErrObjectNotFound
	}
	return contacts[i], nil
}

func (s *ContactsJSON) Add(ctx context.Context, name, phone string) (Contact, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return Contact{}, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, err := s.Load(ctx)
	if err != nil {
		return Contact{}, err
	}

	c := Contact{Name: name, Phone: phone}
retry:
	c.ID = s.newID()
	if slices.ContainsFunc(contacts, func(o Contact) bool { return o.ID == c.ID }) {
		goto retry
	}

	err = s.Save(ctx, append(contacts, c))
	if err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *ContactsJSON) Update(ctx context.Context, id ContactID, name, phone string) (Contact, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if id == "" || name == "" || phone == "" {
		return Contact{}, fmt.Errorf("%w: id, name and phone are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, err := s.Load(ctx)
	if err != nil {
		return Contact{}, err
	}
	i := slices.IndexFunc(contacts, func(c Contact) bool { return c.ID == id })
	if i < 0 {
		return Contact{}, ErrObjectNotFound
	}

	contacts[i].Name, contacts[i].Phone = name, phone
	err = s.Save(ctx, contacts)
	if err != nil {
		return Contact{}, err
	}
	return contacts[i], nil
}

func (s *ContactsJSON) Delete(ctx context.Context, id ContactID) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, err := s.Load(ctx)
	if err != nil {
		return err
	}
	n := len(contacts)
	contacts = slices.DeleteFunc(contacts, func(c Contact) bool { return c.ID == id })
	if len(contacts) == n {
		return ErrObjectNotFound
	}
	return s.Save(ctx, contacts)
}

func (s *ContactsJSON) Ping(ctx context.Context) error { return s.blob.Ping(ctx) }
