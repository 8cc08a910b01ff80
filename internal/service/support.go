package service

import (
	"log/slog"

	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// Support manages the personal contact list and the professional help
// directory. Rows are stored in the clear; they exist to be shown in a
// crisis, not to be locked away.
type Support struct {
	store *sqlite.Store
	log   *slog.Logger
}

// NewSupport returns a Support service over store.
func NewSupport(store *sqlite.Store, logger *slog.Logger) *Support {
	if logger == nil {
		logger = slog.Default()
	}
	return &Support{store: store, log: logger}
}

// AddContact saves a personal support contact.
func (s *Support) AddContact(name, phone, note string) (*types.SupportContact, error) {
	contact, err := s.store.CreateSupportContact(name, phone, note)
	if err != nil {
		return nil, err
	}
	s.log.Info("added support contact", "id", contact.ID)
	return contact, nil
}

// Contacts returns the contact list, newest first.
func (s *Support) Contacts() ([]*types.SupportContact, error) {
	return s.store.ListSupportContacts()
}

// RemoveContact deletes a contact. Removing an unknown ID is a no-op.
func (s *Support) RemoveContact(id int64) error {
	return s.store.DeleteSupportContact(id)
}

// AddResource saves a professional help resource.
func (s *Support) AddResource(title, contact, note string) (*types.SupportResource, error) {
	resource, err := s.store.CreateSupportResource(title, contact, note)
	if err != nil {
		return nil, err
	}
	s.log.Info("added support resource", "id", resource.ID)
	return resource, nil
}

// Resources returns the help directory, newest first.
func (s *Support) Resources() ([]*types.SupportResource, error) {
	return s.store.ListSupportResources()
}

// RemoveResource deletes a resource. Removing an unknown ID is a no-op.
func (s *Support) RemoveResource(id int64) error {
	return s.store.DeleteSupportResource(id)
}
