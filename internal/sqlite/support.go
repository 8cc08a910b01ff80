package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

const (
	supportContactColumns  = `id, name, phone, note, created_at`
	supportResourceColumns = `id, title, contact, note, created_at`
)

func scanSupportContact(row rowScanner) (*types.SupportContact, error) {
	var (
		c         types.SupportContact
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Note, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanSupportResource(row rowScanner) (*types.SupportResource, error) {
	var (
		r         types.SupportResource
		createdAt string
	)
	if err := row.Scan(&r.ID, &r.Title, &r.Contact, &r.Note, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateSupportContact adds a personal support contact.
func (s *Store) CreateSupportContact(name, phone, note string) (*types.SupportContact, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO support_contacts (name, phone, note, created_at) VALUES (?, ?, ?, ?)`,
		name, phone, note, formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting support contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading support contact id: %w", err)
	}
	return &types.SupportContact{ID: id, Name: name, Phone: phone, Note: note, CreatedAt: now}, nil
}

// ListSupportContacts returns contacts newest first.
func (s *Store) ListSupportContacts() ([]*types.SupportContact, error) {
	rows, err := s.db.Query(
		`SELECT ` + supportContactColumns + ` FROM support_contacts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing support contacts: %w", err)
	}
	defer rows.Close()
	return collectSupportContacts(rows)
}

// ListAllSupportContacts returns contacts oldest first, for exports.
func (s *Store) ListAllSupportContacts() ([]*types.SupportContact, error) {
	rows, err := s.db.Query(
		`SELECT ` + supportContactColumns + ` FROM support_contacts ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing support contacts: %w", err)
	}
	defer rows.Close()
	return collectSupportContacts(rows)
}

// DeleteSupportContact removes a contact. Deleting an id that does not
// exist is not an error.
func (s *Store) DeleteSupportContact(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM support_contacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting support contact %d: %w", id, err)
	}
	return nil
}

// CreateSupportResource adds a professional help resource.
func (s *Store) CreateSupportResource(title, contact, note string) (*types.SupportResource, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO support_resources (title, contact, note, created_at) VALUES (?, ?, ?, ?)`,
		title, contact, note, formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting support resource: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading support resource id: %w", err)
	}
	return &types.SupportResource{ID: id, Title: title, Contact: contact, Note: note, CreatedAt: now}, nil
}

// ListSupportResources returns resources newest first.
func (s *Store) ListSupportResources() ([]*types.SupportResource, error) {
	rows, err := s.db.Query(
		`SELECT ` + supportResourceColumns + ` FROM support_resources ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing support resources: %w", err)
	}
	defer rows.Close()
	return collectSupportResources(rows)
}

// ListAllSupportResources returns resources oldest first, for exports.
func (s *Store) ListAllSupportResources() ([]*types.SupportResource, error) {
	rows, err := s.db.Query(
		`SELECT ` + supportResourceColumns + ` FROM support_resources ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing support resources: %w", err)
	}
	defer rows.Close()
	return collectSupportResources(rows)
}

// DeleteSupportResource removes a resource. Missing ids are ignored.
func (s *Store) DeleteSupportResource(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM support_resources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting support resource %d: %w", id, err)
	}
	return nil
}

func collectSupportContacts(rows *sql.Rows) ([]*types.SupportContact, error) {
	var list []*types.SupportContact
	for rows.Next() {
		c, err := scanSupportContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning support contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func collectSupportResources(rows *sql.Rows) ([]*types.SupportResource, error) {
	var list []*types.SupportResource
	for rows.Next() {
		r, err := scanSupportResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning support resource: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
