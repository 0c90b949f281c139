package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
)

// ClientResolver maps booking contact details onto a Client row
type ClientResolver struct {
	db       database.Database
	tutoring func(category string) bool
}

func NewClientResolver(db database.Database, tutoring func(category string) bool) *ClientResolver {
	if tutoring == nil {
		tutoring = func(string) bool { return false }
	}
	return &ClientResolver{db: db, tutoring: tutoring}
}

// ClientInput is the contact block of a booking request
type ClientInput struct {
	Name     string
	Email    string
	Phone    string
	Category string
}

// Resolve returns the client a booking belongs to.
//
// Without an email a new client is always created.
// Tutoring categories let siblings share an email, so a new client is created per
// person and an identical (name, email, category) fails with ErrDuplicatePerson.
// Every other category has one client per email within the category, reused across bookings.
// The client is never linked to a user here.
func (r *ClientResolver) Resolve(ctx context.Context, in ClientInput) (*database.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("client_name", "is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	client := &database.Client{
		FullName: name,
		Phone:    strings.TrimSpace(in.Phone),
		Category: in.Category,
	}

	switch {
	case email == "":
		if err := r.db.CreateClient(ctx, client); err != nil {
			return nil, err
		}
		return client, nil

	case r.tutoring(in.Category):
		client.Email = &email
		if err := r.db.CreateClient(ctx, client); err != nil {
			if errors.Is(err, database.ErrDuplicateKey) {
				return nil, ErrDuplicatePerson
			}
			return nil, err
		}
		return client, nil

	default:
		key := emailKey(in.Category, email)
		existing, err := r.db.GetClientByEmailKey(ctx, key)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, database.ErrRecordNotFound) {
			return nil, err
		}
		client.Email = &email
		client.EmailKey = &key
		stored, _, err := r.db.FirstOrCreateClientByEmailKey(ctx, client)
		if errors.Is(err, database.ErrDuplicateKey) || errors.Is(err, database.ErrRecordNotFound) {
			// (name, email, category) is held by a row without an email key
			return nil, ErrDuplicatePerson
		}
		return stored, err
	}
}

// emailKey scopes a deduplicated email to its category
func emailKey(category, email string) string {
	return category + "|" + email
}
