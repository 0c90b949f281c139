package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientResolver(t *testing.T) {
	f := newFixture(t)
	r := f.svc.clients
	ctx := context.Background()

	t.Run("no email always inserts", func(t *testing.T) {
		a, err := r.Resolve(ctx, ClientInput{Name: "Walk In", Category: "Consulting"})
		require.NoError(t, err)
		b, err := r.Resolve(ctx, ClientInput{Name: "Walk In", Category: "Consulting"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Nil(t, a.Email)
	})

	t.Run("tutoring siblings share an email", func(t *testing.T) {
		a, err := r.Resolve(ctx, ClientInput{Name: "Ana", Email: "Parent@Example.com", Category: "StemwithLyn"})
		require.NoError(t, err)
		b, err := r.Resolve(ctx, ClientInput{Name: "Ben", Email: "parent@example.com", Category: "StemwithLyn"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, "parent@example.com", *a.Email)
		assert.Nil(t, a.EmailKey)

		_, err = r.Resolve(ctx, ClientInput{Name: "Ana", Email: "parent@example.com", Category: "StemwithLyn"})
		assert.ErrorIs(t, err, ErrDuplicatePerson)
	})

	t.Run("other categories reuse the client for an email", func(t *testing.T) {
		a, err := r.Resolve(ctx, ClientInput{Name: "Pat", Email: "pat@example.com", Phone: "555", Category: "Consulting"})
		require.NoError(t, err)
		b, err := r.Resolve(ctx, ClientInput{Name: "Patricia", Email: " PAT@example.com ", Category: "Consulting"})
		require.NoError(t, err)
		assert.Equal(t, a.ID, b.ID)
		assert.Equal(t, "Pat", b.FullName)
		assert.Nil(t, b.UserID, "resolution never links a user")
	})

	t.Run("the same email in another category is a new client", func(t *testing.T) {
		a, err := r.Resolve(ctx, ClientInput{Name: "Jo", Email: "jo@example.com", Category: "Consulting"})
		require.NoError(t, err)
		b, err := r.Resolve(ctx, ClientInput{Name: "Jo", Email: "jo@example.com", Category: "Other"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, "Other", b.Category)
		again, err := r.Resolve(ctx, ClientInput{Name: "Joanne", Email: "jo@example.com", Category: "Other"})
		require.NoError(t, err)
		assert.Equal(t, b.ID, again.ID)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := r.Resolve(ctx, ClientInput{Name: "  ", Category: "Consulting"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestIdentity(t *testing.T) {
	anon := Anonymous()
	assert.True(t, anon.Can(CapBook))
	assert.False(t, anon.Can(CapSelfService))
	assert.False(t, anon.IsAdmin())

	client := NewIdentity(2, "sam", "client")
	assert.True(t, client.Can(CapSelfService))
	assert.False(t, client.IsAdmin())

	user := NewIdentity(3, "kim", "user")
	assert.True(t, user.Can(CapSelfService|CapBook))

	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.Can(CapSelfService), "admins are kept out of the portal")

	unknown := NewIdentity(4, "x", "guest")
	assert.False(t, unknown.Can(CapBook))
}
