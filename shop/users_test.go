package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_Login(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{name: "username", login: "Bob", password: "bobross"},
		{name: "username ignores case", login: "bob", password: "bobross"},
		{name: "email ignores case", login: "BOB@publicshop.io", password: "bobross"},
		{name: "wrong password", login: "Bob", password: "bobros", wantErr: ErrInvalidCredentials},
		{name: "unknown user", login: "nobody", password: "bobross", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := store.Users.Login(ctx, tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Bob", user.Username)
		})
	}
}

func TestUsers_Register(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.Register(ctx, Registration{
		Username:  "Greta",
		Email:     "Greta@Example.com",
		Password:  "hunter2",
		BirthDate: "1990-02-29",
	})
	require.NoError(t, err)
	assert.Equal(t, "Greta", user.Username)
	assert.Equal(t, "greta@example.com", user.Email)
	assert.Equal(t, "1990-02-29", user.Birth)
	assert.Zero(t, user.ReviewCount)
	assert.False(t, user.Admin)

	_, err = store.Users.Login(ctx, "greta@example.com", "hunter2")
	assert.NoError(t, err)
}

func TestUsers_RegisterRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	valid := Registration{Username: "Greta", Email: "greta@example.com", Password: "pw", BirthDate: "1990-01-01"}

	codes := []struct {
		name   string
		modify func(r *Registration)
		code   string
	}{
		{"empty password", func(r *Registration) { r.Password = "" }, CodePasswordInvalid},
		{"empty username", func(r *Registration) { r.Username = "" }, CodeUsernameInvalid},
		{"bad email", func(r *Registration) { r.Email = "greta.example.com" }, CodeEmailInvalid},
		{"bad birth date", func(r *Registration) { r.BirthDate = "1800-01-01" }, CodeInvalidBirthDate},
		{"password reported first", func(r *Registration) { *r = Registration{} }, CodePasswordInvalid},
	}
	for _, tt := range codes {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.modify(&r)
			_, err := store.Users.Register(ctx, r)

			var rerr *RegistrationError
			require.True(t, errors.As(err, &rerr), "got %v", err)
			assert.Equal(t, tt.code, rerr.Code)
		})
	}

	taken := valid
	taken.Username = "BOB"
	_, err := store.Users.Register(ctx, taken)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	taken = valid
	taken.Email = "Ulf@PublicShop.io"
	_, err = store.Users.Register(ctx, taken)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUsers_Lookups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.GetByEmail(ctx, "ADAM@publicshop.io")
	require.NoError(t, err)
	assert.Equal(t, "Adam", user.Username)

	_, err = store.Users.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	user, err = store.Users.Find(ctx, Pair{"username", "nobody"}, Pair{"email", "ulf@publicshop.io"})
	require.NoError(t, err)
	assert.Equal(t, "Ulf", user.Username)

	_, err = store.Users.Find(ctx)
	assert.Error(t, err)
}

func TestUsers_SaveAndSetPassword(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.GetByUsername(ctx, "Ulf")
	require.NoError(t, err)
	require.NoError(t, store.Users.SetPassword(user, "new-secret"))
	user.Description = "Tolerate shopping"
	user.Admin = true
	require.NoError(t, store.Users.Save(ctx, user))

	saved, err := store.Users.Login(ctx, "Ulf", "new-secret")
	require.NoError(t, err)
	assert.Equal(t, "Tolerate shopping", saved.Description)
	assert.True(t, saved.Admin)

	_, err = store.Users.Login(ctx, "Ulf", "secure")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.ErrorIs(t, store.Users.Save(ctx, &User{ID: 99, Username: "ghost", Email: "g@h.io"}), ErrNotFound)
}

func TestUsers_TopRated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ProfileComments.Set(ctx, 3, 1, "great seller", 5))
	require.NoError(t, store.ProfileComments.Set(ctx, 4, 1, "fine", 2))
	require.NoError(t, store.ProfileComments.Set(ctx, 4, 2, "ok", 3))

	users, err := store.Users.TopRated(ctx, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Rasmus", users[0].Username)
	assert.Equal(t, "Adam", users[1].Username)
	assert.Equal(t, 2.5, users[1].Rating())

	users, err = store.Users.TopRated(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUsers_TopRated_FractionalAverage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ProfileComments.Set(ctx, 2, 1, "solid", 4))
	require.NoError(t, store.ProfileComments.Set(ctx, 3, 1, "good", 4))
	require.NoError(t, store.ProfileComments.Set(ctx, 3, 2, "great", 5))

	users, err := store.Users.TopRated(ctx, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Rasmus", users[0].Username)
	assert.Equal(t, 4.5, users[0].Rating())
	assert.Equal(t, "Ulf", users[1].Username)
}

func TestUsers_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ProductComments.Set(ctx, 1, 8, "tasty", 4))
	require.NoError(t, store.ProfileComments.Set(ctx, 6, 1, "hi marcus", 3))
	require.NoError(t, store.ProfileComments.Set(ctx, 1, 6, "hi bob", 3))
	require.NoError(t, store.ProfileComments.Set(ctx, 2, 1, "unrelated", 1))

	require.NoError(t, store.Users.Delete(ctx, 6))

	_, err := store.Users.GetByID(ctx, 6)
	assert.ErrorIs(t, err, ErrNotFound)

	products, err := store.Products.AllByUser(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, products)

	groups, err := store.Parts.GroupsByProduct(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, groups)

	comments, err := store.ProductComments.ListByProduct(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, comments)

	profile, err := store.ProfileComments.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, profile)

	profile, err = store.ProfileComments.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, profile, 1)

	assert.ErrorIs(t, store.Users.Delete(ctx, 6), ErrNotFound)
}
