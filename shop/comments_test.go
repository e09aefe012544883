package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductComments_Set(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stars := func() (int64, int64) {
		t.Helper()
		p, err := store.Products.GetByID(ctx, 2)
		require.NoError(t, err)
		return p.Stars, p.ReviewCount
	}

	steps := []struct {
		name           string
		user           int64
		comment        string
		rating         int
		stars, reviews int64
	}{
		{"first review", 1, "mysterious indeed", 4, 4, 1},
		{"identical review", 1, "mysterious indeed", 4, 4, 1},
		{"lowered rating", 1, "meh", 2, 2, 1},
		{"comment only", 1, "meh!", 2, 2, 1},
		{"another customer", 2, "love it", 5, 7, 2},
		{"zero rating", 2, "changed my mind", 0, 2, 2},
	}
	for _, step := range steps {
		require.NoError(t, store.ProductComments.Set(ctx, step.user, 2, step.comment, step.rating), step.name)
		s, n := stars()
		assert.Equal(t, step.stars, s, step.name)
		assert.Equal(t, step.reviews, n, step.name)
	}

	comments, err := store.ProductComments.ListByProduct(ctx, 2)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Bob", comments[0].Username)
	assert.Equal(t, "meh!", comments[0].Comment)
	assert.Equal(t, int64(2), comments[0].Rating)
	assert.Equal(t, "2024-05-01 12:00:00", comments[0].Timestamp)
	assert.Equal(t, "Ulf", comments[1].Username)
	assert.Equal(t, int64(0), comments[1].Rating)
}

func TestProductComments_InvalidRating(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.ProductComments.Set(ctx, 1, 2, "too good", 6), ErrInvalidRating)
	assert.ErrorIs(t, store.ProductComments.Set(ctx, 1, 2, "too bad", -1), ErrInvalidRating)

	comments, err := store.ProductComments.ListByProduct(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestProfileComments_Set(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ProfileComments.Set(ctx, 5, 1, "nice shop", 5))
	require.NoError(t, store.ProfileComments.Set(ctx, 5, 2, "bad admin", 1))
	require.NoError(t, store.ProfileComments.Set(ctx, 5, 2, "ok admin", 3))

	jesper, err := store.Users.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(8), jesper.Stars)
	assert.Equal(t, int64(2), jesper.ReviewCount)
	assert.Equal(t, 4.0, jesper.Rating())

	comments, err := store.ProfileComments.ListByUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Bob", comments[0].Username)
	assert.Equal(t, int64(1), comments[0].VisitorID)
	assert.Equal(t, "Ulf", comments[1].Username)
	assert.Equal(t, "ok admin", comments[1].Comment)

	assert.ErrorIs(t, store.ProfileComments.Set(ctx, 5, 1, "x", 9), ErrInvalidRating)
}
