package catalog

import (
	"testing"

	"github.com/bookhaven/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(t *testing.T) *BookListing {
	l, err := NewBookListing(uuid.New(), "The Pragmatic Programmer", "Hunt & Thomas",
		"Well loved copy, light shelf wear.", GenreNonFiction, ConditionVeryGood,
		valueobject.NewMoneyUSDFromFloat(22.00), "covers/pragprog.jpg")
	require.NoError(t, err)
	return l
}

func TestNewBookListing(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		l := newTestListing(t)
		assert.Equal(t, ListingStatusPending, l.Status)
		assert.Nil(t, l.BookID)
		assert.Empty(t, l.RejectReason)
	})

	t.Run("requires a known condition", func(t *testing.T) {
		_, err := NewBookListing(uuid.New(), "T", "A", "D", GenreFiction,
			Condition("dog-eared"), valueobject.NewMoneyUSDFromFloat(5), "c.jpg")
		assert.Error(t, err)
	})

	t.Run("requires positive price", func(t *testing.T) {
		_, err := NewBookListing(uuid.New(), "T", "A", "D", GenreFiction,
			ConditionGood, valueobject.ZeroUSD(), "c.jpg")
		assert.Error(t, err)
	})

	t.Run("requires a seller", func(t *testing.T) {
		_, err := NewBookListing(uuid.Nil, "T", "A", "D", GenreFiction,
			ConditionGood, valueobject.NewMoneyUSDFromFloat(5), "c.jpg")
		assert.Error(t, err)
	})
}

func TestBookListing_Approve(t *testing.T) {
	t.Run("approval records the catalog entry", func(t *testing.T) {
		l := newTestListing(t)
		bookID := uuid.New()

		require.NoError(t, l.Approve(bookID))

		assert.Equal(t, ListingStatusApproved, l.Status)
		require.NotNil(t, l.BookID)
		assert.Equal(t, bookID, *l.BookID)
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		l := newTestListing(t)
		require.NoError(t, l.Approve(uuid.New()))
		assert.Error(t, l.Approve(uuid.New()))
	})

	t.Run("cannot approve a rejected listing", func(t *testing.T) {
		l := newTestListing(t)
		require.NoError(t, l.Reject("duplicate"))
		assert.Error(t, l.Approve(uuid.New()))
	})
}

func TestBookListing_Reject(t *testing.T) {
	l := newTestListing(t)

	require.NoError(t, l.Reject("cover photo unreadable"))

	assert.Equal(t, ListingStatusRejected, l.Status)
	assert.Equal(t, "cover photo unreadable", l.RejectReason)
	assert.Error(t, l.Reject("again"))
}

func TestBookListing_ToBook(t *testing.T) {
	l := newTestListing(t)
	require.NoError(t, l.Approve(uuid.New()))

	b, err := l.ToBook()
	require.NoError(t, err)

	assert.Equal(t, l.Title, b.Title)
	assert.Equal(t, l.Author, b.Author)
	assert.Equal(t, l.Genre, b.Genre)
	assert.Equal(t, ConditionVeryGood, b.Condition)
	assert.True(t, b.Price.Equal(l.Price))
	assert.Equal(t, l.Cover, b.Cover)
}
