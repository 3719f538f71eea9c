package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	When time.Time `json:"when"`
}

func (i item) EntityID() string { return i.ID }

var seedItems = []item{{ID: "1", Name: "seed one"}, {ID: "2", Name: "seed two"}}

func TestCollectionMergeSeeds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := NewCollection(s, "items", MergeSeeds, seedItems, nil)

	items, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedItems, items)

	mine := item{ID: "1700000000000", Name: "mine"}
	require.NoError(t, c.Save(ctx, append(items, mine)))

	raw, err := s.Get(ctx, "items")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1700000000000","name":"mine","when":"0001-01-01T00:00:00Z"}]`, string(raw))

	items, err = c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "mine", items[0].Name)
	assert.True(t, c.IsSeed(items[1].ID))
	assert.True(t, c.IsSeed(items[2].ID))
}

func TestCollectionMergeSeedsNeverPersistsSeedEdits(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := NewCollection(s, "items", MergeSeeds, seedItems, nil)

	edited := []item{{ID: "1", Name: "renamed seed"}, seedItems[1]}
	require.NoError(t, c.Save(ctx, edited))

	items, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedItems, items)
}

func TestCollectionDefaultSeeds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := NewCollection(s, "items", DefaultSeeds, seedItems, nil)

	items, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedItems, items)

	// Deleting a seed sticks once something was saved.
	require.NoError(t, c.Save(ctx, items[1:]))
	items, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{seedItems[1]}, items)

	// An empty saved list is still a saved list.
	require.NoError(t, c.Save(ctx, nil))
	items, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCollectionMalformedPayloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "items", []byte(`{not json`)))

	c := NewCollection(s, "items", MergeSeeds, seedItems, nil)
	items, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedItems, items)

	d := NewCollection(s, "items", DefaultSeeds, seedItems, nil)
	items, err = d.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedItems, items)
}

func TestCollectionHydratesDates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	loc := time.FixedZone("PST", -8*3600)

	c := NewCollection[item](s, "items", MergeSeeds, nil, nil)
	c.Hydrate = func(i item) item {
		i.When = i.When.In(loc)
		return i
	}

	when := time.Date(2026, 7, 4, 23, 0, 0, 0, loc)
	require.NoError(t, c.Save(ctx, []item{{ID: "a", When: when}}))

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, when.Equal(items[0].When))
	assert.Equal(t, 4, items[0].When.Day())
	assert.Equal(t, loc, items[0].When.Location())
}

func TestCollectionBackendErrors(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(failingStore{err: errBackend}, "items", MergeSeeds, seedItems, nil)

	_, err := c.Load(ctx)
	assert.ErrorIs(t, err, errBackend)
	assert.ErrorIs(t, c.Save(ctx, seedItems), errBackend)
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := NewRecord(s, "profile", item{ID: "default"}, nil)

	v, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", v.ID)

	require.NoError(t, r.Save(ctx, item{ID: "saved"}))
	v, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "saved", v.ID)

	require.NoError(t, s.Set(ctx, "profile", []byte(`nope`)))
	v, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", v.ID)
}
