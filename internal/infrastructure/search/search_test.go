package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"github.com/yourusername/store-assistant/internal/infrastructure/storage"
)

func newCatalog(products ...entity.Product) repository.CatalogRepository {
	return storage.NewMemoryCatalogRepository(&entity.Catalog{Products: products})
}

func product(id, name, category, description string) entity.Product {
	return entity.Product{ID: id, Name: name, Category: category, Description: description}
}

var (
	bread  = product("bread", "Bread", "Bakery", "Whole wheat loaf")
	milk   = product("milk", "Milk", "Dairy", "Full cream milk")
	cheese = product("cheese", "Cheddar", "Dairy", "Aged block")
	butter = product("butter", "Butter", "Dairy", "Salted butter")
)

func TestKeywordMatch(t *testing.T) {
	catalog := newCatalog(bread, milk, cheese)

	tests := []struct {
		name   string
		query  string
		wantID string
	}{
		{"name token", "where is milk", "milk"},
		{"category token", "anything from the bakery", "bread"},
		{"description token", "wheat", "bread"},
		{"case insensitive", "MILK please", "milk"},
		{"substring of a field", "chedd", "cheese"},
		{"first record in catalog order", "dairy", "milk"},
		{"any token wins", "cheddar or milk", "milk"},
	}

	m := NewKeywordMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Match(catalog, entity.NewQuery(tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestKeywordMiss(t *testing.T) {
	catalog := newCatalog(bread, milk)
	m := NewKeywordMatcher()

	for _, q := range []string{"mlik", "joke", "", "   "} {
		_, err := m.Match(catalog, entity.NewQuery(q))
		assert.ErrorIs(t, err, entity.ErrNoMatch, "query %q", q)
	}
}

func TestKeywordSingleLetterTokenMatches(t *testing.T) {
	// plain substring containment, short tokens are not filtered
	catalog := newCatalog(milk)

	got, err := NewKeywordMatcher().Match(catalog, entity.NewQuery("tell me a joke"))
	require.NoError(t, err)
	assert.Equal(t, "milk", got.ID)
}

func TestKeywordEmptyCatalog(t *testing.T) {
	_, err := NewKeywordMatcher().Match(newCatalog(), entity.NewQuery("milk"))
	assert.ErrorIs(t, err, entity.ErrNoMatch)
}

func TestFuzzyMatchTypo(t *testing.T) {
	catalog := newCatalog(bread, milk)

	got, err := NewFuzzyMatcher(DefaultCutoff).Match(catalog, entity.NewQuery("mlik"))
	require.NoError(t, err)
	assert.Equal(t, "milk", got.ID)
}

func TestFuzzyPicksHighestScore(t *testing.T) {
	catalog := newCatalog(bread, milk, butter)

	got, err := NewFuzzyMatcher(DefaultCutoff).Match(catalog, entity.NewQuery("buter"))
	require.NoError(t, err)
	assert.Equal(t, "butter", got.ID)
}

func TestFuzzyCutoffIsInclusive(t *testing.T) {
	atCutoff := product("at", "abxyz", "misc", "thing")
	require.InDelta(t, 0.4, Ratio("abxyz", "abqrs"), 1e-12)

	got, err := NewFuzzyMatcher(DefaultCutoff).Match(newCatalog(atCutoff), entity.NewQuery("abqrs"))
	require.NoError(t, err)
	assert.Equal(t, "at", got.ID)
}

func TestFuzzyBelowCutoff(t *testing.T) {
	below := product("below", "abxyzw", "misc", "thing")
	require.Less(t, Ratio("abxyzw", "abqrs"), DefaultCutoff)

	_, err := NewFuzzyMatcher(DefaultCutoff).Match(newCatalog(below), entity.NewQuery("abqrs"))
	assert.ErrorIs(t, err, entity.ErrNoMatch)
}

func TestFuzzyUnrelatedQuery(t *testing.T) {
	_, err := NewFuzzyMatcher(DefaultCutoff).Match(newCatalog(milk), entity.NewQuery("joke"))
	assert.ErrorIs(t, err, entity.ErrNoMatch)
}

func TestFuzzyTieGoesToGreaterName(t *testing.T) {
	catalog := newCatalog(
		product("d", "abcd", "misc", "thing"),
		product("e", "abce", "misc", "thing"),
	)
	require.Equal(t, Ratio("abcd", "abcx"), Ratio("abce", "abcx"))

	got, err := NewFuzzyMatcher(DefaultCutoff).Match(catalog, entity.NewQuery("abcx"))
	require.NoError(t, err)
	assert.Equal(t, "e", got.ID)
}

func TestFuzzyDuplicateNamesFirstOccurrence(t *testing.T) {
	catalog := newCatalog(
		product("first", "Milk", "Dairy", "Full cream"),
		product("second", "milk", "Dairy", "Toned"),
	)

	got, err := NewFuzzyMatcher(DefaultCutoff).Match(catalog, entity.NewQuery("mlik"))
	require.NoError(t, err)
	assert.Equal(t, "first", got.ID)
}

func TestFuzzyEmptyQuery(t *testing.T) {
	_, err := NewFuzzyMatcher(DefaultCutoff).Match(newCatalog(milk), entity.NewQuery("  "))
	assert.ErrorIs(t, err, entity.ErrNoMatch)
}

func TestFuzzyInvalidCutoffFallsBack(t *testing.T) {
	m := NewFuzzyMatcher(0).(*fuzzyMatcher)
	assert.Equal(t, DefaultCutoff, m.cutoff)

	m = NewFuzzyMatcher(1.5).(*fuzzyMatcher)
	assert.Equal(t, DefaultCutoff, m.cutoff)
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.75, Ratio("milk", "mlik"), 1e-12)
	assert.InDelta(t, 0.25, Ratio("milk", "joke"), 1e-12)
	assert.Equal(t, 1.0, Ratio("milk", "milk"))
	assert.Equal(t, 0.0, Ratio("", "milk"))
}
