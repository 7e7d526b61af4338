package search

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

// DefaultCutoff minimum ratio a name needs to count as a fuzzy hit
const DefaultCutoff = 0.4

type fuzzyMatcher struct {
	cutoff float64
}

// NewFuzzyMatcher closest-name matcher using the difflib sequence ratio.
// A cutoff outside (0, 1] falls back to DefaultCutoff.
func NewFuzzyMatcher(cutoff float64) repository.Matcher {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}
	return &fuzzyMatcher{cutoff: cutoff}
}

// Match scores the whole normalized query against every lower-cased product
// name and keeps the single best one at or above the cutoff.
// Equal scores go to the lexicographically greater name.
func (f *fuzzyMatcher) Match(catalog repository.CatalogRepository, query entity.Query) (entity.Product, error) {
	if query.IsEmpty() {
		return entity.Product{}, entity.ErrNoMatch
	}

	q := splitChars(query.Normalized)
	sm := difflib.NewMatcher(nil, q)

	var (
		bestName  string
		bestScore float64
		found     bool
	)
	catalog.Range(func(p entity.Product) bool {
		name := strings.ToLower(p.Name)
		sm.SetSeq1(splitChars(name))

		if sm.RealQuickRatio() < f.cutoff || sm.QuickRatio() < f.cutoff {
			return true
		}
		score := sm.Ratio()
		if score < f.cutoff {
			return true
		}
		if !found || score > bestScore || (score == bestScore && name > bestName) {
			bestName, bestScore, found = name, score, true
		}
		return true
	})

	if !found {
		return entity.Product{}, entity.ErrNoMatch
	}

	product, ok := catalog.FindByName(bestName)
	if !ok {
		return entity.Product{}, entity.ErrNoMatch
	}
	return product, nil
}

// Ratio similarity of two strings in [0, 1], same measure Match uses
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
