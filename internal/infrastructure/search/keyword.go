// Package search holds the catalog matching tiers.
package search

import (
	"strings"

	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

type keywordMatcher struct{}

// NewKeywordMatcher first-hit token matcher over name, category and description
func NewKeywordMatcher() repository.Matcher {
	return &keywordMatcher{}
}

// Match returns the first product in catalog order where any query token is a
// substring of any searchable field. No scoring.
func (k *keywordMatcher) Match(catalog repository.CatalogRepository, query entity.Query) (entity.Product, error) {
	if len(query.Tokens) == 0 {
		return entity.Product{}, entity.ErrNoMatch
	}

	var (
		hit   entity.Product
		found bool
	)
	catalog.Range(func(p entity.Product) bool {
		if matchTokens(query.Tokens,
			strings.ToLower(p.Name),
			strings.ToLower(p.Category),
			strings.ToLower(p.Description),
		) {
			hit, found = p, true
			return false
		}
		return true
	})

	if !found {
		return entity.Product{}, entity.ErrNoMatch
	}
	return hit, nil
}

func matchTokens(tokens []string, parts ...string) bool {
	for _, t := range tokens {
		for _, p := range parts {
			if strings.Contains(p, t) {
				return true
			}
		}
	}
	return false
}
