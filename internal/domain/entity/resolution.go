package entity

// Tier pipeline stage that produced a reply
type Tier string

const (
	TierKeyword  Tier = "keyword"
	TierFuzzy    Tier = "fuzzy"
	TierFallback Tier = "fallback"
)

// Resolution outcome of resolving one query
type Resolution struct {
	Reply   string
	Tier    Tier
	Product *Product // nil when the fallback answered
}

// Matched reports whether a catalog product was found.
func (r Resolution) Matched() bool {
	return r.Product != nil
}
