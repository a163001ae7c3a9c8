package domain

// CacheEntry is the stored form of a finished evaluation.
// Overflow entries have no Decimal.
type CacheEntry struct {
	Decimal  string `json:"decimal,omitempty"`
	Overflow bool   `json:"overflow,omitempty"`
}
