package types

// KeywordSet is a ranked, deduplicated keyword list extracted from a job
// description. High, Medium and Low are contiguous, disjoint partitions of
// All in rank order; their concatenation reproduces All.
type KeywordSet struct {
	All    []string `json:"all"`
	High   []string `json:"high"`
	Medium []string `json:"medium"`
	Low    []string `json:"low"`
}

// NewKeywordSet returns an empty keyword set with non-nil slices
func NewKeywordSet() *KeywordSet {
	return &KeywordSet{
		All:    []string{},
		High:   []string{},
		Medium: []string{},
		Low:    []string{},
	}
}

// IsEmpty reports whether no keywords were extracted
func (k *KeywordSet) IsEmpty() bool {
	return k == nil || len(k.All) == 0
}

// TailorResult holds the outcome of injecting a keyword set into a resume.
// Injected is always a subset of the keywords that were missing before
// injection; Score is the percentage of all keywords present in the
// serialized tailored resume.
type TailorResult struct {
	Tailored *StructuredResume `json:"tailored"`
	Score    int               `json:"score"`
	Matched  []string          `json:"matched"`
	Missing  []string          `json:"missing"`
	Injected []string          `json:"injected"`
}
