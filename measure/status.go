package measure

import (
	"strings"

	"norya.com/report/types"
	"norya.com/report/vocab"
)

// Normalizer maps a raw status token onto the canonical four-state set. It is
// total: unknown or empty input yields StatusNormal so a garbled status never
// aborts composition and never raises a false alarm downstream.
type Normalizer struct {
	words     map[string]types.Status
	fragments []vocab.StatusFragment
}

func NewNormalizer(lang vocab.Language) *Normalizer {
	return &Normalizer{
		words:     lang.StatusWords,
		fragments: lang.StatusFragments,
	}
}

func (n *Normalizer) Normalize(token string) types.Status {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return types.StatusNormal
	}
	if status, ok := n.words[s]; ok {
		return status
	}
	for _, fragment := range n.fragments {
		if strings.Contains(s, fragment.Fragment) {
			return fragment.Status
		}
	}
	return types.StatusNormal
}
