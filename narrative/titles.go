package narrative

import (
	"strings"

	"norya.com/report/types"
	"norya.com/report/vocab"
)

// TitleMapper maps a detected section title onto a canonical section key.
// Unmapped titles become extra sections, they are never discarded.
type TitleMapper struct {
	lang vocab.Language
}

func NewTitleMapper(lang vocab.Language) *TitleMapper {
	return &TitleMapper{lang: lang}
}

func (m *TitleMapper) Map(title string) (types.SectionKey, bool) {
	normalized := normalizeTitle(title)
	if key, ok := m.lang.SectionTitles[normalized]; ok {
		return key, true
	}
	for _, keyword := range m.lang.SectionKeywords {
		if strings.Contains(normalized, keyword.Fragment) {
			return keyword.Key, true
		}
	}
	return "", false
}
