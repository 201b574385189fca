package vocab

import (
	"sort"

	"norya.com/report/types"
)

// SectionKeyword maps a title fragment onto a canonical section, used when no
// exact synonym matches. Order matters: the first containing fragment wins.
type SectionKeyword struct {
	Fragment string           `yaml:"fragment"`
	Key      types.SectionKey `yaml:"key"`
}

type StatusFragment struct {
	Fragment string       `yaml:"fragment"`
	Status   types.Status `yaml:"status"`
}

// Language holds every table the composition core consults for one report
// language: section title synonyms, status vocabulary, risk keywords and the
// user-facing strings. Built once at process start, read-only afterwards.
type Language struct {
	Tag              string
	ReportTitle      string
	SectionTitles    map[string]types.SectionKey
	SectionKeywords  []SectionKeyword
	StatusWords      map[string]types.Status
	StatusFragments  []StatusFragment
	StatusLabels     map[types.Status]string
	ReferenceMarkers []string
	RiskHigh         []string
	RiskAttention    []string
	MsgOutOfRange    string
	MsgAllInRange    string
}

// StatusTokens returns the status vocabulary sorted longest first, the shape
// the measurement grammar wants for its alternation.
func (lang Language) StatusTokens() []string {
	tokens := make([]string, 0, len(lang.StatusWords))
	for word := range lang.StatusWords {
		tokens = append(tokens, word)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}

// english is the base vocabulary. The narrative generator is told to write in
// the requested language but falls back to English headings often enough that
// every language keeps the English tables merged in. The stray Italian and
// Spanish status words stay here for the same reason: they show up in
// otherwise-English narratives.
func english() Language {
	return Language{
		Tag:         "en",
		ReportTitle: "Norya Analysis Report",
		SectionTitles: map[string]types.SectionKey{
			"summary":         types.SectionSummary,
			"risk indicators": types.SectionRiskIndicators,
			"risk indicator":  types.SectionRiskIndicators,
			"values":          types.SectionValues,
			"value":           types.SectionValues,
			"possible causes": types.SectionPossibleCauses,
			"possible cause":  types.SectionPossibleCauses,
			"recommendations": types.SectionRecommendations,
			"recommendation":  types.SectionRecommendations,
		},
		SectionKeywords: []SectionKeyword{
			{"summary", types.SectionSummary},
			{"risk", types.SectionRiskIndicators},
			{"value", types.SectionValues},
			{"cause", types.SectionPossibleCauses},
			{"recommendation", types.SectionRecommendations},
		},
		StatusWords: map[string]types.Status{
			"normal":     types.StatusNormal,
			"normale":    types.StatusNormal,
			"low":        types.StatusLow,
			"basso":      types.StatusLow,
			"baja":       types.StatusLow,
			"high":       types.StatusHigh,
			"alto":       types.StatusHigh,
			"alta":       types.StatusHigh,
			"borderline": types.StatusBorder,
		},
		StatusFragments: []StatusFragment{
			{"border", types.StatusBorder},
		},
		StatusLabels: map[types.Status]string{
			types.StatusNormal: "Normal",
			types.StatusLow:    "Low",
			types.StatusHigh:   "High",
			types.StatusBorder: "Borderline",
		},
		ReferenceMarkers: []string{"Reference"},
		RiskHigh:         []string{"high risk", "urgent", "immediately", "see a doctor"},
		RiskAttention:    []string{"attention", "borderline", "check"},
		MsgOutOfRange:    "Some values are outside the reference range. Read the recommendations section.",
		MsgAllInRange:    "All values are within the reference range.",
	}
}

func turkish() Language {
	lang := english()
	lang.Tag = "tr"
	lang.ReportTitle = "Norya Analiz Raporu"
	for title, key := range map[string]types.SectionKey{
		"özet":                         types.SectionSummary,
		"dikkat edilmesi gerekenler":   types.SectionRiskIndicators,
		"değerler":                     types.SectionValues,
		"parametreler":                 types.SectionValues,
		"olası nedenler":               types.SectionPossibleCauses,
		"öneriler":                     types.SectionRecommendations,
	} {
		lang.SectionTitles[title] = key
	}
	lang.SectionKeywords = append(lang.SectionKeywords,
		SectionKeyword{"özet", types.SectionSummary},
		SectionKeyword{"dikkat", types.SectionRiskIndicators},
		SectionKeyword{"değer", types.SectionValues},
		SectionKeyword{"parametre", types.SectionValues},
		SectionKeyword{"neden", types.SectionPossibleCauses},
		SectionKeyword{"öneri", types.SectionRecommendations},
	)
	for word, status := range map[string]types.Status{
		"düşük":   types.StatusLow,
		"yüksek":  types.StatusHigh,
		"sınırda": types.StatusBorder,
		"sınır":   types.StatusBorder,
	} {
		lang.StatusWords[word] = status
	}
	lang.StatusFragments = append(lang.StatusFragments, StatusFragment{"sınır", types.StatusBorder})
	lang.StatusLabels = map[types.Status]string{
		types.StatusNormal: "Normal",
		types.StatusLow:    "Düşük",
		types.StatusHigh:   "Yüksek",
		types.StatusBorder: "Sınırda",
	}
	lang.ReferenceMarkers = append(lang.ReferenceMarkers, "Referans")
	lang.RiskHigh = append(lang.RiskHigh, "yüksek risk", "acil", "doktora", "hemen")
	lang.RiskAttention = append(lang.RiskAttention, "dikkat", "sınır", "kontrol")
	lang.MsgOutOfRange = "Bazı parametreler referans dışında. Öneriler bölümünü okuyun."
	lang.MsgAllInRange = "Tüm değerler referans aralığında."
	return lang
}

const FallbackTag = "tr"

// Registry holds the supported report languages. Unknown tags resolve to the
// fallback so a garbled language tag degrades instead of failing.
type Registry struct {
	languages map[string]Language
}

func NewRegistry() *Registry {
	reg := Registry{languages: map[string]Language{}}
	for _, lang := range []Language{english(), turkish()} {
		reg.languages[lang.Tag] = lang
	}
	return &reg
}

func (reg *Registry) Language(tag string) Language {
	if lang, ok := reg.languages[tag]; ok {
		return lang
	}
	return reg.languages[FallbackTag]
}

func (reg *Registry) Tags() []string {
	tags := make([]string, 0, len(reg.languages))
	for tag := range reg.languages {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
