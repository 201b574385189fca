package types

// SectionKey identifies one of the five canonical report sections.
type SectionKey string

const (
	SectionSummary         SectionKey = "summary"
	SectionRiskIndicators  SectionKey = "risk_indicators"
	SectionValues          SectionKey = "values"
	SectionPossibleCauses  SectionKey = "possible_causes"
	SectionRecommendations SectionKey = "recommendations"
)

// SectionBlock is one (title, body) block as detected in the raw narrative.
// The title is still language specific at this point.
type SectionBlock struct {
	Title string
	Body  string
}

// ExtraSection is a block whose title could not be mapped onto a canonical
// section. Extra sections are kept in source order and never dropped.
type ExtraSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
