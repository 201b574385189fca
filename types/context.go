package types

// RiskLevel is the aggregate severity classification of a composed report.
type RiskLevel string

const (
	RiskNone      RiskLevel = "none"
	RiskNormal    RiskLevel = "normal"
	RiskAttention RiskLevel = "attention"
	RiskHigh      RiskLevel = "high"
)

// RiskAssessment is derived from the risk section text and the measurement
// statuses. It is recomputed on every composition, never persisted.
type RiskAssessment struct {
	Level   RiskLevel
	Message string
}

// DocumentContext is the terminal aggregate handed to the downstream
// rendering engine. Field names and list multiplicities are the renderer
// contract and must stay stable.
type DocumentContext struct {
	Title           string              `json:"title"`
	Lang            string              `json:"lang"`
	ReportDate      string              `json:"report_date"`
	Summary         string              `json:"summary"`
	RiskLevel       RiskLevel           `json:"risk_level"`
	RiskMessage     string              `json:"risk_message"`
	Biomarkers      []MeasurementRecord `json:"biomarkers"`
	PossibleCauses  string              `json:"possible_causes"`
	Recommendations string              `json:"recommendations"`
	RawSections     []ExtraSection      `json:"raw_sections"`
}
