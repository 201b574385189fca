package risk

import (
	"strings"

	"norya.com/report/types"
	"norya.com/report/vocab"
)

// Classifier derives the aggregate risk level from the risk-indicators text
// and the measurement statuses. An abnormal measurement raises the level to
// attention even when the narrative produced no risk section at all.
type Classifier struct {
	lang vocab.Language
}

func NewClassifier(lang vocab.Language) *Classifier {
	return &Classifier{lang: lang}
}

func (c *Classifier) Classify(riskText string, measurements []types.MeasurementRecord) types.RiskAssessment {
	message := strings.TrimSpace(riskText)
	lower := strings.ToLower(message)
	abnormal := false
	for _, m := range measurements {
		if m.Status.Abnormal() {
			abnormal = true
			break
		}
	}

	var level types.RiskLevel
	switch {
	case containsAny(lower, c.lang.RiskHigh):
		level = types.RiskHigh
	case containsAny(lower, c.lang.RiskAttention) || abnormal:
		level = types.RiskAttention
	case message != "":
		level = types.RiskNormal
	default:
		level = types.RiskNone
	}

	// The assembled report never shows an empty risk message when measurement
	// data exists.
	if message == "" && len(measurements) > 0 {
		if abnormal {
			message = c.lang.MsgOutOfRange
		} else {
			message = c.lang.MsgAllInRange
		}
	}
	return types.RiskAssessment{Level: level, Message: message}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
