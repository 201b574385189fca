package measure

import (
	"regexp"
	"strings"

	"norya.com/report/types"
	"norya.com/report/vocab"
)

// LineParser turns one line of the values section into a measurement record.
// The primary grammar expects
//
//	**NAME**: VALUE UNIT. [Reference: REF.] STATUS[.]
//
// with tolerance for the generator's usual bold-markup slips (a stray or
// missing closing delimiter). The fallback grammar accepts a bare
// "**NAME**: rest" line so a deviation from the full shape does not lose the
// measurement. Lines matching neither grammar are skipped, not errors: the
// values block may contain prose.
type LineParser struct {
	primary    *regexp.Regexp
	fallback   *regexp.Regexp
	normalizer *Normalizer
	labels     map[types.Status]string
}

var fallbackPattern = regexp.MustCompile(`\*\*([^*]+)\*\*\s*:\s*(.+)`)

func NewLineParser(lang vocab.Language) *LineParser {
	statusTokens := lang.StatusTokens()
	quoted := make([]string, len(statusTokens))
	for i, token := range statusTokens {
		quoted[i] = regexp.QuoteMeta(token)
	}
	markers := make([]string, len(lang.ReferenceMarkers))
	for i, marker := range lang.ReferenceMarkers {
		markers[i] = regexp.QuoteMeta(marker)
	}
	pattern := `(?i)\*\*([^*]+)\*?\s*:\s*([^\n]+?)\s*\.\s*` +
		`(?:(?:` + strings.Join(markers, "|") + `)\s*:\s*([^\n]+?)\s*\.\s*)?` +
		`(` + strings.Join(quoted, "|") + `)\s*\.?\s*$`
	return &LineParser{
		primary:    regexp.MustCompile(pattern),
		fallback:   fallbackPattern,
		normalizer: NewNormalizer(lang),
		labels:     lang.StatusLabels,
	}
}

// ParseBlock parses every line of a values section body, in order. Duplicate
// parameter names produce duplicate records.
func (p *LineParser) ParseBlock(body string) []types.MeasurementRecord {
	var records []types.MeasurementRecord
	for _, line := range strings.Split(body, "\n") {
		if record, ok := p.ParseLine(line); ok {
			records = append(records, record)
		}
	}
	return records
}

func (p *LineParser) ParseLine(line string) (types.MeasurementRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" || !strings.HasPrefix(line, "**") {
		return types.MeasurementRecord{}, false
	}
	if match := p.primary.FindStringSubmatch(line); match != nil {
		valuePhrase := strings.TrimSpace(match[2])
		// The generator sometimes bolds the value too, or the name's closing
		// delimiter lands in the value group.
		if strings.HasPrefix(valuePhrase, "**") {
			valuePhrase = strings.TrimSpace(strings.TrimLeft(valuePhrase, "*"))
		}
		var referenceDisplay *string
		if reference := strings.TrimSpace(match[3]); reference != "" {
			referenceDisplay = &reference
		}
		status := p.normalizer.Normalize(match[4])
		value, unit := SplitValueUnit(valuePhrase)
		return types.MeasurementRecord{
			Name:             strings.TrimSpace(match[1]),
			ValueDisplay:     value,
			Unit:             unit,
			ReferenceDisplay: referenceDisplay,
			Status:           status,
			StatusLabel:      p.labels[status],
		}, true
	}
	if match := p.fallback.FindStringSubmatch(line); match != nil {
		value, unit := SplitValueUnit(match[2])
		return types.MeasurementRecord{
			Name:         strings.TrimSpace(match[1]),
			ValueDisplay: value,
			Unit:         unit,
			Status:       types.StatusNormal,
			StatusLabel:  ValuePlaceholder,
		}, true
	}
	return types.MeasurementRecord{}, false
}
