package pipeline

import (
	"time"

	"norya.com/report/chart"
	"norya.com/report/measure"
	"norya.com/report/narrative"
	"norya.com/report/risk"
	"norya.com/report/types"
	"norya.com/report/vocab"
)

const reportDateLayout = "02.01.2006 15:04"

type langComponents struct {
	lang       vocab.Language
	splitter   *narrative.Splitter
	mapper     *narrative.TitleMapper
	parser     *measure.LineParser
	classifier *risk.Classifier
}

// Composer is the top-level entry point of the composition core. It is built
// once per process: the per-language grammars are compiled up front and the
// chart cache is shared across requests.
type Composer struct {
	registry   *vocab.Registry
	components map[string]langComponents
	charts     *chart.Cache
}

func NewComposer(registry *vocab.Registry) *Composer {
	components := make(map[string]langComponents, len(registry.Tags()))
	for _, tag := range registry.Tags() {
		lang := registry.Language(tag)
		components[tag] = langComponents{
			lang:       lang,
			splitter:   narrative.NewSplitter(lang),
			mapper:     narrative.NewTitleMapper(lang),
			parser:     measure.NewLineParser(lang),
			classifier: risk.NewClassifier(lang),
		}
	}
	return &Composer{
		registry:   registry,
		components: components,
		charts:     chart.NewCache(),
	}
}

// Compose turns one raw narrative into the document context consumed by the
// rendering engine. It never fails: a malformed or empty narrative yields an
// empty-but-valid context.
func (c *Composer) Compose(request Request) types.DocumentContext {
	comps := c.componentsFor(request.Lang)

	canonical := map[types.SectionKey]string{}
	extras := []types.ExtraSection{}
	for _, block := range comps.splitter.Split(request.Text) {
		if key, ok := comps.mapper.Map(block.Title); ok {
			canonical[key] = block.Body
		} else {
			extras = append(extras, types.ExtraSection{Title: block.Title, Body: block.Body})
		}
	}

	biomarkers := comps.parser.ParseBlock(canonical[types.SectionValues])
	if biomarkers == nil {
		biomarkers = []types.MeasurementRecord{}
	}
	for i := range biomarkers {
		c.attachChart(&biomarkers[i])
	}

	assessment := comps.classifier.Classify(canonical[types.SectionRiskIndicators], biomarkers)

	title := request.Title
	if title == "" {
		title = comps.lang.ReportTitle
	}
	reportDate := request.ReportDate
	if reportDate == "" {
		reportDate = time.Now().UTC().Format(reportDateLayout)
	}

	return types.DocumentContext{
		Title:           title,
		Lang:            comps.lang.Tag,
		ReportDate:      reportDate,
		Summary:         canonical[types.SectionSummary],
		RiskLevel:       assessment.Level,
		RiskMessage:     assessment.Message,
		Biomarkers:      biomarkers,
		PossibleCauses:  canonical[types.SectionPossibleCauses],
		Recommendations: canonical[types.SectionRecommendations],
		RawSections:     extras,
	}
}

func (c *Composer) componentsFor(tag string) langComponents {
	if comps, ok := c.components[tag]; ok {
		return comps
	}
	return c.components[c.registry.Language(tag).Tag]
}

// attachChart fills in the chart fields when both the numeric value and the
// reference range are recoverable; otherwise the record keeps explicit nulls
// and the renderer shows a value-only row.
func (c *Composer) attachChart(record *types.MeasurementRecord) {
	ref := measure.ParseReferenceRange(record.ReferenceDisplay)
	var value *float64
	if v, ok := measure.ValueToFloat(record.ValueDisplay); ok {
		value = &v
	}
	unit := ""
	if record.Unit != nil {
		unit = *record.Unit
	}
	artifact, ok := c.charts.Synthesize(record.Name, value, unit, ref, record.Status)
	if !ok {
		return
	}
	record.ChartSVGBase64 = &artifact.Encoded
	record.DisplayMin = &artifact.DisplayMin
	record.DisplayMax = &artifact.DisplayMax
}
