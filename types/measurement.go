package types

// ReferenceRange is the (low, high) interval considered typical for a
// measurement. Low <= High always holds, inputs are swapped when reversed.
type ReferenceRange struct {
	Low  float64
	High float64
}

// MeasurementRecord is one extracted lab-style data point. ValueDisplay keeps
// the original numeric text (including qualifiers like "<5"); the numeric
// form is derived separately and never written back. The chart fields are
// explicitly null when the record carries no chart, the renderer template
// reads them by name.
type MeasurementRecord struct {
	Name             string   `json:"name"`
	ValueDisplay     string   `json:"value"`
	Unit             *string  `json:"unit"`
	ReferenceDisplay *string  `json:"reference"`
	Status           Status   `json:"status"`
	StatusLabel      string   `json:"status_label"`
	ChartSVGBase64   *string  `json:"chart_svg_base64"`
	DisplayMin       *float64 `json:"display_min"`
	DisplayMax       *float64 `json:"display_max"`
}

// ChartArtifact is a self-contained vector visualization of one measurement
// against its reference range, plus its base64 form for inline embedding.
type ChartArtifact struct {
	SVG        string
	Encoded    string
	DisplayMin float64
	DisplayMax float64
}
