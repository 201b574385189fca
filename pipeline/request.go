package pipeline

// Request carries one narrative through composition. Lang selects the
// vocabulary, ReportDate and Title override the generated defaults when the
// caller already knows them (the worker fills them from the task document).
type Request struct {
	Tid        string `json:"tid"`
	Text       string `json:"text"`
	Lang       string `json:"lang"`
	ReportDate string `json:"report_date"`
	Title      string `json:"title"`
}
