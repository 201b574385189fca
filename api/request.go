package api

import (
	"io"
	"net/http"

	"norya.com/report/pipeline"
)

type Request struct {
	Pipeline pipeline.Pipeline
}

// ComposeReport accepts a raw narrative in the request body and replies with
// the composed report context. Language and report metadata travel in
// headers so the body stays exactly the narrative text.
func (req *Request) ComposeReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != "POST" {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request := pipeline.Request{
		Tid:        "test_api",
		Text:       string(msg),
		Lang:       r.Header.Get("X-Report-Lang"),
		ReportDate: r.Header.Get("X-Report-Date"),
		Title:      r.Header.Get("X-Report-Title"),
	}
	logger.Info().Str("tid", request.Tid).Msg("Starting pipeline for request from API")
	resp := <-req.Pipeline(request)
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
