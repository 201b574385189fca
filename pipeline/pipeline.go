package pipeline

import (
	"encoding/json"

	"norya.com/report/logger"
	"norya.com/report/vocab"
)

// Pipeline is the asynchronous form of the composer: the returned channel
// yields the marshalled document context once and is then closed. A channel
// closed without a value means composition failed.
type Pipeline func(request Request) <-chan string

func NewReportPipeline(registry *vocab.Registry) Pipeline {
	rptLogger := logger.NewLogger("Report pipeline")
	composer := NewComposer(registry)

	return func(request Request) <-chan string {
		out := make(chan string, 1)
		go func() {
			defer close(out)
			defer func() {
				if r := recover(); r != nil {
					rptLogger.Error().
						Str("tid", request.Tid).
						Msgf("Composition panicked: %v", r)
				}
			}()
			context := composer.Compose(request)
			b, err := json.Marshal(context)
			if err != nil {
				rptLogger.Err(err).Str("tid", request.Tid).Msg("Failed to marshal document context")
				return
			}
			out <- string(b)
		}()
		return out
	}
}
