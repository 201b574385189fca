package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"norya.com/report/api"
	"norya.com/report/logger"
	"norya.com/report/pipeline"
	"norya.com/report/vocab"
	"norya.com/report/worker"
)

type Config struct {
	VocabPath     string `envconfig:"RPT_VOCAB_PATH"`
	RestAPIActive bool   `envconfig:"RPT_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"RPT_REST_API_PORT" default:"10000"`
}

func main() {
	logger.SetupLogging()
	rptLogger := logger.NewLogger("Main")
	fatalErrLogger := rptLogger.Fatal().Caller()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	registry := vocab.NewRegistry()
	if config.VocabPath != "" {
		if err := registry.LoadDir(config.VocabPath); err != nil {
			fatalErrLogger.Err(err).Msg("Failed to load language vocabularies")
			os.Exit(1)
		}
	}
	rptLogger.Info().Msgf("Loaded vocabularies for languages %v", registry.Tags())

	ppln := pipeline.NewReportPipeline(registry)

	if config.RestAPIActive {
		go func() {
			rptLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
			}
			http.HandleFunc("/", apiRequest.ComposeReport)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			rptLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	rptLogger.Info().Msg("Start report composer worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			rptLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			rptLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}
