// Package main is the entry point for the submit-survey function.
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/sh3r4rd/survey_submissions/internal/config"
	"github.com/sh3r4rd/survey_submissions/internal/handler"
	"github.com/sh3r4rd/survey_submissions/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("could not load config")
	}

	log := logger.New(cfg.Logging)
	log.Info().Str("env", cfg.Env).Msg("submit-survey function starting")

	lambda.Start(handler.FromConfig(cfg, log).HandleAPIGateway)
}
