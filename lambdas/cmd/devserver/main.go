// Package main runs the submit-survey function behind a local HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sh3r4rd/survey_submissions/cmd/devserver/cmds"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmds.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
