// Command workoutctl operates the workout tracker database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-workout-backend/internal/cli"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cli.Options{LoadEnv: true}).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("workoutctl")
		stop()
		os.Exit(1)
	}
}
