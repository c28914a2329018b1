package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"tableflip.dev/shelf/pkg/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("error during command execution")
	}
}
