package main

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freecell/internal/config"
)

func main() {
	config.LoadDotEnv()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
