package main

import (
	"errors"
	"os"

	"lintang/roadgraph/pkg/config"
	"lintang/roadgraph/pkg/preprocess"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load(".env")

	var opts config.Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if err := opts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}

	profile, err := config.LoadProfile(opts.Profile)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Profile).Msg("failed to load speed profile")
	}

	res, err := preprocess.Run(opts, profile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build road graph")
	}

	log.Info().
		Int("nodes", res.Graph.NumNodes()).
		Int("edges", res.Graph.NumEdges()).
		Str("graphml", opts.GraphML).
		Str("binary", opts.Binary).
		Msg("road graph ready")
}
