package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("vtubemusic failed")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "vtubemusic",
		Usage: "Catalog of streamer groups, artists and their songs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Env file loaded before reading configuration",
				Value: ".env",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and web pages",
				Action: serve,
			},
			{
				Name:      "migrate",
				Usage:     "Apply or roll back the database schema",
				ArgsUsage: "up|down",
				Action:    runMigrate,
			},
			{
				Name:   "check",
				Usage:  "Run every connection check once and print the results",
				Action: runCheck,
			},
			{
				Name:  "resolve",
				Usage: "Look up YouTube metadata",
				Commands: []*cli.Command{
					{
						Name:      "video",
						Usage:     "Resolve a video URL",
						ArgsUsage: "<url>",
						Action:    resolveVideo,
					},
					{
						Name:      "channel",
						Usage:     "Resolve a channel URL",
						ArgsUsage: "<url>",
						Action:    resolveChannel,
					},
				},
			},
		},
	}
}
