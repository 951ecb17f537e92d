package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/viant/portal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("portal")
	}
}
