package cmd

import (
	"github.com/urfave/cli"

	"github.com/kazijawad/bonsai/log"
)

var logger = log.New("bonsai")

// setupLogging applies the global verbosity flags. The stronger flag wins
// when both are set.
func setupLogging(ctx *cli.Context) {
	switch {
	case ctx.GlobalBool("vv"):
		log.SetLevel(log.Debug)
	case ctx.GlobalBool("v"):
		log.SetLevel(log.Info)
	}
}
