package cmd

import (
	"github.com/urfave/cli"

	"github.com/kazijawad/bonsai/web/server"
)

// Serve starts the live render preview server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}
	sc.Preprocess()

	srv := server.NewServer(ctx.Int("port"), sc, renderConfig(sc, ctx))
	return srv.Start()
}
