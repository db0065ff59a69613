package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/kazijawad/bonsai/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "bonsai"
	app.Usage = "render scenes with a progressive path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "log progress details",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "log debug output",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "built-in scene name or a scene JSON file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "override the scene's image width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "override the scene's image height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "override the scene's samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "override the scene's maximum bounce depth",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers, 0 for one per CPU",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for the per-tile sample streams",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "output image filename",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve a live progressive render preview",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "built-in scene name or a scene JSON file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "override the scene's image width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "override the scene's image height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "override the scene's samples per pixel",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers, 0 for one per CPU",
				},
			},
			Action: cmd.Serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
