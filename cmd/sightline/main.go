package main

import (
	"os"

	"github.com/urfave/cli"

	"chosenoffset.com/sightline/internal/logging"
)

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "sightline"
	app.Usage = "a puzzle game played through a one-pixel-high view"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "log-level", Value: "", Usage: "Log level (debug, info, warn, error); overrides the config"},
	}
	app.Before = func(c *cli.Context) error {
		if level := c.GlobalString("log-level"); level != "" {
			return logging.Setup(level)
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:  "play",
			Usage: "Open the game window",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "level", Value: 0, Usage: "Index of the first level to play"},
				cli.StringFlag{Name: "config", Value: "sightline.json", Usage: "Config file; missing means defaults"},
				cli.BoolFlag{Name: "show-map", Usage: "Start with the overhead map visible"},
			},
			Action: func(c *cli.Context) error {
				return playAction(c.String("config"), c.Int("level"), c.Bool("show-map"), c.GlobalString("log-level"))
			},
		},
		{
			Name:  "render",
			Usage: "Print the sightline for a position without opening a window",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "level", Value: "three-boxes", Usage: "Built-in level name, or a level file path"},
				cli.Float64Flag{Name: "x", Value: -1, Usage: "Viewer x; defaults to the level start"},
				cli.Float64Flag{Name: "y", Value: -1, Usage: "Viewer y; defaults to the level start"},
				cli.Float64Flag{Name: "angle", Value: 0, Usage: "Facing in radians, added to the start angle"},
				cli.IntFlag{Name: "width", Value: 80, Usage: "Viewport width in columns"},
				cli.StringFlag{Name: "config", Value: "sightline.json", Usage: "Config file; missing means defaults"},
			},
			Action: func(c *cli.Context) error {
				return renderAction(os.Stdout, renderOptions{
					level:  c.String("level"),
					x:      c.Float64("x"),
					y:      c.Float64("y"),
					angle:  c.Float64("angle"),
					width:  c.Int("width"),
					config: c.String("config"),
				})
			},
		},
		{
			Name:  "levels",
			Usage: "List the built-in levels, or the level files in a directory",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dir", Value: "", Usage: "Level directory"},
			},
			Action: func(c *cli.Context) error {
				return levelsAction(os.Stdout, c.String("dir"))
			},
		},
		{
			Name:  "validate",
			Usage: "Build every level and report authoring problems",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dir", Value: "", Usage: "Level directory; empty checks the built-in levels"},
				cli.Float64Flag{Name: "clearance", Value: 6, Usage: "Wall clearance"},
			},
			Action: func(c *cli.Context) error {
				return validateAction(os.Stdout, c.String("dir"), c.Float64("clearance"))
			},
		},
	}

	return app
}

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		logging.Log.Fatal(err)
	}
}
