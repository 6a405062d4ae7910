package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/raycast"
	"chosenoffset.com/sightline/internal/game"
	"chosenoffset.com/sightline/internal/levelscanner"
	"chosenoffset.com/sightline/internal/logging"
	ebitenrender "chosenoffset.com/sightline/internal/render/ebiten"
	"chosenoffset.com/sightline/internal/world/catalog"
	"chosenoffset.com/sightline/internal/world/levelfile"
)

// loadLevels returns the levels in dir, or the built-in ones when dir is empty
func loadLevels(dir string, clearance float64) ([]*level.Level, error) {
	if dir == "" {
		return catalog.Levels(clearance)
	}
	return levelscanner.LoadAll(dir, clearance)
}

func playAction(configPath string, first int, showMap bool, logLevel string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel == "" {
		if err := logging.Setup(cfg.LogLevel); err != nil {
			return err
		}
	}

	levels, err := loadLevels(cfg.LevelDir, cfg.Movement.Clearance)
	if err != nil {
		return err
	}

	manager, err := game.NewManager(
		ebitenrender.NewEngine(),
		ebitenrender.NewRenderer(),
		ebitenrender.NewInputManager(),
		cfg,
		levels,
	)
	if err != nil {
		return err
	}
	if first != 0 {
		if err := manager.Game.Session.LoadLevel(first); err != nil {
			return cli.NewExitError(err.Error(), 2)
		}
	}
	manager.Game.ShowMap = showMap

	logging.For("cli").WithFields(logrus.Fields{
		"levels": len(levels),
		"first":  first,
	}).Info("starting game")
	return manager.Run()
}

type renderOptions struct {
	level  string
	x, y   float64
	angle  float64
	width  int
	config string
}

// findLevel resolves a built-in level name or a level file path
func findLevel(name string, clearance float64) (*level.Level, error) {
	if def, ok := catalog.ByName(name); ok {
		return levelfile.Build(&def, clearance)
	}
	if _, err := os.Stat(name); err != nil {
		return nil, errors.Errorf("no built-in level or file named %q", name)
	}
	def, err := levelfile.Load(name)
	if err != nil {
		return nil, err
	}
	return levelfile.Build(def, clearance)
}

func renderAction(out io.Writer, opts renderOptions) error {
	cfg, err := config.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.width <= 0 {
		return cli.NewExitError("width must be positive", 2)
	}

	lvl, err := findLevel(opts.level, cfg.Movement.Clearance)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	viewer := raycast.Viewer{Position: lvl.Start, Angle: lvl.StartAngle + opts.angle}
	if opts.x >= 0 && opts.y >= 0 {
		viewer.Position = geometry.Point{X: opts.x, Y: opts.y}
	}

	spans := raycast.RenderWith(viewer, lvl, cfg.View.FOV, opts.width, cfg.RaycastOptions())

	fmt.Fprintf(out, "%s from (%.1f, %.1f) facing %.3f\n", lvl.Name, viewer.Position.X, viewer.Position.Y, viewer.Angle)
	for _, s := range spans {
		fmt.Fprintf(out, "  x=%-4d width=%-4d %s\n", s.XStart, s.Width, colorName(s.Color))
	}
	fmt.Fprintln(out, preview(spans, opts.width))
	return nil
}

func levelsAction(out io.Writer, dir string) error {
	if dir != "" {
		entries, err := levelscanner.Scan(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\n", e.Name, e.Path)
		}
		return nil
	}

	for i, def := range catalog.Definitions() {
		fmt.Fprintf(out, "%2d  %-12s walls=%d goals=%d\n", i, def.Name, len(def.Walls), len(def.Goals))
	}
	return nil
}

func validateAction(out io.Writer, dir string, clearance float64) error {
	levels, err := loadLevels(dir, clearance)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	problems := 0
	for _, lvl := range levels {
		issues := lvl.Validate()
		if len(issues) == 0 {
			fmt.Fprintf(out, "ok    %s\n", lvl.Name)
			continue
		}
		problems += len(issues)
		lines := make([]string, len(issues))
		for i, issue := range issues {
			lines[i] = "      " + issue.String()
		}
		fmt.Fprintf(out, "warn  %s\n%s\n", lvl.Name, strings.Join(lines, "\n"))
	}

	if problems > 0 {
		return cli.NewExitError(fmt.Sprintf("%d issues in %d levels", problems, len(levels)), 1)
	}
	return nil
}
