package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/staircase"
	"github.com/tdewolff/staircase/export"
)

type Render struct {
	Config     string  `short:"c" desc:"TOML or YAML configuration file"`
	Theme      string  `short:"t" desc:"Pattern theme, see the themes command"`
	Themes     string  `desc:"Comma separated themes to blend, in order"`
	Size       float64 `short:"s" desc:"Square panel size in meters"`
	Width      float64 `desc:"Panel width in meters"`
	Height     float64 `desc:"Panel height in meters"`
	Resolution float64 `short:"r" desc:"Pixel pitch in millimeters"`
	Level      int     `short:"l" default:"-1" desc:"Penrose inflation level"`
	Tolerance  float64 `default:"-1" desc:"Penrose overlap tolerance"`
	Mode       string  `short:"m" desc:"Raster mode, centers or coverage"`
	Blend      float64 `short:"b" default:"-1" desc:"Fraction of a slice used to blend into the next, in [0,0.5]"`
	Axis       string  `short:"a" desc:"Blend direction, x or y"`
	Scale      int     `desc:"Output pixels per panel pixel"`
	Verbose    bool    `short:"v" desc:"Log progress to stderr"`
	Output     string  `short:"o" desc:"Output image, PNG, JPG, GIF, TIFF or SVG"`
}

type Tiles struct {
	Level     int     `short:"l" default:"4" desc:"Highest inflation level"`
	Tolerance float64 `default:"1e-9" desc:"Overlap tolerance"`
	MinArea   float64 `default:"1e-12" desc:"Minimum polygon area"`
	Verbose   bool    `short:"v" desc:"Log progress to stderr"`
}

type ThemeList struct{}

func main() {
	root := argp.NewCmd(&Render{}, "Physics themed panel renderer with a Penrose P3 tiler")
	root.AddCmd(&Tiles{}, "tiles", "Generate and validate Penrose tilings")
	root.AddCmd(&ThemeList{}, "themes", "List pattern themes")
	root.Parse()
	root.PrintHelp()
}

func setVerbose(verbose bool) {
	if verbose {
		staircase.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

// config returns the configuration file or the defaults, overridden by any flag that was set.
func (cmd *Render) config() (staircase.Config, error) {
	cfg := staircase.DefaultConfig()
	if cmd.Config != "" {
		var err error
		if cfg, err = staircase.LoadConfig(cmd.Config); err != nil {
			return cfg, err
		}
	}

	if cmd.Theme != "" {
		cfg.Theme = cmd.Theme
		cfg.Themes = nil
	}
	if cmd.Themes != "" {
		cfg.Themes = strings.Split(cmd.Themes, ",")
	}
	if cmd.Size != 0.0 {
		cfg.WidthM, cfg.HeightM = cmd.Size, cmd.Size
	}
	if cmd.Width != 0.0 {
		cfg.WidthM = cmd.Width
	}
	if cmd.Height != 0.0 {
		cfg.HeightM = cmd.Height
	}
	if cmd.Resolution != 0.0 {
		cfg.ResolutionMM = cmd.Resolution
	}
	if cmd.Level != -1 {
		cfg.Level = cmd.Level
	}
	if cmd.Tolerance != -1.0 {
		cfg.OverlapTolerance = cmd.Tolerance
	}
	if cmd.Mode != "" {
		cfg.Mode = cmd.Mode
	}
	if cmd.Blend != -1.0 {
		cfg.BlendFraction = cmd.Blend
	}
	if cmd.Axis != "" {
		cfg.Axis = cmd.Axis
	}
	if cmd.Scale != 0 {
		cfg.Scale = cmd.Scale
	}
	return cfg, cfg.Validate()
}

func (cmd *Render) Run() error {
	if cmd.Output == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	pen, err := cfg.Penrose()
	if err != nil {
		return err
	}
	staircase.RegisterTheme("penrose", func(w, h int) (*staircase.RasterGrid, error) {
		return pen.Render(w, h)
	})

	panel, err := cfg.Panel()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	grid, err := panel.Build(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteFile(cmd.Output, grid, cfg.Scale); err != nil {
		return err
	}
	fmt.Println("Saved", cmd.Output)
	return nil
}

func (cmd *Tiles) Run() error {
	if cmd.Level < 0 {
		return fmt.Errorf("level must be non-negative, got %d", cmd.Level)
	} else if cmd.Tolerance < 0.0 || cmd.MinArea < 0.0 {
		return fmt.Errorf("tolerances must be non-negative")
	}
	setVerbose(cmd.Verbose)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Level\tRhombs\tThick\tThin\tArea\tOverlap\tResult")
	t := staircase.Seed()
	for {
		thick, thin := t.Count()
		res := staircase.Validate(t.Polygons(), cmd.Tolerance, cmd.MinArea)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.12g\t%.3g\t%v\n", t.Level, t.Len(), thick, thin, res.Area, res.Overlap, res)
		if cmd.Level <= t.Level {
			break
		}
		t = staircase.Inflate(t)
	}
	return tw.Flush()
}

func (cmd *ThemeList) Run() error {
	for _, name := range staircase.Themes() {
		fmt.Println(name)
	}
	return nil
}
