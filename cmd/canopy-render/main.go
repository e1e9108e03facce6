// Command canopy-render draws a scene document to a PNG image.
//
//	canopy-render -config render.toml -scene scene.yaml -out scene.png
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas/ggcanvas"
	"github.com/phanxgames/canopy/scenefile"
)

type cliOpts struct {
	config string
	scene  string
	out    string
}

func parseCLIOpts() cliOpts {
	var opt cliOpts
	flag.StringVar(&opt.config, "config", "", "TOML config file")
	flag.StringVar(&opt.scene, "scene", "", "Scene document to render (required)")
	flag.StringVar(&opt.out, "out", "out.png", "PNG file to write")
	flag.Parse()
	return opt
}

func main() {
	opt := parseCLIOpts()
	if opt.scene == "" {
		fmt.Fprintln(os.Stderr, "canopy-render: -scene is required")
		flag.Usage()
		os.Exit(2)
	}
	conf, err := readConfig(opt.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "canopy-render: %v\n", err)
		os.Exit(1)
	}
	if err := run(opt, conf); err != nil {
		fmt.Fprintf(os.Stderr, "canopy-render: %v\n", err)
		os.Exit(1)
	}
}

func run(opt cliOpts, conf config) error {
	level, _ := conf.level()
	canopy.SetLogger(newLogger(os.Stderr, level))

	for family, path := range conf.Fonts {
		if err := ggcanvas.RegisterFontFile(family, path); err != nil {
			return err
		}
	}

	ctx := ggcanvas.New(conf.Width, conf.Height)
	defer ctx.Close()

	layer := canopy.NewLayer(ctx)
	layer.SetDebugMode(conf.Debug)
	if err := scenefile.LoadFile(opt.scene, layer); err != nil {
		return err
	}
	layer.Tick(conf.Time)

	ctx.Clear(conf.background())
	layer.Draw(ctx)
	if err := ctx.SavePNG(opt.out); err != nil {
		return fmt.Errorf("writing %s: %w", opt.out, err)
	}
	canopy.Logger().Info("canopy-render: wrote image", "path", opt.out,
		"width", conf.Width, "height", conf.Height, "nodes", len(layer.Children()))
	return nil
}

// newLogger writes text to terminals and JSON otherwise.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
