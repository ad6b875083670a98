package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

var debugMode = os.Getenv("LIGHTBOX_DEBUG") != ""

// debugLog prints only when LIGHTBOX_DEBUG is set.
func debugLog(format string, args ...any) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(fs *flag.FlagSet, config *Config, minScale, maxScale, step float64) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-scale":
			config.MinScale = minScale
		case "max-scale":
			config.MaxScale = maxScale
		case "step":
			config.ScaleStep = step
		}
	})
	config.clamp()
}

func main() {
	minScale := flag.Float64("min-scale", 0, "minimum preview zoom (overrides config)")
	maxScale := flag.Float64("max-scale", 0, "maximum preview zoom (overrides config)")
	step := flag.Float64("step", 0, "zoom step added to 1 per zoom in (overrides config)")
	flag.Parse()

	configPath := getConfigPath()
	status := loadConfigFromPath(configPath)
	applyFlags(flag.CommandLine, &status.Config, *minScale, *maxScale, *step)

	paths, err := collectImages(flag.Args(), status.Config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatal("no image files specified")
	}

	if err := InitGraphics(); err != nil {
		log.Fatal(err)
	}

	app := NewApp(status, configPath, paths)

	ebiten.SetWindowTitle("Lightbox")
	ebiten.SetWindowSize(status.Config.WindowWidth, status.Config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
