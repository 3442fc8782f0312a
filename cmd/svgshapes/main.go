// Command svgshapes renders the basic shapes of an SVG file
// to a PNG image or a PDF document.
//
//	svgshapes -in icon.svg -out icon.png
//
// Defaults are read from the environment: SVGSHAPES_DPI, SVGSHAPES_FONT_SIZE,
// SVGSHAPES_ERROR_MODE (ignore, warn or strict) and SVGSHAPES_WIDTH.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgshapes/svgicon"
	"github.com/benoitkugler/svgshapes/svgpdf"
	"github.com/benoitkugler/svgshapes/svgraster"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	DPI       float64 `envconfig:"DPI" default:"96"`
	FontSize  float64 `envconfig:"FONT_SIZE" default:"12"`
	ErrorMode string  `envconfig:"ERROR_MODE" default:"warn"`
	Width     float64 `envconfig:"WIDTH" default:"0"` // output width in pixels, 0 for the icon size
}

func loadConfig() (config, error) {
	var cfg config
	if err := envconfig.Process("SVGSHAPES", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("svgshapes: ")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	in := flag.String("in", "", "input SVG file")
	out := flag.String("out", "", "output file, .png or .pdf")
	flag.Float64Var(&cfg.Width, "width", cfg.Width, "output width in pixels, 0 for the icon size")
	flag.StringVar(&cfg.ErrorMode, "errors", cfg.ErrorMode, "reaction to unsupported elements: ignore, warn or strict")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(cfg, *in, *out); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config, inFile, outFile string) error {
	mode, err := svgicon.ParseErrorMode(cfg.ErrorMode)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(outFile))
	if ext != ".png" && ext != ".pdf" {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	in, err := os.Open(inFile)
	if err != nil {
		return err
	}
	defer in.Close()

	// the output is only created once rendering succeeded
	var out bytes.Buffer
	switch ext {
	case ".png":
		img, err := svgraster.RasterSVGIconToImage(in, svgraster.Options{
			DPI:       cfg.DPI,
			FontSize:  cfg.FontSize,
			Width:     int(cfg.Width),
			ErrorMode: mode,
		})
		if err != nil {
			return err
		}
		if err = png.Encode(&out, img); err != nil {
			return err
		}
	case ".pdf":
		err = svgpdf.RenderSVGIconToPDF(in, &out, svgpdf.Options{
			DPI:       cfg.DPI,
			FontSize:  cfg.FontSize,
			Width:     cfg.Width,
			ErrorMode: mode,
		})
		if err != nil {
			return err
		}
	}
	return os.WriteFile(outFile, out.Bytes(), 0o644)
}
