package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/heatnet/pkg/config"
	"github.com/dd0wney/heatnet/pkg/layout"
	"github.com/dd0wney/heatnet/pkg/templates"
)

func runSample(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("sample", stderr)
	source := fs.String("source", templates.GasBoiler.String(), "Source kind")
	pipes := fs.Int("pipes", config.DefaultPipes, "Pipe count (1 = ring)")
	layoutKind := fs.String("layout", string(layout.KindNone), "Layout for nodes without a position")
	out := fs.String("out", "", "Write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	net, err := loadNetwork("", *source, *pipes)
	if err != nil {
		return err
	}
	net.Layout = layout.Kind(*layoutKind)
	if err := net.Validate(); err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	return net.Encode(w)
}
