package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/heatnet/pkg/algorithms"
	"github.com/dd0wney/heatnet/pkg/compiler"
	"github.com/dd0wney/heatnet/pkg/config"
	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/metrics"
	"github.com/dd0wney/heatnet/pkg/modelfile"
	"github.com/dd0wney/heatnet/pkg/script"
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/topology"
)

type compileOptions struct {
	commonFlags
	network  string
	source   string
	pipes    int
	model    string
	sequence string
	out      string
	pkg      string
	create   bool
}

func parseCompileFlags(args []string, stderr io.Writer) (*compileOptions, error) {
	fs := newFlagSet("compile", stderr)
	opts := &compileOptions{}
	opts.register(fs)

	fs.StringVar(&opts.network, "network", "", "Network file (YAML); the reference district when empty")
	fs.StringVar(&opts.source, "source", templates.GasBoiler.String(), "Source kind of the reference district")
	fs.IntVar(&opts.pipes, "pipes", config.DefaultPipes, "Pipe count of the reference district (1 = ring)")
	fs.StringVar(&opts.model, "model", "", "Model name, overriding the network's")
	fs.StringVar(&opts.sequence, "sequence", "", "Prüfer sequence replacing the network's topology, e.g. 0,2")
	fs.StringVar(&opts.out, "out", "", "Write the model to this file instead of stdout")
	fs.StringVar(&opts.pkg, "package", "", "Splice the model into this package file")
	fs.BoolVar(&opts.create, "create", false, "Create the package file when it does not exist")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.out != "" && opts.pkg != "" {
		return nil, fmt.Errorf("-out and -package are mutually exclusive")
	}
	return opts, nil
}

func runCompile(args []string, stdout, stderr io.Writer) error {
	opts, err := parseCompileFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := opts.logger(stderr)
	reg := metrics.NewRegistry()

	net, err := loadNetwork(opts.network, opts.source, opts.pipes)
	if err != nil {
		return err
	}
	if opts.sequence != "" {
		seq, err := parseSequence(opts.sequence)
		if err != nil {
			return err
		}
		net = net.WithSequence(net.Model, seq)
		if err := net.Validate(); err != nil {
			return err
		}
	}
	if opts.model != "" {
		net.Model = opts.model
	}

	model, g, err := compileNetwork(net, logger, reg)
	if err != nil {
		return err
	}
	length := compiler.PipeLength(g, net.Pipes)
	longest := "-"
	if consumer, dist, ok := algorithms.LongestSupplyRun(g); ok {
		longest = fmt.Sprintf("%s (%.0f)", consumer, dist)
		logger.Debug("longest supply run", logging.Node(consumer), logging.Float64("distance", dist))
	}

	dest := "stdout"
	switch {
	case opts.pkg != "":
		w := modelfile.NewWriter(modelfile.WithLogger(logger), modelfile.WithMetrics(reg))
		mode, err := w.Patch(opts.pkg, model.Name, model.String(), opts.create)
		if err != nil {
			return err
		}
		dest = fmt.Sprintf("%s (%s)", opts.pkg, mode)
	case opts.out != "":
		if err := os.WriteFile(opts.out, []byte(model.String()), 0644); err != nil {
			return fmt.Errorf("failed to write model: %w", err)
		}
		dest = opts.out
	default:
		if _, err := model.WriteTo(stdout); err != nil {
			return err
		}
	}

	fmt.Fprintln(stderr, renderModelSummary(model, net, length, longest, dest))
	return opts.flush(reg)
}

// loadNetwork reads path, or builds the reference district when path is empty
func loadNetwork(path, source string, pipes int) (*config.Network, error) {
	if path != "" {
		return config.Load(path)
	}
	kind, err := templates.ParseSourceKind(source)
	if err != nil {
		return nil, err
	}
	net := config.SampleDistrict(kind, pipes)
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

// compileNetwork compiles a fresh graph of net and returns the model with
// the graph it was built from
func compileNetwork(net *config.Network, logger logging.Logger, reg *metrics.Registry) (*script.Model, *topology.Graph, error) {
	g, err := net.Graph()
	if err != nil {
		return nil, nil, err
	}
	cat, err := net.ComponentCatalog()
	if err != nil {
		return nil, nil, err
	}
	c, err := compiler.New(net.BuildConfig(),
		compiler.WithLogger(logger),
		compiler.WithMetrics(reg),
		compiler.WithCatalog(cat),
	)
	if err != nil {
		return nil, nil, err
	}

	model, err := c.Compile(g)
	if err != nil {
		return nil, nil, err
	}
	return model, g, nil
}

// parseSequence parses a comma or space separated list of vertex indices
func parseSequence(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	seq := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid sequence element %q: %w", f, err)
		}
		seq = append(seq, v)
	}
	return seq, nil
}
