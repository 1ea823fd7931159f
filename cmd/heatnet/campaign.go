package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/heatnet/pkg/compiler"
	"github.com/dd0wney/heatnet/pkg/config"
	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/metrics"
	"github.com/dd0wney/heatnet/pkg/modelfile"
	"github.com/dd0wney/heatnet/pkg/simulation"
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/tree"
)

// campaignSources are the tree-topology variants; the sea source only
// drives the ring model
var campaignSources = []templates.SourceKind{
	templates.GasBoiler,
	templates.HeatPump,
	templates.HeatPumpGasBoiler,
	templates.GeoHeatPump,
	templates.GasBoilerGeo,
}

type campaignOptions struct {
	commonFlags
	pkg     string
	plan    string
	sources []templates.SourceKind
	pipes   []int
	ring    bool
}

// campaignRow summarizes the models of one source and pipe count
type campaignRow struct {
	source    string
	pipes     int
	models    int
	minLength int
	maxLength int
}

func (r *campaignRow) add(length int) {
	if r.models == 0 || length < r.minLength {
		r.minLength = length
	}
	if length > r.maxLength {
		r.maxLength = length
	}
	r.models++
}

func parseCampaignFlags(args []string, stderr io.Writer) (*campaignOptions, error) {
	fs := newFlagSet("campaign", stderr)
	opts := &campaignOptions{}
	opts.register(fs)

	var sources, pipes string
	fs.StringVar(&opts.pkg, "package", "", "Package file receiving the models (created when missing)")
	fs.StringVar(&opts.plan, "plan", "", "Write the simulation requests of every model to this YAML file")
	fs.StringVar(&sources, "sources", joinKinds(campaignSources), "Comma separated source kinds")
	fs.StringVar(&pipes, "pipes", "2,3", "Comma separated pipe counts of the tree variants")
	fs.BoolVar(&opts.ring, "ring", true, "Also write the sea-source ring model")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.pkg == "" {
		return nil, errors.New("-package is required")
	}

	for _, name := range splitList(sources) {
		kind, err := templates.ParseSourceKind(name)
		if err != nil {
			return nil, err
		}
		opts.sources = append(opts.sources, kind)
	}
	for _, s := range splitList(pipes) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 2 || n > 3 {
			return nil, fmt.Errorf("invalid tree pipe count %q: want 2 or 3", s)
		}
		opts.pipes = append(opts.pipes, n)
	}
	return opts, nil
}

func runCampaign(args []string, stdout, stderr io.Writer) error {
	opts, err := parseCampaignFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := opts.logger(stderr)
	reg := metrics.NewRegistry()
	writer := modelfile.NewWriter(modelfile.WithLogger(logger), modelfile.WithMetrics(reg))
	pkgName := modelfile.PackageName(opts.pkg)

	timer := logging.StartTimer(logger, "campaign written", logging.Path(opts.pkg))

	var (
		rows []campaignRow
		plan []simulation.Request
	)
	write := func(row *campaignRow, net *config.Network) error {
		model, g, err := compileNetwork(net, logger, reg)
		if err != nil {
			return err
		}
		if _, err := writer.Patch(opts.pkg, model.Name, model.String(), true); err != nil {
			return err
		}
		row.add(compiler.PipeLength(g, net.Pipes))
		plan = append(plan, simulation.NewRequest(pkgName+"."+model.Name, net.Source, net.Pipes, g))
		return nil
	}

	for _, kind := range opts.sources {
		for _, pipes := range opts.pipes {
			base := config.SampleDistrict(kind, pipes)
			seqs, err := tree.All(len(base.Nodes))
			if err != nil {
				timer.EndError(err)
				return err
			}
			reg.SequencesEnumerated.Add(float64(len(seqs)))

			row := campaignRow{source: kind.String(), pipes: pipes}
			for j, seq := range seqs {
				name := fmt.Sprintf("model_%s_%d%d", kind, pipes, j)
				if err := write(&row, base.WithSequence(name, seq)); err != nil {
					timer.EndError(err)
					return err
				}
			}
			rows = append(rows, row)
		}
	}

	if opts.ring {
		row := campaignRow{source: templates.Sea.String(), pipes: 1}
		if err := write(&row, config.SampleDistrict(templates.Sea, 1)); err != nil {
			timer.EndError(err)
			return err
		}
		rows = append(rows, row)
	}

	reg.CampaignModels.Set(float64(len(plan)))
	timer.End(logging.Count(len(plan)))

	if opts.plan != "" {
		if err := writePlan(opts.plan, plan); err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, renderCampaignSummary(opts.pkg, rows))
	return opts.flush(reg)
}

func writePlan(path string, plan []simulation.Request) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinKinds(kinds []templates.SourceKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}
