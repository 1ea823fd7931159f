package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/heatnet/pkg/config"
	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/metrics"
	"github.com/dd0wney/heatnet/pkg/tree"
)

func runTree(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("tree", stderr)
	var common commonFlags
	common.register(fs)
	sequence := fs.String("sequence", "", "Prüfer sequence to decode, e.g. 0,0")
	vertices := fs.Int("n", 0, "Vertex count; defaults to the sequence length plus two")
	random := fs.Bool("random", false, "Decode a uniformly random sequence for -n vertices")
	seed := fs.Int64("seed", 0, "Seed for -random; the current time when zero")
	network := fs.String("network", "", "Print the sequence encoding this network's tree instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := common.logger(stderr)
	reg := metrics.NewRegistry()

	if *network != "" {
		return encodeNetwork(*network, stdout)
	}

	var seq []int
	switch {
	case *random:
		if *vertices < 2 {
			return errors.New("-random needs -n of at least 2")
		}
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		seq = tree.Random(*vertices, rand.New(rand.NewSource(s)))
		logger.Debug("random sequence", logging.Int("seed", int(s)), logging.Sequence(seq))
	case *sequence != "":
		var err error
		if seq, err = parseSequence(*sequence); err != nil {
			return err
		}
	default:
		return errors.New("either -sequence or -random is required")
	}

	n := *vertices
	if n == 0 {
		n = len(seq) + 2
	}
	edges, err := tree.Decode(n, seq)
	reg.RecordTree(n, err)
	if err != nil {
		logger.Error("tree decode failed", logging.Sequence(seq), logging.Error(err))
		return err
	}

	fmt.Fprintf(stdout, "# sequence %s\n", formatSequence(seq))
	for _, e := range edges {
		fmt.Fprintf(stdout, "%d %d\n", e[0], e[1])
	}
	logger.Info("tree decoded", logging.Sequence(seq), logging.Int("vertices", n), logging.Count(len(edges)))
	return common.flush(reg)
}

func encodeNetwork(path string, stdout io.Writer) error {
	net, err := config.Load(path)
	if err != nil {
		return err
	}
	g, err := net.Graph()
	if err != nil {
		return err
	}
	seq, err := tree.Encode(g)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, formatSequence(seq))
	return nil
}

func runSequences(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("sequences", stderr)
	var common commonFlags
	common.register(fs)
	vertices := fs.Int("n", 4, "Vertex count")
	count := fs.Bool("count", false, "Print only the number of sequences")
	limit := fs.Int("limit", 0, "Stop after this many sequences; 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *vertices < 2 {
		return fmt.Errorf("-n must be at least 2, got %d", *vertices)
	}

	if *count {
		total, err := tree.Count(*vertices)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, total)
		return nil
	}

	reg := metrics.NewRegistry()
	emitted := 0
	tree.Enumerate(*vertices, func(seq []int) bool {
		fmt.Fprintln(stdout, formatSequence(seq))
		emitted++
		return *limit == 0 || emitted < *limit
	})
	reg.SequencesEnumerated.Add(float64(emitted))

	common.logger(stderr).Debug("sequences enumerated", logging.Int("vertices", *vertices), logging.Count(emitted))
	return common.flush(reg)
}

func formatSequence(seq []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
