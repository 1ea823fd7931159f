// Package compiler turns a topology graph into a simulator model: every node
// is realized once through the template library, pipes are laid along edges
// and ports are threaded across them.
package compiler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/metrics"
	"github.com/dd0wney/heatnet/pkg/script"
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/topology"
	"github.com/dd0wney/heatnet/pkg/validation"
)

// BuildConfig selects what a compile produces. It is fixed for the lifetime
// of a Compiler.
type BuildConfig struct {
	ModelName string               `validate:"required,identifier,max=128"`
	Source    templates.SourceKind `validate:"required"`
	Pipes     int                  `validate:"min=1,max=3"`
}

// Validate checks the configuration
func (c BuildConfig) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid build config: %w", err)
	}
	if !c.Source.Valid() {
		return fmt.Errorf("invalid build config: %w: %d", templates.ErrUnknownSourceKind, int(c.Source))
	}
	return nil
}

// Compiler compiles graphs for one build configuration
type Compiler struct {
	config  BuildConfig
	emitter *script.Emitter
	library *templates.Library
	logger  logging.Logger
	metrics *metrics.Registry
	newID   func() string
}

// Option configures a Compiler
type Option func(*Compiler)

// WithLogger sets the logger; the default is the process-wide logger
func WithLogger(l logging.Logger) Option {
	return func(c *Compiler) { c.logger = l }
}

// WithMetrics records builds in r
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Compiler) { c.metrics = r }
}

// WithCatalog replaces the built-in component catalog
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Compiler) { c.emitter = script.NewEmitter(cat) }
}

// WithBuildIDs sets the build ID generator
func WithBuildIDs(fn func() string) Option {
	return func(c *Compiler) { c.newID = fn }
}

// New creates a compiler
func New(config BuildConfig, opts ...Option) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Compiler{
		config:  config,
		emitter: script.NewEmitter(nil),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.DefaultLogger()
	}

	lib, err := templates.New(c.emitter, templates.BuildConfig{Pipes: config.Pipes})
	if err != nil {
		return nil, err
	}
	c.library = lib
	return c, nil
}

// Config returns the build configuration
func (c *Compiler) Config() BuildConfig {
	return c.config
}

// Compile realizes every unbuilt node and lays every unbuilt pipe of g.
// Build state is recorded on g, so compiling the same graph twice yields an
// empty model the second time; call g.Reset to start over.
func (c *Compiler) Compile(g *topology.Graph) (*script.Model, error) {
	start := time.Now()
	model := script.NewModel(c.config.ModelName)
	model.BuildID = c.newID()

	log := c.logger.With(
		logging.Component("compiler"),
		logging.Model(c.config.ModelName),
		logging.Source(c.config.Source.String()),
		logging.Pipes(c.config.Pipes),
		logging.BuildID(model.BuildID),
	)
	timer := logging.StartTimer(log, "model compiled")

	b := &build{Compiler: c, graph: g, model: model, log: log}
	err := b.run()
	c.record(model, err, time.Since(start))
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	timer.End(logging.Instances(model.InstanceCount()), logging.Connections(model.ConnectionCount()))
	return model, nil
}

func (c *Compiler) record(model *script.Model, err error, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordBuild(c.config.Source.String(), c.config.Pipes, status, elapsed)
	if err != nil {
		return
	}

	bySection := make(map[string]int)
	for _, s := range script.Sections() {
		if n := len(model.Declarations(s)); n > 0 {
			bySection[s.String()] = n
		}
	}
	c.metrics.RecordEmission(bySection, model.ConnectionCount())
}

// PipeLength returns the total length of pipe laid along the edges of g:
// each edge's truncated length times the number of parallel pipes.
func PipeLength(g *topology.Graph, pipes int) int {
	total := 0
	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		total += segmentLength(from, to) * pipes
	}
	return total
}

func segmentLength(a, b *topology.Node) int {
	return int(a.Pos.Distance(b.Pos))
}
