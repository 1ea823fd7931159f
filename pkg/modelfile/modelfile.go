// Package modelfile splices generated models into a simulator package file.
// A package file is plain text: "package <name>", the member models, and
// "end <name>;". Models are located by their "model <name>" and
// "end <name>;" lines.
package modelfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/metrics"
)

var (
	ErrPackageEndNotFound = errors.New("package end line not found")
	ErrUnterminatedModel  = errors.New("model has no end line")
)

// Mode tells how a model reached the package
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeInsert  Mode = "insert"
)

// PackageName returns the package a file holds, named after the file
// ("Method.mo" holds package Method)
func PackageName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// NewPackage returns the text of an empty package
func NewPackage(name string) string {
	return "package " + name + "\n" + "end " + name + ";\n"
}

// Splice puts model into container. An existing model of the same name is
// replaced where it stands; otherwise model is inserted before the package's
// end line.
func Splice(container, model, modelName, packageName string) (string, Mode, error) {
	lines := strings.SplitAfter(container, "\n")
	model = strings.TrimRight(model, "\n") + "\n"

	if start, end, found, err := findModel(lines, modelName); err != nil {
		return "", "", err
	} else if found {
		var b strings.Builder
		b.WriteString(strings.Join(lines[:start], ""))
		b.WriteString(model)
		b.WriteString(strings.Join(lines[end+1:], ""))
		return b.String(), ModeReplace, nil
	}

	endLine := "end " + packageName + ";"
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != endLine {
			continue
		}
		var b strings.Builder
		b.WriteString(strings.Join(lines[:i], ""))
		b.WriteString(model)
		b.WriteString(strings.Join(lines[i:], ""))
		return b.String(), ModeInsert, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrPackageEndNotFound, endLine)
}

// findModel returns the line span of the model named name
func findModel(lines []string, name string) (start, end int, found bool, err error) {
	header := "model " + name
	footer := "end " + name + ";"

	start = -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if trimmed == header || strings.HasPrefix(trimmed, header+" ") {
				start = i
			}
			continue
		}
		if trimmed == footer {
			return start, i, true, nil
		}
	}
	if start >= 0 {
		return 0, 0, false, fmt.Errorf("%w: %s", ErrUnterminatedModel, name)
	}
	return 0, 0, false, nil
}

// Writer patches package files on disk
type Writer struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Writer
type Option func(*Writer)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// WithMetrics records patches in r
func WithMetrics(r *metrics.Registry) Option {
	return func(w *Writer) { w.metrics = r }
}

// NewWriter creates a package file writer
func NewWriter(opts ...Option) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.DefaultLogger()
	}
	return w
}

// Patch splices model into the package file at path. The file is rewritten
// through a temporary file in the same directory and renamed over the
// original, so readers never see a partial package. With create set, a
// missing file starts out as an empty package.
func (w *Writer) Patch(path, modelName, model string, create bool) (Mode, error) {
	start := time.Now()
	pkg := PackageName(path)

	mode, err := w.patch(path, pkg, modelName, model, create)
	if w.metrics != nil {
		w.metrics.RecordPatch(string(mode), err)
	}
	if err != nil {
		w.logger.Error("model file patch failed",
			logging.Path(path), logging.Model(modelName), logging.Error(err))
		return mode, err
	}

	w.logger.Info("model file patched",
		logging.Component("modelfile"),
		logging.Path(path),
		logging.Model(modelName),
		logging.String("mode", string(mode)),
		logging.Bool("create", create),
		logging.Latency(time.Since(start)),
	)
	return mode, nil
}

func (w *Writer) patch(path, pkg, modelName, model string, create bool) (Mode, error) {
	perm := os.FileMode(0o644)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
	case errors.Is(err, os.ErrNotExist) && create:
		data = []byte(NewPackage(pkg))
	default:
		return ModeInsert, fmt.Errorf("failed to read package file: %w", err)
	}

	out, mode, err := Splice(string(data), model, modelName, pkg)
	if err != nil {
		return ModeInsert, fmt.Errorf("%s: %w", path, err)
	}

	if err := writeAtomic(path, []byte(out), perm); err != nil {
		return mode, err
	}
	return mode, nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace package file: %w", err)
	}
	return nil
}
