// File: internal/reporting/reporter.go

// Package reporting serializes a finished arrangement into the artifact the
// DAW-integration collaborator consumes.
package reporting

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/atelier-audio/arranger-cli/internal/pipeline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reporter writes one arrangement artifact to an output.
type Reporter interface {
	// Write serializes the arrangement.
	Write(art *pipeline.Arrangement) error
	// Close finalizes the artifact and closes any underlying resources.
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format and output path. An empty path
// or "stdout" writes to standard output.
func New(format, outputPath string, pretty bool) (Reporter, error) {
	var writer io.WriteCloser
	isStdOut := outputPath == "" || outputPath == "stdout"

	if isStdOut {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	switch format {
	case "json":
		return &jsonReporter{w: writer, pretty: pretty}, nil
	case "yaml":
		return &yamlReporter{w: writer}, nil
	default:
		if !isStdOut {
			writer.Close()
		}
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// jsonReporter emits the artifact as a single JSON document.
type jsonReporter struct {
	w      io.WriteCloser
	pretty bool
}

func (r *jsonReporter) Write(art *pipeline.Arrangement) error {
	enc := json.NewEncoder(r.w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(art); err != nil {
		return fmt.Errorf("failed to encode arrangement: %w", err)
	}
	return nil
}

func (r *jsonReporter) Close() error {
	return r.w.Close()
}

// yamlReporter emits the artifact as YAML, for readers who want to skim it.
type yamlReporter struct {
	w io.WriteCloser
}

func (r *yamlReporter) Write(art *pipeline.Arrangement) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(art); err != nil {
		return fmt.Errorf("failed to encode arrangement: %w", err)
	}
	return enc.Close()
}

func (r *yamlReporter) Close() error {
	return r.w.Close()
}
