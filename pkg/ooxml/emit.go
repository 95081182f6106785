package ooxml

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Emitter renders extraction results.
type Emitter interface {
	Emit(w io.Writer, res *Result) error
}

// NewEmitter returns the emitter for format (text, json or yaml). color
// only affects text output.
func NewEmitter(format string, color bool) (Emitter, error) {
	switch format {
	case "", "text":
		return TextEmitter{Color: color}, nil
	case "json":
		return JSONEmitter{}, nil
	case "yaml":
		return YAMLEmitter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextEmitter writes one "text<TAB>color" line per text node, with "-" for
// text no color applies to. With Color set, text whose color is a hex RGB
// value is painted in that color.
type TextEmitter struct {
	Color bool
}

func (e TextEmitter) Emit(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	var renderer *lipgloss.Renderer
	if e.Color {
		renderer = lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.TrueColor)
	}

	for _, run := range res.Runs {
		text, color := run.Text, "-"
		if run.HasColor {
			color = run.Color
		}
		if renderer != nil && run.HasColor && isHexColor(run.Color) {
			text = renderer.NewStyle().Foreground(lipgloss.Color("#" + run.Color)).Render(text)
		}
		fmt.Fprintf(bw, "%s\t%s\n", text, color)
	}
	return bw.Flush()
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

type runRecord struct {
	Text  string `json:"text" yaml:"text"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

type documentRecord struct {
	Source string      `json:"source,omitempty" yaml:"source,omitempty"`
	Part   string      `json:"part,omitempty" yaml:"part,omitempty"`
	Runs   []runRecord `json:"runs" yaml:"runs"`
}

func newDocumentRecord(res *Result) documentRecord {
	rec := documentRecord{Source: res.Source, Part: res.Part, Runs: make([]runRecord, 0, len(res.Runs))}
	for _, run := range res.Runs {
		r := runRecord{Text: run.Text}
		if run.HasColor {
			r.Color = run.Color
		}
		rec.Runs = append(rec.Runs, r)
	}
	return rec
}

// JSONEmitter writes one JSON object per document.
type JSONEmitter struct{}

func (JSONEmitter) Emit(w io.Writer, res *Result) error {
	return json.NewEncoder(w).Encode(newDocumentRecord(res))
}

// YAMLEmitter writes one YAML document per result.
type YAMLEmitter struct{}

func (YAMLEmitter) Emit(w io.Writer, res *Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocumentRecord(res)); err != nil {
		return err
	}
	return enc.Close()
}
