package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind indicates a chart kind name outside the supported set.
var ErrUnknownKind = errors.New("unknown chart kind")

// ChartKind is the chart style to render.
type ChartKind string

const (
	KindBar       ChartKind = "bar"
	KindLine      ChartKind = "line"
	KindArea      ChartKind = "area"
	KindPie       ChartKind = "pie"
	KindRadar     ChartKind = "radar"
	KindHistogram ChartKind = "histogram"
)

// Kinds returns every supported chart kind in display order.
func Kinds() []ChartKind {
	return []ChartKind{KindBar, KindLine, KindArea, KindPie, KindRadar, KindHistogram}
}

// Valid reports whether k is a supported chart kind.
func (k ChartKind) Valid() bool {
	switch k {
	case KindBar, KindLine, KindArea, KindPie, KindRadar, KindHistogram:
		return true
	}
	return false
}

// ParseChartKind parses a chart kind name (case-insensitive).
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// EmbeddedChart describes a chart already present in the workbook.
type EmbeddedChart struct {
	// Part is the package part name (e.g. "xl/charts/chart1.xml").
	Part string `json:"part" yaml:"part"`
	// ChartType is the OOXML chart type name (e.g. Bar, Line, Doughnut).
	ChartType string `json:"chart_type" yaml:"chart_type"`
	// Title is the chart title, if any.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Kind is the closest supported chart kind; empty when there is none.
	Kind ChartKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}
