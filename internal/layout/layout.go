// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/layout/layout.go
// Summary: Pure dynamic-tiling algorithms: master-stack, bottom-stack, centered-master, floating.
// Usage: Workspaces call Arrange with their tiles in order and apply the returned targets.
// Notes: Arrange has no side effects; the same input always yields the same geometry.

// Package layout arranges ordered tiles into master and slave stacks.
package layout

import (
	"math"
	"strings"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
)

// Parameter bounds shared with the workspace setters.
const (
	MinMWFact = 0.01
	MaxMWFact = 0.99
)

// Kind selects a layout algorithm.
type Kind uint8

const (
	Tile Kind = iota
	BottomStack
	CenteredMaster
	Floating
)

var kindNames = map[Kind]string{
	Tile:           "tile",
	BottomStack:    "bottom-stack",
	CenteredMaster: "centered-master",
	Floating:       "floating",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every layout in declaration order.
func Kinds() []Kind {
	return []Kind{Tile, BottomStack, CenteredMaster, Floating}
}

// ParseKind resolves a layout name, ignoring case, dashes and underscores.
func ParseKind(name string) (Kind, error) {
	key := normalize(name)
	for _, k := range Kinds() {
		if normalize(kindNames[k]) == key {
			return k, nil
		}
	}
	return Tile, errors.Wrapf(errors.ErrUnknownLayout, "%q", name)
}

// MarshalText lets kinds appear by name in YAML and JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a layout name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

// Item is one tile as seen by a layout.
type Item struct {
	// Proportion is the tile's relative weight inside its stack.
	Proportion float64
	// Floating tiles are skipped and keep Geometry.
	Floating bool
	// Geometry is the tile's explicit geometry, used only for floating tiles.
	Geometry geom.Rect
}

// Params are the tunables of the stacked layouts.
type Params struct {
	NMaster  int
	MWFact   float64
	InnerGap int
	OuterGap int
}

// ClampMWFact bounds a master width factor to [MinMWFact, MaxMWFact].
// NaN maps to the lower bound.
func ClampMWFact(f float64) float64 {
	if math.IsNaN(f) || f < MinMWFact {
		return MinMWFact
	}
	if f > MaxMWFact {
		return MaxMWFact
	}
	return f
}

// Arrange computes one geometry per item, in input order. Floating items (and
// every item under the Floating layout) keep their Geometry. No result is
// smaller than 1x1, even when gaps consume the whole area.
func Arrange(kind Kind, items []Item, area geom.Rect, p Params) []geom.Rect {
	out := make([]geom.Rect, len(items))
	tiled := make([]int, 0, len(items))
	for i, it := range items {
		if it.Floating || kind == Floating {
			out[i] = it.Geometry.AtLeast(1, 1)
			continue
		}
		tiled = append(tiled, i)
	}
	if len(tiled) == 0 {
		return out
	}

	usable := area.Inset(p.OuterGap).AtLeast(1, 1)
	nmaster := min(max(p.NMaster, 1), len(tiled))
	mwfact := ClampMWFact(p.MWFact)
	props := make([]float64, len(items))
	for i, it := range items {
		props[i] = it.Proportion
	}

	l := stacked{props: props, gap: p.InnerGap, out: out}
	switch kind {
	case BottomStack:
		l.masterStack(tiled, nmaster, mwfact, usable.Transpose())
		for _, i := range tiled {
			out[i] = out[i].Transpose()
		}
	case CenteredMaster:
		l.centeredMaster(tiled, nmaster, mwfact, usable)
	default:
		l.masterStack(tiled, nmaster, mwfact, usable)
	}

	for _, i := range tiled {
		out[i] = out[i].AtLeast(1, 1)
	}
	return out
}

type stacked struct {
	props []float64
	gap   int
	out   []geom.Rect
}

// masterStack places the first nmaster tiles in a left column and the rest in
// a right column. Bottom-stack reuses it on a transposed area.
func (l stacked) masterStack(idx []int, nmaster int, mwfact float64, area geom.Rect) {
	master, stack := area, area
	if len(idx) > nmaster {
		stack.W = int(math.Round(float64(master.W-l.gap) * (1 - mwfact)))
		master.W -= l.gap + stack.W
		stack.X = master.X + master.W + l.gap
	}
	l.column(idx[:nmaster], master)
	l.column(idx[nmaster:], stack)
}

// centeredMaster puts the master column in the middle with slaves alternating
// left (even slave index) and right (odd). A single slave sits on the right of
// a two-column split.
func (l stacked) centeredMaster(idx []int, nmaster int, mwfact float64, area geom.Rect) {
	slaves := idx[nmaster:]
	master, left, right := area, area, area

	switch {
	case len(slaves) > 1:
		master.W = int(math.Round(float64(area.W-2*l.gap) * mwfact))
		left.W = (area.W - master.W - 2*l.gap) / 2
		right.W = area.W - master.W - 2*l.gap - left.W
		master.X = area.X + left.W + l.gap
		right.X = master.X + master.W + l.gap
	case len(slaves) == 1:
		master.W = int(math.Round(float64(area.W-l.gap) * mwfact))
		right.W = area.W - master.W - l.gap
		right.X = master.X + master.W + l.gap
	}

	var leftIdx, rightIdx []int
	if len(slaves) == 1 {
		rightIdx = slaves
	} else {
		for i, tile := range slaves {
			if i%2 == 0 {
				leftIdx = append(leftIdx, tile)
			} else {
				rightIdx = append(rightIdx, tile)
			}
		}
	}

	l.column(idx[:nmaster], master)
	l.column(leftIdx, left)
	l.column(rightIdx, right)
}

// column stacks tiles top to bottom, dividing the height by proportion.
func (l stacked) column(idx []int, col geom.Rect) {
	if len(idx) == 0 {
		return
	}
	weights := make([]float64, len(idx))
	for i, tile := range idx {
		weights[i] = l.props[tile]
	}
	heights := Dimensions(weights, col.H-(len(idx)-1)*l.gap)
	y := col.Y
	for i, tile := range idx {
		l.out[tile] = geom.Rect{X: col.X, Y: y, W: col.W, H: heights[i]}
		y += heights[i] + l.gap
	}
}

// Dimensions splits length between weights proportionally. Each share is
// floored and the remainder handed out one unit at a time from the front, so
// the shares always sum to length. Non-positive or non-finite weights count as
// zero; if no weight is usable the split is even.
func Dimensions(weights []float64, length int) []int {
	if len(weights) == 0 {
		return nil
	}
	total := 0.0
	for _, w := range weights {
		if usableWeight(w) {
			total += w
		}
	}

	lengths := make([]int, len(weights))
	sum := 0
	for i, w := range weights {
		share := 1.0 / float64(len(weights))
		if total > 0 {
			share = 0
			if usableWeight(w) {
				share = w / total
			}
		}
		lengths[i] = int(math.Floor(float64(length) * share))
		sum += lengths[i]
	}

	rest := sum - length
	for i := range lengths {
		switch {
		case rest < 0:
			lengths[i]++
			rest++
		case rest > 0:
			lengths[i]--
			rest--
		}
	}
	return lengths
}

func usableWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0)
}
