// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/internal/layout"
)

// LayoutFlags holds the parameters of the layout command.
type LayoutFlags struct {
	Kind     string
	Size     string
	Count    int
	NMaster  int
	MWFact   float64
	InnerGap int
	OuterGap int
}

// layoutResult is what the layout command prints.
type layoutResult struct {
	Layout layout.Kind `yaml:"layout"`
	Area   geom.Rect   `yaml:"area"`
	Tiles  []geom.Rect `yaml:"tiles"`
}

// AddLayoutCommand adds the layout command.
func AddLayoutCommand(root *cobra.Command) {
	flags := &LayoutFlags{}
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the geometry a layout assigns to N tiles",
		Example: `  texeltile layout --kind centered-master --count 3
  texeltile layout --kind bottom-stack --size 2560x1440 --nmaster 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := runLayout(flags)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Kind, "kind", "k", layout.Tile.String(), "layout: "+kindList())
	f.StringVarP(&flags.Size, "size", "s", "1920x1080", "output size as WIDTHxHEIGHT")
	f.IntVarP(&flags.Count, "count", "n", 3, "number of tiles")
	f.IntVar(&flags.NMaster, "nmaster", 1, "number of master tiles")
	f.Float64Var(&flags.MWFact, "mwfact", 0.5, "master width factor")
	f.IntVar(&flags.InnerGap, "inner-gaps", 8, "gap between tiles")
	f.IntVar(&flags.OuterGap, "outer-gaps", 8, "gap around the output edge")

	root.AddCommand(cmd)
}

func runLayout(flags *LayoutFlags) (layoutResult, error) {
	kind, err := layout.ParseKind(flags.Kind)
	if err != nil {
		return layoutResult{}, err
	}
	size, err := parseSize(flags.Size)
	if err != nil {
		return layoutResult{}, err
	}
	if flags.Count < 0 {
		return layoutResult{}, errors.Wrapf(errors.ErrInvalidArgument, "count %d", flags.Count)
	}
	items := make([]layout.Item, flags.Count)
	for i := range items {
		items[i].Proportion = 1
	}
	area := geom.FromSize(size)
	return layoutResult{
		Layout: kind,
		Area:   area,
		Tiles: layout.Arrange(kind, items, area, layout.Params{
			NMaster:  flags.NMaster,
			MWFact:   flags.MWFact,
			InnerGap: flags.InnerGap,
			OuterGap: flags.OuterGap,
		}),
	}, nil
}

func parseSize(s string) (geom.Size, error) {
	var size geom.Size
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &size.W, &size.H); err != nil {
		return geom.Size{}, errors.Wrapf(errors.ErrInvalidArgument, "size %q", s)
	}
	if size.W <= 0 || size.H <= 0 {
		return geom.Size{}, errors.Wrapf(errors.ErrInvalidArgument, "size %q", s)
	}
	return size, nil
}

func kindList() string {
	names := make([]string, 0, len(layout.Kinds()))
	for _, k := range layout.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}
