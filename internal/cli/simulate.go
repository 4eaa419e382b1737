// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/simulate.go
// Summary: Replays a YAML script of window and output events with a fixed timestep.
// Usage: texeltile simulate script.yaml [--record out.ttl]
// Notes: Time is simulated; a script runs the same on every machine.

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeltile/config"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/protocol"
	"github.com/framegrace/texeltile/texel"
)

// DefaultStep is the simulated frame period.
const DefaultStep = 16 * time.Millisecond

// Script is a simulation scenario.
type Script struct {
	// Step is the simulated frame period; DefaultStep when zero.
	Step    time.Duration `yaml:"step"`
	Outputs []OutputSpec  `yaml:"outputs"`
	Steps   []Step        `yaml:"steps"`
}

// OutputSpec names a display and its size in pixels.
type OutputSpec struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func (o OutputSpec) size() geom.Size { return geom.Size{W: o.Width, H: o.Height} }

// GeometrySpec is a client-requested window geometry.
type GeometrySpec struct {
	Window texel.WindowID `yaml:"window"`
	X      int            `yaml:"x"`
	Y      int            `yaml:"y"`
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
}

func (g GeometrySpec) rect() geom.Rect { return geom.Rect{X: g.X, Y: g.Y, W: g.Width, H: g.Height} }

// Step is one action. Exactly one field must be set.
type Step struct {
	Map         texel.WindowID `yaml:"map,omitempty"`
	Unmap       texel.WindowID `yaml:"unmap,omitempty"`
	Focus       texel.WindowID `yaml:"focus,omitempty"`
	Geometry    *GeometrySpec  `yaml:"geometry,omitempty"`
	Switch      *int           `yaml:"switch,omitempty"`
	Move        *int           `yaml:"move,omitempty"`
	Layout      string         `yaml:"layout,omitempty"`
	Attach      *OutputSpec    `yaml:"attach,omitempty"`
	Detach      string         `yaml:"detach,omitempty"`
	Resize      *OutputSpec    `yaml:"resize,omitempty"`
	FocusOutput string         `yaml:"focus-output,omitempty"`
	Wait        time.Duration  `yaml:"wait,omitempty"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Map != "", s.Unmap != "", s.Focus != "", s.Geometry != nil,
		s.Switch != nil, s.Move != nil, s.Layout != "",
		s.Attach != nil, s.Detach != "", s.Resize != nil,
		s.FocusOutput != "", s.Wait > 0,
	} {
		if set {
			n++
		}
	}
	return n
}

// Validate checks the script shape without running it.
func (sc *Script) Validate() error {
	if sc.Step < 0 {
		return errors.Wrapf(errors.ErrInvalidScript, "negative step %s", sc.Step)
	}
	if len(sc.Outputs) == 0 {
		return errors.Wrap(errors.ErrInvalidScript, "no outputs")
	}
	for i, st := range sc.Steps {
		if n := st.actions(); n != 1 {
			return errors.Wrapf(errors.ErrInvalidScript, "step %d has %d actions, want 1", i+1, n)
		}
	}
	return nil
}

// LoadScript reads a script and rejects unknown keys.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidScript, err.Error())
	}
	if sc.Step == 0 {
		sc.Step = DefaultStep
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Simulation runs a script against a shell.
type Simulation struct {
	shell   *texel.Shell
	step    time.Duration
	rec     *protocol.Recorder
	elapsed time.Duration
	frames  int
}

// NewSimulation prepares a shell with settings. rec may be nil.
func NewSimulation(settings texel.Settings, step time.Duration, rec *protocol.Recorder, logger zerolog.Logger) *Simulation {
	if step <= 0 {
		step = DefaultStep
	}
	return &Simulation{
		shell: texel.NewShell(settings, logger),
		step:  step,
		rec:   rec,
	}
}

// Shell exposes the simulated shell.
func (s *Simulation) Shell() *texel.Shell { return s.shell }

// Elapsed returns the simulated time.
func (s *Simulation) Elapsed() time.Duration { return s.elapsed }

// Frames returns the number of frames advanced.
func (s *Simulation) Frames() int { return s.frames }

// Run attaches the script's outputs and plays every step. A failing step
// aborts the run with its position in the error.
func (s *Simulation) Run(sc *Script) error {
	for _, o := range sc.Outputs {
		if err := s.apply(Step{Attach: &o}); err != nil {
			return err
		}
	}
	for i, st := range sc.Steps {
		if err := s.apply(st); err != nil {
			return errors.Wrapf(err, "step %d", i+1)
		}
	}
	if s.rec != nil {
		return s.rec.Snapshot(s.shell.Snapshot())
	}
	return nil
}

func (s *Simulation) apply(st Step) error {
	sh := s.shell
	switch {
	case st.Map != "":
		if _, err := sh.MapWindow(st.Map); err != nil {
			return err
		}
		return s.windowEvent(protocol.WindowMap, st.Map)
	case st.Unmap != "":
		if err := sh.UnmapWindow(st.Unmap); err != nil {
			return err
		}
		return s.windowEvent(protocol.WindowUnmap, st.Unmap)
	case st.Focus != "":
		if err := sh.FocusWindow(st.Focus); err != nil {
			return err
		}
		return s.windowEvent(protocol.WindowFocus, st.Focus)
	case st.Geometry != nil:
		g := *st.Geometry
		if err := sh.SetWindowGeometry(g.Window, g.rect()); err != nil {
			return err
		}
		if s.rec == nil {
			return nil
		}
		return s.rec.WindowEvent(protocol.WindowEvent{Kind: protocol.WindowResize, Window: string(g.Window), Geometry: g.rect()})
	case st.Switch != nil:
		return sh.SwitchWorkspace(*st.Switch)
	case st.Move != nil:
		return sh.MoveFocusedToWorkspace(*st.Move)
	case st.Layout != "":
		return sh.SetLayout(st.Layout)
	case st.Attach != nil:
		if _, err := sh.AttachOutput(st.Attach.Name, st.Attach.size()); err != nil {
			return err
		}
		return s.outputEvent(protocol.OutputAttach, *st.Attach)
	case st.Detach != "":
		if err := sh.DetachOutput(st.Detach); err != nil {
			return err
		}
		return s.outputEvent(protocol.OutputDetach, OutputSpec{Name: st.Detach})
	case st.Resize != nil:
		if err := sh.ResizeOutput(st.Resize.Name, st.Resize.size()); err != nil {
			return err
		}
		return s.outputEvent(protocol.OutputResize, *st.Resize)
	case st.FocusOutput != "":
		if err := sh.FocusOutput(st.FocusOutput); err != nil {
			return err
		}
		return s.outputEvent(protocol.OutputFocus, OutputSpec{Name: st.FocusOutput})
	default:
		return s.Wait(st.Wait)
	}
}

// Wait advances every output by d in fixed steps, recording a frame per
// output and step. The last step is shortened to land exactly on d.
func (s *Simulation) Wait(d time.Duration) error {
	for left := d; left > 0; {
		dt := min(s.step, left)
		left -= dt
		s.elapsed += dt
		s.frames++
		for _, o := range s.shell.Outputs() {
			o.Advance(dt)
			if s.rec == nil {
				continue
			}
			if err := s.rec.Frame(protocol.FrameOf(o, s.elapsed)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Simulation) windowEvent(kind protocol.WindowEventKind, w texel.WindowID) error {
	if s.rec == nil {
		return nil
	}
	return s.rec.WindowEvent(protocol.WindowEvent{Kind: kind, Window: string(w)})
}

func (s *Simulation) outputEvent(kind protocol.OutputEventKind, o OutputSpec) error {
	if s.rec == nil {
		return nil
	}
	return s.rec.OutputEvent(protocol.OutputEvent{Kind: kind, Name: o.Name, Width: o.Width, Height: o.Height})
}

// SimulateFlags holds the simulate command's flags.
type SimulateFlags struct {
	Record string
	Step   time.Duration
}

// AddSimulateCommand adds the simulate command.
func AddSimulateCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &SimulateFlags{}
	cmd := &cobra.Command{
		Use:   "simulate <script.yaml>",
		Short: "Replay a scripted session and print the final layout",
		Long: `Replay a YAML script against a fresh shell using simulated time, then print
the final snapshot. Each step holds exactly one action:

  map, unmap, focus     window handle
  geometry              {window, x, y, width, height}
  switch, move          workspace index, from 0
  layout                layout name
  attach, resize        {name, width, height}
  detach, focus-output  output name
  wait                  duration, e.g. 200ms

With --record every event, frame and the final snapshot are written to a
recording that "texeltile inspect" can read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, global, flags, args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.Record, "record", "r", "", "write a recording to this file")
	cmd.Flags().DurationVar(&flags.Step, "step", 0, "override the script's frame period")

	root.AddCommand(cmd)
}

func runSimulate(cmd *cobra.Command, global *GlobalFlags, flags *SimulateFlags, path string) (err error) {
	ctx := cmd.Context()
	logger := loggerFrom(ctx)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc, err := LoadScript(f)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	if flags.Step > 0 {
		sc.Step = flags.Step
	}

	cfg, err := config.Load(ctx, global.Config)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	var rec *protocol.Recorder
	if flags.Record != "" {
		out, createErr := os.Create(flags.Record)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := out.Close(); err == nil {
				err = cerr
			}
		}()
		if rec, err = protocol.NewRecorder(out, "texeltile-simulate"); err != nil {
			return err
		}
	}

	sim := NewSimulation(settings, sc.Step, rec, logger)
	if err := sim.Run(sc); err != nil {
		return err
	}
	logger.Info().
		Int("steps", len(sc.Steps)).
		Int("frames", sim.Frames()).
		Dur("elapsed", sim.Elapsed()).
		Msg("simulation finished")
	if rec != nil {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded session %s to %s\n", rec.Session(), flags.Record)
		return err
	}
	return writeYAML(cmd.OutOrStdout(), sim.Shell().Snapshot())
}
