// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/framegrace/texeltile/protocol"
	"github.com/framegrace/texeltile/texel"
)

// recordingSummary is what inspect prints.
type recordingSummary struct {
	Sessions []string        `yaml:"sessions"`
	Messages int             `yaml:"messages"`
	Frames   int             `yaml:"frames"`
	Elapsed  time.Duration   `yaml:"elapsed"`
	Events   []string        `yaml:"events,omitempty"`
	Errors   []string        `yaml:"errors,omitempty"`
	Final    *texel.Snapshot `yaml:"final,omitempty"`
}

func summarize(msgs []protocol.Message) recordingSummary {
	sum := recordingSummary{Messages: len(msgs)}
	for _, m := range msgs {
		switch {
		case m.Hello != nil:
			sum.Sessions = append(sum.Sessions, fmt.Sprintf("%s (%s)", uuid.UUID(m.Header.SessionID), m.Hello.ClientName))
		case m.Frame != nil:
			sum.Frames++
			sum.Elapsed = max(sum.Elapsed, m.Frame.Elapsed)
		case m.WindowEvent != nil:
			ev := m.WindowEvent
			if ev.Kind == protocol.WindowResize {
				g := ev.Geometry
				sum.Events = append(sum.Events, fmt.Sprintf("%s %s %d,%d %dx%d", ev.Kind, ev.Window, g.X, g.Y, g.W, g.H))
			} else {
				sum.Events = append(sum.Events, fmt.Sprintf("%s %s", ev.Kind, ev.Window))
			}
		case m.OutputEvent != nil:
			ev := m.OutputEvent
			if ev.Kind == protocol.OutputAttach || ev.Kind == protocol.OutputResize {
				sum.Events = append(sum.Events, fmt.Sprintf("output %s %s %dx%d", ev.Kind, ev.Name, ev.Width, ev.Height))
			} else {
				sum.Events = append(sum.Events, fmt.Sprintf("output %s %s", ev.Kind, ev.Name))
			}
		case m.Error != nil:
			sum.Errors = append(sum.Errors, m.Error.Message)
		case m.Snapshot != nil:
			sum.Final = m.Snapshot
		}
	}
	return sum
}

// AddInspectCommand adds the inspect command.
func AddInspectCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "inspect <recording>",
		Short: "Summarise a recording written by simulate --record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			msgs, err := protocol.ReadAll(f)
			if err != nil {
				logger := loggerFrom(cmd.Context())
				logger.Warn().Err(err).Int("decoded", len(msgs)).Msg("recording is damaged")
				if len(msgs) == 0 {
					return err
				}
			}
			return writeYAML(cmd.OutOrStdout(), summarize(msgs))
		},
	})
}
