package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/smazurov/complog/internal/logging"
)

// CreateLevelsCmd creates the levels command, which prints the component
// table and optionally changes one level first.
func CreateLevelsCmd(facility FacilityFunc) *cobra.Command {
	var (
		set      []string
		showAll  bool
		showOnly string
	)

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show component levels and destinations",
		Long: `Prints every component with its threshold, destination and whether the
environment pinned it. --set applies COMPONENT=LEVEL pairs first, in order,
the way the [log] block of the configuration file does.`,
		Example: `  complog levels
  complog levels --set ALL=NIV_WARN --set FSAL=NIV_DEBUG
  complog levels --component NLM`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := facility()

			if len(set) > 0 {
				pairs := make([]logging.ConfigPair, 0, len(set))
				for _, kv := range set {
					key, value, ok := cutPair(kv)
					if !ok {
						return fmt.Errorf("--set %q: want COMPONENT=LEVEL", kv)
					}
					pairs = append(pairs, logging.ConfigPair{Key: key, Value: value})
				}
				if applied := f.ApplyConfig(pairs); applied != len(pairs) {
					return fmt.Errorf("applied %d of %d level settings", applied, len(pairs))
				}
			}

			comps := logging.Components()
			if showOnly != "" {
				comp, ok := logging.ComponentByName(showOnly)
				if !ok {
					return fmt.Errorf("%w: %s", logging.ErrUnknownComponent, showOnly)
				}
				comps = []logging.Component{comp}
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Component", "Label", "Level", "Destination", "Pinned"})
			for _, c := range comps {
				if !showAll && showOnly == "" && c >= logging.ComponentFake {
					continue
				}
				pinned := ""
				if f.Pinned(c) {
					pinned = "env"
				}
				t.AppendRow(table.Row{c.Name(), c.Display(), f.Level(c), f.Destination(c).String(), pinned})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Set a level before printing (COMPONENT=LEVEL, repeatable)")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include the FAKE and message-format pseudo components")
	cmd.Flags().StringVarP(&showOnly, "component", "C", "", "Show one component")

	return cmd
}

func cutPair(kv string) (string, string, bool) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
