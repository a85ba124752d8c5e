package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smazurov/complog/internal/logging"
)

// FacilityFunc returns the facility a command acts on. It is called when
// the command runs, after configuration is applied.
type FacilityFunc func() *logging.Facility

// CreateEmitCmd creates the emit command, which dispatches one record
// through a component.
func CreateEmitCmd(facility FacilityFunc) *cobra.Command {
	var (
		component   string
		level       string
		function    string
		thread      string
		destination string
	)

	cmd := &cobra.Command{
		Use:   "emit [flags] message...",
		Short: "Dispatch one record through a log component",
		Long: `Renders the message with the component's prefix and sends it to the
component's destination, subject to the component threshold. NIV_FATAL runs
the registered cleanups and exits with status 1.`,
		Example: `  complog emit --component FSAL --level NIV_WARN "export /data is read only"
  complog emit -C NLM -l DEBUG --destination STDERR --thread lockd "grace period over"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := facility()

			comp, ok := logging.ComponentByName(component)
			if !ok {
				return fmt.Errorf("%w: %s", logging.ErrUnknownComponent, component)
			}
			lvl, ok := logging.LevelByName(level)
			if !ok {
				return fmt.Errorf("%w: %s", logging.ErrUnknownLevel, level)
			}
			if destination != "" {
				if err := f.SetDestination(comp, destination); err != nil {
					return fmt.Errorf("set destination: %w", err)
				}
			}

			ctx := context.Background()
			if thread != "" {
				ctx = f.WithThreadName(ctx, thread)
			}
			if !f.Enabled(comp, lvl) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is at %s, %s record not dispatched\n",
					comp.Name(), f.Level(comp), lvl)
				return nil
			}
			f.Display(ctx, comp, function, lvl, "%s", strings.Join(args, " "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&component, "component", "C", "COMPONENT_MAIN", "Component to log through")
	cmd.Flags().StringVarP(&level, "level", "l", "NIV_EVENT", "Record level (NIV_EVENT or EVENT)")
	cmd.Flags().StringVarP(&function, "function", "F", "emit", "Function name shown in the prefix")
	cmd.Flags().StringVarP(&thread, "thread", "t", "", "Thread name shown in the prefix")
	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Override the component destination for this record")

	return cmd
}
