package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smazurov/complog/internal/logging"
)

// CreateErrorsCmd creates the errors command, which renders error codes of
// a registered family.
func CreateErrorsCmd(facility FacilityFunc) *cobra.Command {
	var (
		family int
		code   int
		status int
		line   int
		emit   bool
		comp   string
	)

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Render an error code of a registered family",
		Example: `  complog errors --code 7 --status 13 --line 120
  complog errors --family 0 --code 11 --emit --component RPC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := facility()

			name, ok := f.FamilyName(family)
			if !ok {
				return fmt.Errorf("no error family %d", family)
			}

			if emit {
				c, ok := logging.ComponentByName(comp)
				if !ok {
					return fmt.Errorf("%w: %s", logging.ErrUnknownComponent, comp)
				}
				f.DisplayErrorLine(cmd.Context(), c, "errors", family, code, status, line)
				return nil
			}

			buf := logging.NewBuffer(logging.LogBufferLen)
			f.FormatError(buf, family, code, status, line)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, buf)
			return nil
		},
	}

	cmd.Flags().IntVar(&family, "family", logging.FamilySystem, "Error family number")
	cmd.Flags().IntVar(&code, "code", logging.ErrCodeSuccess, "Error code within the family")
	cmd.Flags().IntVar(&status, "status", 0, "OS error number, 0 for none")
	cmd.Flags().IntVar(&line, "line", 0, "Source line reported in the message")
	cmd.Flags().BoolVar(&emit, "emit", false, "Dispatch the error line as a NIV_CRIT record instead of printing it")
	cmd.Flags().StringVarP(&comp, "component", "C", "COMPONENT_MAIN", "Component used with --emit")

	return cmd
}
