package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a layout document and report every problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			if err := document.Validate(doc); err != nil {
				fields := errors.Fields(err)
				for _, f := range fields {
					printError("%s: %s", f.Path, f.Message)
				}
				return fmt.Errorf("%s: %d problem(s)", args[0], len(fields))
			}

			printSuccess("%s is valid", args[0])
			if doc.Name != "" {
				printKeyValue("name", doc.Name)
			} else {
				printWarning("no name set; renders are titled %q", "layout")
			}
			printKeyValue("root", doc.Root.Kind)
			printNextStep("Render it", "panes render "+args[0])
			return nil
		},
	}
}
