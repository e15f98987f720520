// digamectl runs the import/export pipeline from the command line: one
// spreadsheet in, CSV archives or XML documents out. It exists for batch
// archive preparation where running the HTTP service is overkill.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "digamectl",
		Short:         "Transform field-documentation spreadsheets into archive metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(),
		newExportCsvCmd(),
		newExportXmlCmd(),
		newValidateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
