package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SayMoreX/digame/internal/export"
	"github.com/SayMoreX/digame/internal/folder"
	"github.com/SayMoreX/digame/internal/importer"
	"github.com/SayMoreX/digame/internal/validate"
	"github.com/SayMoreX/digame/internal/xmlexport"
)

// loadMappingFlag resolves --map to a mapping table, defaulting to the
// built-in LingMetaX table.
func loadMappingFlag(path string) (importer.MappingTable, error) {
	if path == "" {
		return importer.DefaultSessionMapping(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return importer.ParseMapping(data)
}

// importSpreadsheet reads one spreadsheet into a fresh project.
func importSpreadsheet(path, mappingPath string) (*folder.Project, *importer.Report, error) {
	mapping, err := loadMappingFlag(mappingPath)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var grid *importer.Grid
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		grid, err = importer.ReadXLSXGrid(f)
	} else {
		grid, err = importer.ReadCSVGrid(f)
	}
	if err != nil {
		return nil, nil, err
	}

	p := folder.NewProject()
	report, err := importer.ImportSessions(p, grid, mapping)
	if err != nil {
		return nil, nil, err
	}
	return p, report, nil
}

func printReport(report *importer.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func newImportCmd() *cobra.Command {
	var mappingPath string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a session spreadsheet and print the run report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, report, err := importSpreadsheet(args[0], mappingPath)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
	cmd.Flags().StringVar(&mappingPath, "map", "", "JSON mapping table (default: built-in LingMetaX table)")
	return cmd
}

func newExportCsvCmd() *cobra.Command {
	var mappingPath, out string
	cmd := &cobra.Command{
		Use:   "export-csv FILE",
		Short: "Import a spreadsheet and write the project/sessions/people CSV archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, report, err := importSpreadsheet(args[0], mappingPath)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.WriteZip(f, export.CsvPayloads(p, nil)); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d sessions, %d warnings)\n",
				out, report.Imported, len(report.Warnings))
			return nil
		},
	}
	cmd.Flags().StringVar(&mappingPath, "map", "", "JSON mapping table (default: built-in LingMetaX table)")
	cmd.Flags().StringVar(&out, "out", "digame-export.zip", "output archive path")
	return cmd
}

func newExportXmlCmd() *cobra.Command {
	var mappingPath, sessionID, format string
	cmd := &cobra.Command{
		Use:   "export-xml FILE",
		Short: "Import a spreadsheet and print one session as XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := importSpreadsheet(args[0], mappingPath)
			if err != nil {
				return err
			}
			s := p.FindSession(sessionID)
			if s == nil {
				return fmt.Errorf("session %q not found in %s", sessionID, args[0])
			}

			var doc string
			switch format {
			case "legacy":
				doc, err = xmlexport.LegacyXml("Session", &s.Folder,
					xmlexport.LegacyOptions{OutputTypeInTags: true})
			case "imdi":
				doc, err = xmlexport.ImdiSession(p, s)
			default:
				return fmt.Errorf("unknown format %q (want legacy or imdi)", format)
			}
			if err != nil {
				return err
			}
			fmt.Print(doc)
			return nil
		},
	}
	cmd.Flags().StringVar(&mappingPath, "map", "", "JSON mapping table (default: built-in LingMetaX table)")
	cmd.Flags().StringVar(&sessionID, "session", "", "session identifier to export")
	cmd.Flags().StringVar(&format, "format", "legacy", "output dialect: legacy or imdi")
	cmd.MarkFlagRequired("session")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var mappingPath, sessionID, serviceURL string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Generate a session's IMDI document and check it against the validation service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := importSpreadsheet(args[0], mappingPath)
			if err != nil {
				return err
			}
			s := p.FindSession(sessionID)
			if s == nil {
				return fmt.Errorf("session %q not found in %s", sessionID, args[0])
			}
			doc, err := xmlexport.ImdiSession(p, s)
			if err != nil {
				return err
			}

			client := validate.NewClient(serviceURL, timeout)
			result, err := client.Validate(context.Background(), doc)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("document is not valid (%d errors)", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mappingPath, "map", "", "JSON mapping table (default: built-in LingMetaX table)")
	cmd.Flags().StringVar(&sessionID, "session", "", "session identifier to validate")
	cmd.Flags().StringVar(&serviceURL, "service", "", "validation service base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "validation call timeout")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("service")
	return cmd
}
