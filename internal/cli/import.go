package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/importer"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/project"
)

type importOpts struct {
	saveTemplate string
	description  string
	projectPath  string
}

func newImportCmd(root *rootOpts) *cobra.Command {
	opts := &importOpts{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Read a room program from CSV or Excel",
		Long: `Import reads room types, counts and optional sizes from a CSV or XLSX file.
Headers are matched case-insensitively; a row named "Total" carries the total
area. The program can be saved as a template or as a new project.`,
		Example: `  planforge import rooms.csv
  planforge import rooms.xlsx --save-template "Duplex" --description "4 bed duplex"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			path := args[0]

			res := importer.ImportFile(path)
			for _, w := range res.Warnings {
				logger.Warn(w, "file", filepath.Base(path))
			}
			if len(res.Errors) > 0 {
				for _, e := range res.Errors {
					printError(out, "%s", e)
				}
				return fmt.Errorf("import of %s failed with %d error(s)", path, len(res.Errors))
			}

			cfg, err := project.LoadAppConfig(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			settings := model.DefaultSettings()
			cfg.ApplyToSettings(&settings)

			printSuccess(out, "Imported %d room(s) from %s", res.Rooms, filepath.Base(path))
			printRequest(out, res.Request, settings.InputUnit)

			if opts.saveTemplate != "" {
				if err := saveAsTemplate(root.templatesPath, opts.saveTemplate, opts.description, res.Request, settings); err != nil {
					return err
				}
				printSuccess(out, "Saved template %q", opts.saveTemplate)
			}

			if opts.projectPath != "" {
				p := model.NewProject()
				p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				p.Request = res.Request
				p.Settings = settings
				if err := project.SaveProject(opts.projectPath, p); err != nil {
					return fmt.Errorf("failed to save project: %w", err)
				}
				printFile(out, opts.projectPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.saveTemplate, "save-template", "", "save the imported program as a template with this name")
	cmd.Flags().StringVar(&opts.description, "description", "", "description for --save-template")
	cmd.Flags().StringVar(&opts.projectPath, "project", "", "save the imported program as a project file")

	return cmd
}
