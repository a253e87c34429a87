// Package cli implements the planforge command-line interface.
//
// Commands:
//   - generate: lay out a room program and export plan documents
//   - compare: run what-if scenarios over the same program
//   - import: read a room program from CSV or Excel
//   - template: manage saved room programs
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/project"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags shared by every command.
type rootOpts struct {
	verbose       bool
	configPath    string
	templatesPath string
}

// NewRootCommand builds the command tree. The logger is attached in
// PersistentPreRunE and writes to the command's stderr.
func NewRootCommand() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "planforge",
		Short:        "PlanForge lays out floor plans from a room program",
		Long:         `PlanForge turns a total area and a list of rooms into a packed floor plan with doors, windows and wall geometry, and exports it as PDF, DXF, XLSX or JSON.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w", opts.configPath, err)
			}
			level := charmlog.InfoLevel
			if opts.verbose || cfg.Verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("planforge %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "application config file")
	root.PersistentFlags().StringVar(&opts.templatesPath, "templates", project.DefaultTemplatePath(), "saved templates file")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newCompareCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newTemplateCmd(opts))

	return root
}

// Execute runs the CLI with ctx and returns the first command error.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
