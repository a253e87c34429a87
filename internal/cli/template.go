package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/project"
)

func newTemplateCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage saved room programs",
	}

	cmd.AddCommand(newTemplateListCmd(root))
	cmd.AddCommand(newTemplateShowCmd(root))
	cmd.AddCommand(newTemplateSaveCmd(root))
	cmd.AddCommand(newTemplateDeleteCmd(root))

	return cmd
}

func newTemplateListCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplatesWithBuiltins(root.templatesPath)
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			t := newTable("ID", "Name", "Area", "Rooms", "Description")
			for _, tmpl := range store.Templates {
				t.Row(
					tmpl.ID,
					tmpl.Name,
					fmt.Sprintf("%.0f %s", tmpl.Request.TotalArea, tmpl.Settings.InputUnit),
					fmt.Sprintf("%d", tmpl.Request.RequestedRooms()),
					tmpl.Description,
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newTemplateShowCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show a template's room program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplatesWithBuiltins(root.templatesPath)
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			tmpl := findTemplate(&store, args[0])
			if tmpl == nil {
				return fmt.Errorf("template %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render(tmpl.Name))
			if tmpl.Description != "" {
				printKeyValue(out, "Description", tmpl.Description)
			}
			printKeyValue(out, "ID", tmpl.ID)
			printRequest(out, tmpl.Request, tmpl.Settings.InputUnit)
			return nil
		},
	}
}

func newTemplateSaveCmd(root *rootOpts) *cobra.Command {
	var (
		request     requestFlags
		description string
	)

	cmd := &cobra.Command{
		Use:     "save <name>",
		Short:   "Save a room program as a template",
		Example: `  planforge template save "Bungalow" --area 140 --rooms bedroom=3,bathroom=2,kitchen=1,living=1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, settings, err := request.resolve(cmd, root)
			if err != nil {
				return err
			}
			if err := req.Validate(settings); err != nil {
				return err
			}
			if err := saveAsTemplate(root.templatesPath, args[0], description, req, settings); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved template %q", args[0])
			return nil
		},
	}

	request.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "template description")

	return cmd
}

func newTemplateDeleteCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(root.templatesPath)
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			tmpl := findTemplate(&store, args[0])
			if tmpl == nil {
				if isBuiltinTemplate(args[0]) {
					return fmt.Errorf("template %q is built in and cannot be deleted", args[0])
				}
				return fmt.Errorf("template %q not found", args[0])
			}
			name := tmpl.Name
			store.Remove(tmpl.ID)
			if err := project.SaveTemplates(root.templatesPath, store); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Deleted template %q", name)
			return nil
		},
	}
}

// saveAsTemplate adds or replaces the template called name. A saved
// template shadows a built-in one of the same name.
func saveAsTemplate(path, name, description string, req model.RoomRequest, settings model.Settings) error {
	store, err := project.LoadTemplates(path)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	if existing := store.FindByName(name); existing != nil {
		store.Remove(existing.ID)
	}
	store.Add(model.NewRequestTemplate(name, description, req, settings))
	if err := project.SaveTemplates(path, store); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}
	return nil
}

func findTemplate(store *model.TemplateStore, key string) *model.RequestTemplate {
	if t := store.FindByName(key); t != nil {
		return t
	}
	if t := store.FindByID(key); t != nil {
		return t
	}
	for i := range store.Templates {
		if strings.EqualFold(store.Templates[i].Name, key) {
			return &store.Templates[i]
		}
	}
	return nil
}

func isBuiltinTemplate(key string) bool {
	for _, b := range model.BuiltinTemplates() {
		if b.ID == key || strings.EqualFold(b.Name, key) {
			return true
		}
	}
	return false
}
