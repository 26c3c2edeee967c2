package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Manage course modules and their resources",
	Long: `Manage the modules of a course and the resources attached to them.

Subcommands:
  list             List the modules of a course
  create           Create a module in a course
  update           Update a module's title and description
  delete           Delete a module
  add-resource     Attach a resource to a module
  remove-resource  Remove a resource from a module

Examples:
  classconnect modules list <course-id>
  classconnect modules create <course-id> --title "Unit 1"
  classconnect modules add-resource <course-id> <module-id> --name "slides.pdf"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var modulesListCmd = &cobra.Command{
	Use:   "list <course-id>",
	Short: "List the modules of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		modules, err := a.client.ListModules(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(modules) == 0 {
			fmt.Println("No modules in this course.")
			return nil
		}

		for _, m := range modules {
			fmt.Printf("%s  %s\n", m.ID, m.Title)
			if m.Description != "" {
				fmt.Printf("    %s\n", m.Description)
			}
			for _, r := range m.Resources {
				fmt.Printf("    - %s (%s)\n", r.Name, r.ID)
			}
		}

		return nil
	},
}

var modulesCreateCmd = &cobra.Command{
	Use:   "create <course-id>",
	Short: "Create a module in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")

		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		module, err := detail.CreateModule(cmd.Context(), api.ModuleDraft{
			Title:       title,
			Description: description,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Module created: %s (%s)\n", module.Title, module.ID)
		return nil
	},
}

var modulesUpdateCmd = &cobra.Command{
	Use:   "update <course-id> <module-id>",
	Short: "Update a module's title and description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")

		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		if err := detail.UpdateModule(cmd.Context(), args[1], api.ModuleDraft{
			Title:       title,
			Description: description,
		}); err != nil {
			return err
		}

		fmt.Println("Module updated.")
		return nil
	},
}

var modulesDeleteCmd = &cobra.Command{
	Use:   "delete <course-id> <module-id>",
	Short: "Delete a module",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		if err := detail.DeleteModule(cmd.Context(), args[1]); err != nil {
			return err
		}

		fmt.Println("Module deleted.")
		return nil
	},
}

var modulesAddResourceCmd = &cobra.Command{
	Use:   "add-resource <course-id> <module-id>",
	Short: "Attach a resource to a module",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		if err := detail.AddResource(cmd.Context(), args[1], name); err != nil {
			return err
		}

		fmt.Printf("Resource %q added.\n", name)
		return nil
	},
}

var modulesRemoveResourceCmd = &cobra.Command{
	Use:   "remove-resource <course-id> <module-id> <resource-id>",
	Short: "Remove a resource from a module",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		if err := detail.RemoveResource(cmd.Context(), args[1], args[2]); err != nil {
			return err
		}

		fmt.Println("Resource removed.")
		return nil
	},
}

func init() {
	modulesCmd.AddCommand(modulesListCmd)
	modulesCmd.AddCommand(modulesCreateCmd)
	modulesCmd.AddCommand(modulesUpdateCmd)
	modulesCmd.AddCommand(modulesDeleteCmd)
	modulesCmd.AddCommand(modulesAddResourceCmd)
	modulesCmd.AddCommand(modulesRemoveResourceCmd)

	modulesCreateCmd.Flags().String("title", "", "Module title (required)")
	modulesCreateCmd.Flags().String("description", "", "Module description")

	modulesUpdateCmd.Flags().String("title", "", "New title")
	modulesUpdateCmd.Flags().String("description", "", "New description")

	modulesAddResourceCmd.Flags().String("name", "", "Resource name (required)")

	rootCmd.AddCommand(modulesCmd)
}
