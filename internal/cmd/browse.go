package cmd

import (
	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse your courses interactively",
	Long: `Browse your courses in an interactive terminal UI.

The browser shows your courses five per page, supports live search by
title as you type, lets you toggle favorites, and opens a course to show
its modules, tasks, and exams.

Examples:
  classconnect browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		return tui.Run(cmd.Context(), a.client, a.courses, a.cfg.SearchDebounce)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
