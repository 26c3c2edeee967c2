package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage course tasks",
	Long: `Manage the tasks of a course.

Subcommands:
  list    List the tasks of a course
  create  Create a task in a course
  delete  Delete a task

Examples:
  classconnect tasks list <course-id>
  classconnect tasks create <course-id> --title "Homework 1" --deadline 2026-09-15
  classconnect tasks delete <course-id> <task-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var tasksListCmd = &cobra.Command{
	Use:   "list <course-id>",
	Short: "List the tasks of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		tasks, err := a.client.ListTasks(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks in this course.")
			return nil
		}

		for _, task := range tasks {
			fmt.Printf("%s  %s  due %s\n", task.ID, task.Title, task.Deadline)
			if task.Description != "" {
				fmt.Printf("    %s\n", task.Description)
			}
		}

		return nil
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create <course-id>",
	Short: "Create a task in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		deadline, _ := cmd.Flags().GetString("deadline")

		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		task, err := detail.CreateTask(cmd.Context(), api.TaskDraft{
			Title:       title,
			Description: description,
			Deadline:    deadline,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Task created: %s (%s)\n", task.Title, task.ID)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <course-id> <task-id>",
	Short: "Delete a task",
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

		if err := detail.DeleteTask(cmd.Context(), args[1]); err != nil {
			return err
		}

		fmt.Println("Task deleted.")
		return nil
	},
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)

	tasksCreateCmd.Flags().String("title", "", "Task title (required)")
	tasksCreateCmd.Flags().String("description", "", "Task description")
	tasksCreateCmd.Flags().String("deadline", "", "Deadline (YYYY-MM-DD)")

	rootCmd.AddCommand(tasksCmd)
}
