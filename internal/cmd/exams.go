package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "Manage course exams",
	Long: `Manage the exams of a course.

Subcommands:
  list    List the exams of a course
  create  Create an exam in a course
  delete  Delete an exam

Examples:
  classconnect exams list <course-id>
  classconnect exams create <course-id> --title "Midterm" --due-date 2026-10-20
  classconnect exams delete <course-id> <exam-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var examsListCmd = &cobra.Command{
	Use:   "list <course-id>",
	Short: "List the exams of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		exams, err := a.client.ListExams(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(exams) == 0 {
			fmt.Println("No exams in this course.")
			return nil
		}

		for _, exam := range exams {
			line := fmt.Sprintf("%s  %s  due %s", exam.ID, exam.Title, exam.DueDate)
			if exam.Submission != nil {
				line += fmt.Sprintf("  score %.1f", exam.Submission.Score)
			}
			fmt.Println(line)
			if len(exam.Questions) > 0 {
				fmt.Printf("    %d questions\n", len(exam.Questions))
			}
		}

		return nil
	},
}

var examsCreateCmd = &cobra.Command{
	Use:   "create <course-id>",
	Short: "Create an exam in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		dueDate, _ := cmd.Flags().GetString("due-date")

		a, err := requireSession()
		if err != nil {
			return err
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		exam, err := detail.CreateExam(cmd.Context(), api.ExamDraft{
			Title:       title,
			Description: description,
			DueDate:     dueDate,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Exam created: %s (%s)\n", exam.Title, exam.ID)
		return nil
	},
}

var examsDeleteCmd = &cobra.Command{
	Use:   "delete <course-id> <exam-id>",
	Short: "Delete an exam",
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

		if err := detail.DeleteExam(cmd.Context(), args[1]); err != nil {
			return err
		}

		fmt.Println("Exam deleted.")
		return nil
	},
}

func init() {
	examsCmd.AddCommand(examsListCmd)
	examsCmd.AddCommand(examsCreateCmd)
	examsCmd.AddCommand(examsDeleteCmd)

	examsCreateCmd.Flags().String("title", "", "Exam title (required)")
	examsCreateCmd.Flags().String("description", "", "Exam description")
	examsCreateCmd.Flags().String("due-date", "", "Due date (YYYY-MM-DD)")

	rootCmd.AddCommand(examsCmd)
}
