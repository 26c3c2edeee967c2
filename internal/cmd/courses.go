package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse and manage courses",
	Long: `Browse and manage courses on the ClassConnect platform.

Subcommands:
  list      List your courses, paginated
  search    Search courses by title
  create    Create a new course
  enroll    Enroll in a course as a student
  favorite  Toggle a course as favorite
  show      Show a course with its modules, tasks, and exams

Examples:
  classconnect courses list --role teacher
  classconnect courses search algebra
  classconnect courses create --title "Algebra I" --capacity 30
  classconnect courses enroll <course-id>
  classconnect courses show <course-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your courses",
	Long: `List the courses you belong to, five per page.

Filter with --role to show only courses where you are the teacher or a
student, or --favorites to show only favorites.

Examples:
  classconnect courses list
  classconnect courses list --role student --page 2
  classconnect courses list --favorites`,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		favorites, _ := cmd.Flags().GetBool("favorites")
		page, _ := cmd.Flags().GetInt("page")

		a, err := requireSession()
		if err != nil {
			return err
		}

		if err := a.courses.Reload(cmd.Context()); err != nil {
			return err
		}

		var entries []courses.Entry
		switch {
		case favorites:
			entries = a.courses.Favorites()
		case role != "":
			entries = a.courses.FilterByRole(role)
		default:
			entries = a.courses.Snapshot()
		}

		if len(entries) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		total := courses.PageCount(len(entries), a.cfg.PageSize)
		page = clampPage(page, total)
		slice := courses.Page(entries, page, a.cfg.PageSize)

		printCourseTable(cmd, slice)
		fmt.Printf("\nPage %d of %d (%d courses)\n", page, total, len(entries))

		return nil
	},
}

var coursesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search courses by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		results, err := a.client.SearchCourses(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Printf("No courses matching %q.\n", args[0])
			return nil
		}

		entries := make([]courses.Entry, len(results))
		for i, c := range results {
			entries[i] = courses.Entry{Course: c}
		}
		printCourseTable(cmd, entries)

		return nil
	},
}

var coursesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new course",
	Long: `Create a new course with you as the teacher.

Without flags, an interactive form is shown.

Examples:
  classconnect courses create --title "Algebra I" --description "Intro course" --capacity 30
  classconnect courses create`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		startDate, _ := cmd.Flags().GetString("start-date")
		endDate, _ := cmd.Flags().GetString("end-date")
		capacity, _ := cmd.Flags().GetInt("capacity")

		if title == "" {
			capacityStr := strconv.Itoa(capacity)
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Title").Value(&title),
					huh.NewInput().Title("Description").Value(&description),
					huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(&startDate),
					huh.NewInput().Title("End date (YYYY-MM-DD)").Value(&endDate),
					huh.NewInput().Title("Capacity").Value(&capacityStr),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
			if n, err := strconv.Atoi(capacityStr); err == nil {
				capacity = n
			}
		}

		a, err := requireSession()
		if err != nil {
			return err
		}

		if err := a.courses.Reload(cmd.Context()); err != nil {
			return err
		}

		course, err := a.courses.Create(cmd.Context(), api.CourseDraft{
			Title:       title,
			Description: description,
			StartDate:   startDate,
			EndDate:     endDate,
			Capacity:    capacity,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Course created: %s (%s)\n", course.Title, course.ID)
		return nil
	},
}

var coursesEnrollCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course as a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		if err := a.courses.Enroll(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println("Enrolled successfully.")
		return nil
	},
}

var coursesFavoriteCmd = &cobra.Command{
	Use:   "favorite <course-id>",
	Short: "Toggle a course as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		if err := a.courses.Reload(cmd.Context()); err != nil {
			return err
		}

		marked, err := a.courses.ToggleFavorite(args[0])
		if err != nil {
			return err
		}

		if marked {
			fmt.Println("Course marked as favorite.")
		} else {
			fmt.Println("Course removed from favorites.")
		}
		return nil
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show a course with its modules, tasks, and exams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		if err := a.courses.Reload(cmd.Context()); err != nil {
			return err
		}

		entry, ok := a.courses.Find(args[0])
		if !ok {
			fmt.Printf("Course %s is not in your collection, fetching contents anyway.\n", args[0])
		} else {
			fmt.Printf("%s\n", entry.Title)
			if entry.Description != "" {
				fmt.Printf("%s\n", entry.Description)
			}
			fmt.Printf("Teacher: %s  Role: %s  Capacity: %d\n", entry.TeacherName, entry.Role, entry.Capacity)
			if entry.StartDate != "" || entry.EndDate != "" {
				fmt.Printf("Runs %s to %s\n", entry.StartDate, entry.EndDate)
			}
		}

		detail := courses.NewDetail(a.client, args[0])
		if err := detail.Load(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("\nModules:")
		modules := detail.Modules()
		if len(modules) == 0 {
			fmt.Println("  (none)")
		}
		for _, m := range modules {
			fmt.Printf("  %s  %s\n", m.ID, m.Title)
			for _, r := range m.Resources {
				fmt.Printf("    - %s (%s)\n", r.Name, r.ID)
			}
		}

		fmt.Println("\nTasks:")
		tasks := detail.Tasks()
		if len(tasks) == 0 {
			fmt.Println("  (none)")
		}
		for _, task := range tasks {
			fmt.Printf("  %s  %s  due %s\n", task.ID, task.Title, task.Deadline)
		}

		fmt.Println("\nExams:")
		exams := detail.Exams()
		if len(exams) == 0 {
			fmt.Println("  (none)")
		}
		for _, exam := range exams {
			line := fmt.Sprintf("  %s  %s  due %s", exam.ID, exam.Title, exam.DueDate)
			if exam.Submission != nil {
				line += fmt.Sprintf("  score %.1f", exam.Submission.Score)
			}
			fmt.Println(line)
		}

		return nil
	},
}

// clampPage bounds a user-supplied page number to the valid range.
func clampPage(page, total int) int {
	if total < 1 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// printCourseTable renders courses in aligned columns, marking pending
// entries that have not been confirmed by the server yet.
func printCourseTable(cmd *cobra.Command, entries []courses.Entry) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTEACHER\tROLE")
	for _, e := range entries {
		title := e.Title
		if e.Pending {
			title += " (pending)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, title, e.TeacherName, e.Role)
	}
	w.Flush()
}

func init() {
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesSearchCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesEnrollCmd)
	coursesCmd.AddCommand(coursesFavoriteCmd)
	coursesCmd.AddCommand(coursesShowCmd)

	coursesListCmd.Flags().String("role", "", "Filter by role (teacher or student)")
	coursesListCmd.Flags().Bool("favorites", false, "Show only favorite courses")
	coursesListCmd.Flags().Int("page", 1, "Page number")

	coursesCreateCmd.Flags().String("title", "", "Course title")
	coursesCreateCmd.Flags().String("description", "", "Course description")
	coursesCreateCmd.Flags().String("start-date", "", "Start date (YYYY-MM-DD)")
	coursesCreateCmd.Flags().String("end-date", "", "End date (YYYY-MM-DD)")
	coursesCreateCmd.Flags().Int("capacity", 0, "Maximum number of students")

	rootCmd.AddCommand(coursesCmd)
}
