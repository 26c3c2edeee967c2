package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Search users and manage your profile",
	Long: `Search platform users and manage your own profile settings.

Subcommands:
  search        Search users by name or email
  set-location  Update your profile location
  push-token    Register a device push-notification token

Examples:
  classconnect users search ada
  classconnect users set-location --country Argentina`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by name or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		users, err := a.client.SearchUsers(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Printf("No users matching %q.\n", args[0])
			return nil
		}

		for _, u := range users {
			fmt.Printf("%s  %s %s  <%s>\n", u.UID, u.Name, u.Surname, u.Email)
		}

		return nil
	},
}

var usersSetLocationCmd = &cobra.Command{
	Use:   "set-location",
	Short: "Update your profile location",
	RunE: func(cmd *cobra.Command, args []string) error {
		country, _ := cmd.Flags().GetString("country")
		if strings.TrimSpace(country) == "" {
			return errors.NewFieldRequiredError("country")
		}

		a, err := requireSession()
		if err != nil {
			return err
		}

		if err := a.client.UpdateLocation(cmd.Context(), country); err != nil {
			return err
		}

		fmt.Printf("Location updated to %s.\n", country)
		return nil
	},
}

var usersPushTokenCmd = &cobra.Command{
	Use:   "push-token <token>",
	Short: "Register a device push-notification token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireSession()
		if err != nil {
			return err
		}

		user := a.session.Snapshot().User
		if user == nil {
			current, err := a.client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			user = current
		}

		if err := a.client.RegisterPushToken(cmd.Context(), user.UID, args[0]); err != nil {
			return err
		}

		fmt.Println("Push token registered.")
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersSearchCmd)
	usersCmd.AddCommand(usersSetLocationCmd)
	usersCmd.AddCommand(usersPushTokenCmd)

	usersSetLocationCmd.Flags().String("country", "", "Country name (required)")
	_ = usersSetLocationCmd.MarkFlagRequired("country")

	rootCmd.AddCommand(usersCmd)
}
