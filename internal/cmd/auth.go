package cmd

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage authentication credentials for the ClassConnect platform.

The auth command provides subcommands for registering, logging in, logging
out, checking current authentication status, and requesting a password reset.

The session token is stored encrypted under the classconnect home directory.

Subcommands:
  register         Register a new user account
  login            Login with email and password
  logout           Logout and remove the stored token
  status           Show current authentication status
  forgot-password  Request a password-reset email

Examples:
  classconnect auth register --name Ada --surname Lovelace --email user@example.com --password mypass
  classconnect auth login --email user@example.com --password mypass
  classconnect auth status
  classconnect auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd handles user login
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the platform",
	Long: `Login to the ClassConnect platform with your email and password.

After logging in, your session token is saved locally and attached to every
subsequent request. Without flags, an interactive form is shown.

Examples:
  classconnect auth login --email user@example.com --password mypass
  classconnect auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" && password == "" {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Email").Value(&email),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
		}

		a, err := getApp()
		if err != nil {
			return err
		}

		fmt.Printf("Logging in as: %s\n", email)

		if err := a.session.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		fmt.Println("Login successful!")
		if user := a.session.Snapshot().User; user != nil {
			fmt.Printf("Welcome, %s %s.\n", user.Name, user.Surname)
		}

		return nil
	},
}

// authRegisterCmd registers a new user
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account with the ClassConnect platform.

After registration, you are automatically logged in with the same
credentials. Without flags, an interactive form is shown.

Examples:
  classconnect auth register --name Ada --surname Lovelace --email user@example.com --password mypass
  classconnect auth register`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		surname, _ := cmd.Flags().GetString("surname")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if name == "" && surname == "" && email == "" && password == "" {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Name").Value(&name),
					huh.NewInput().Title("Surname").Value(&surname),
					huh.NewInput().Title("Email").Value(&email),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
		}

		a, err := getApp()
		if err != nil {
			return err
		}

		fmt.Printf("Registering user: %s\n", email)

		if err := a.session.Register(cmd.Context(), name, surname, email, password); err != nil {
			return err
		}

		fmt.Println("Registration successful!")
		fmt.Println("You are now logged in.")

		return nil
	},
}

// authLogoutCmd handles user logout
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and remove the stored token",
	Long: `Logout and remove the stored session token.

Logout is local-only: it succeeds even when the remote session is already
invalid.

Examples:
  classconnect auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if !a.session.Snapshot().Authenticated {
			fmt.Println("Not logged in.")
			return nil
		}

		if err := a.session.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Logged out successfully.")
		fmt.Println()
		fmt.Println("Use 'classconnect auth login' to login again.")

		return nil
	},
}

// authStatusCmd shows current auth status
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current authentication status and user information.

Examples:
  classconnect auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		snap := a.session.Snapshot()
		if !snap.Authenticated {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'classconnect auth login' to authenticate.")
			return nil
		}

		user, err := a.client.CurrentUser(cmd.Context())
		if err != nil {
			var serverErr *api.ServerError
			if stderrors.As(err, &serverErr) && serverErr.IsUnauthorized() {
				// The stored token is no longer accepted; drop it.
				_ = a.session.Invalidate()
				fmt.Println("Session expired.")
			} else {
				fmt.Println("Could not verify the session with the server.")
			}
			fmt.Println("Use 'classconnect auth login' to re-authenticate.")
			return nil
		}

		fmt.Println("Logged in")
		fmt.Printf("User ID: %s\n", user.UID)
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("Name:    %s %s\n", user.Name, user.Surname)

		if expiry := tokenExpiry(snap.Token); !expiry.IsZero() {
			fmt.Printf("Token expires: %s\n", expiry.Format(time.RFC1123))
		}

		return nil
	},
}

// authForgotPasswordCmd requests a password-reset email
var authForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password-reset email",
	Long: `Request a password-reset email for the given address.

Examples:
  classconnect auth forgot-password --email user@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		a, err := getApp()
		if err != nil {
			return err
		}

		if err := a.session.ForgotPassword(cmd.Context(), email); err != nil {
			return err
		}

		fmt.Printf("Password-reset email requested for %s.\n", email)
		return nil
	},
}

// tokenExpiry extracts the expiry claim from a JWT-shaped token without
// verifying the signature. Returns the zero time for opaque tokens.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authForgotPasswordCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("name", "", "First name")
	authRegisterCmd.Flags().String("surname", "", "Surname")
	authRegisterCmd.Flags().String("email", "", "Email address")
	authRegisterCmd.Flags().String("password", "", "Password")

	authForgotPasswordCmd.Flags().String("email", "", "Email address (required)")

	rootCmd.AddCommand(authCmd)
}
