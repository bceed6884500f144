package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const minPasswordLength = 6

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
)

func validatePassword(password, confirm string) error {
	if password != confirm {
		return errPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return errPasswordTooShort
	}
	return nil
}

// flagOrPrompt returns the flag value, or asks for it when the flag is unset.
func (rt *runtime) flagOrPrompt(cmd *cobra.Command, flag, prompt string) (string, error) {
	if cmd.Flags().Changed(flag) {
		return cmd.Flags().GetString(flag)
	}
	return rt.readLine(cmd.ErrOrStderr(), prompt)
}

func signupCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register an operator and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := rt.flagOrPrompt(cmd, "name", "Name: ")
			if err != nil {
				return err
			}
			email, err := rt.flagOrPrompt(cmd, "email", "Email: ")
			if err != nil {
				return err
			}
			password, err := rt.flagOrPrompt(cmd, "password", "Password: ")
			if err != nil {
				return err
			}
			confirm := password
			if cmd.Flags().Changed("confirm") || !cmd.Flags().Changed("password") {
				confirm, err = rt.flagOrPrompt(cmd, "confirm", "Confirm password: ")
				if err != nil {
					return err
				}
			}

			if name == "" || email == "" {
				return errors.New("name and email are required")
			}
			if err := validatePassword(password, confirm); err != nil {
				return err
			}

			session, err := rt.app.Auth.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are logged in as %s.\n", session.Name, session.Email)
			return nil
		},
	}

	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password")
	cmd.Flags().String("confirm", "", "password confirmation")

	return cmd
}

func loginCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := rt.flagOrPrompt(cmd, "email", "Email: ")
			if err != nil {
				return err
			}
			password, err := rt.flagOrPrompt(cmd, "password", "Password: ")
			if err != nil {
				return err
			}

			session, err := rt.app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s).\n", session.Name, session.Email)
			return nil
		},
	}

	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password")

	return cmd
}

func logoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := rt.session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", session.Name, session.Email, session.Role)
			return nil
		},
	}
}
