package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yashrajoria/storefront-client/app"
	"github.com/yashrajoria/storefront-client/services"
	"github.com/yashrajoria/storefront-client/ui"
)

var (
	username string
	password string
	email    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and merge the local cart into your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := shell.Login(cmd.Context(), username, password)
		if err != nil {
			return reportAPIError(cmd.Context(), err, "Login failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", result.User.Username)
		return printSignIn(cmd, result)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account, sign in and merge the local cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := shell.Register(cmd.Context(), username, email, password)
		if err != nil {
			return reportAPIError(cmd.Context(), err, "Registration failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", result.User.Username)
		return printSignIn(cmd, result)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token and profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		shell.Session.Logout(cmd.Context())
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !shell.Session.IsLoggedIn(cmd.Context()) {
			fmt.Fprintln(out, "Not signed in")
			return nil
		}
		if u := shell.Session.User(); u != nil {
			fmt.Fprintf(out, "%s <%s> (id %d)\n", u.Username, u.Email, u.ID)
			if u.CreatedAt != "" {
				fmt.Fprintf(out, "member since %s\n", ui.FormatDate(u.CreatedAt))
			}
		}
		claims, err := shell.Session.Claims(cmd.Context())
		if err != nil {
			return nil
		}
		if exp, ok := claims["exp"].(float64); ok {
			fmt.Fprintf(out, "token expires %s\n", time.Unix(int64(exp), 0).Format(time.RFC3339))
		}
		return nil
	},
}

// printSignIn reports the merge and fails when the server ended the new
// session before the command finished.
func printSignIn(cmd *cobra.Command, r app.SignIn) error {
	printMerge(cmd, r.Merge)
	if !shell.Session.IsLoggedIn(cmd.Context()) {
		return fmt.Errorf("the server rejected the new session; sign in again")
	}
	return nil
}

func printMerge(cmd *cobra.Command, r services.MergeResult) {
	switch {
	case r.Attempted == 0:
	case r.Cleared:
		fmt.Fprintf(cmd.OutOrStdout(), "Merged %d item(s) from your local cart\n", r.Merged)
	default:
		fmt.Fprintf(cmd.OutOrStdout(),
			"Merged %d of %d item(s); your local cart was kept whole, so merging again re-adds the %d already sent\n",
			r.Merged, r.Attempted, r.Merged)
	}
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&username, "username", "u", "", "Username")
		c.Flags().StringVarP(&password, "password", "p", "", "Password")
		_ = c.MarkFlagRequired("username")
		_ = c.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	_ = registerCmd.MarkFlagRequired("email")
}
