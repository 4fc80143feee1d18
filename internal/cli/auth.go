package cli

import (
	"fmt"
	"time"

	"github.com/existflow/irontodo/internal/api"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/session"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Log in, create an account, log out or show who is signed in.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your account",
	RunE:  runLogin,
}

var signupCmd = &cobra.Command{
	Use:     "signup",
	Aliases: []string{"register"},
	Short:   "Create a new account",
	RunE:    runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of your account",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in user",
	RunE:  runStatus,
}

var (
	authEmail string
	authName  string
)

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(signupCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().StringVar(&authEmail, "email", "", "Email to log in with")
	signupCmd.Flags().StringVar(&authEmail, "email", "", "Email for the new account")
	signupCmd.Flags().StringVar(&authName, "name", "", "Your name")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if user := a.Session.User(); user != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s.\n", user.Email)
		return nil
	}

	p := newPrompter(cmd)
	form := session.LoginForm{Email: authEmail}
	if form.Email == "" {
		if form.Email, err = p.line("Email: "); err != nil {
			return err
		}
	}
	if form.Password, err = p.secret("Password: "); err != nil {
		return err
	}

	if err := a.Login(cmd.Context(), form); err != nil {
		return reported(err)
	}
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if user := a.Session.User(); user != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s. Log out first.\n", user.Email)
		return nil
	}

	p := newPrompter(cmd)
	form := session.SignupForm{Name: authName, Email: authEmail}
	if form.Name == "" {
		if form.Name, err = p.line("Name: "); err != nil {
			return err
		}
	}
	if form.Email == "" {
		if form.Email, err = p.line("Email: "); err != nil {
			return err
		}
	}
	if form.Password, err = p.secret("Password: "); err != nil {
		return err
	}
	if form.ConfirmPassword, err = p.secret("Confirm password: "); err != nil {
		return err
	}

	if err := a.Signup(cmd.Context(), form); err != nil {
		return reported(err)
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if !a.Session.Authenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}

	if err := a.Logout(cmd.Context()); err != nil {
		return reported(err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server: %s\n", a.Client.BaseURL())

	user := a.Session.User()
	if user == nil {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(out, "Logged in as %s <%s>\n", user.Name, user.Email)

	token, err := a.DB.AccessToken(cmd.Context())
	if err != nil || token == "" {
		return nil
	}
	info, err := api.InspectToken(token)
	if err != nil {
		logger.Debug("Access token is not a readable JWT", logger.Err(err))
		return nil
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Access token expires in %s\n", time.Until(info.ExpiresAt).Round(time.Second))
	}
	return nil
}
