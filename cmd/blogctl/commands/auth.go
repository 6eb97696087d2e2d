package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpost/blog-system/internal/core/domain"
)

func loginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.identity.Login(cmd.Context(), email, password)
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd(c *cli) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in as it",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.identity.Register(cmd.Context(), email, password, name)
			return err
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.identity.Logout(cmd.Context())
			return nil
		},
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := c.app.identity.CurrentIdentity()
			if !ok {
				return domain.ErrNotAuthenticated
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", id.Name, id.Email, id.ID)
			return nil
		},
	}
}
