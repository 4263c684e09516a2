package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/service"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	userCmd.AddCommand(newUserCreateCmd(), newUserListCmd(), newUserSetRoleCmd())
	return userCmd
}

func newUserCreateCmd() *cobra.Command {
	var req service.CreateUserRequest
	var role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()

			req.Role = domain.Role(role)
			admin := service.NewAdminService(e.store, e.sessions, e.log.Logger)
			user, err := admin.CreateUser(commandContext(cmd), cliActor, req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s <%s> as %s (id %s)\n", user.Name, user.Email, user.Role, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password (min 8 characters)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "user, employee or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			users, err := e.store.ListUsers(commandContext(cmd))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tBANNED")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.Banned)
			}
			return w.Flush()
		},
	}
}

func newUserSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()

			admin := service.NewAdminService(e.store, e.sessions, e.log.Logger)
			user, err := admin.SetRole(commandContext(cmd), cliActor, args[0], domain.Role(args[1]))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
			return nil
		},
	}
}
