package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team members",
	}

	cmd.AddCommand(
		newMemberAddCmd(app),
		newMemberListCmd(app),
		newMemberUpdateCmd(app),
		newMemberDeactivateCmd(app),
		newMemberRemoveCmd(app),
	)

	return cmd
}

func newMemberAddCmd(app *App) *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.Member{Name: name, Email: email, Role: role}
			if err := app.Members.Create(context.Background(), m); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added member %s %s\n", m.Name, formatter.ShortID(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&role, "role", "", "Role, e.g. developer or designer")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMemberListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Members.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Fprintln(out(cmd), "No members found.")
				return nil
			}
			fmt.Fprint(out(cmd), formatter.FormatMemberList(members))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive members")

	return cmd
}

func newMemberUpdateCmd(app *App) *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "update MEMBER",
		Short: "Update a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			m.Name = domain.Coalesce(name, m.Name)
			m.Email = domain.Coalesce(email, m.Email)
			m.Role = domain.Coalesce(role, m.Role)
			if err := app.Members.Update(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Updated member %s\n", m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&role, "role", "", "Role")

	return cmd
}

func newMemberDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate MEMBER",
		Short: "Deactivate a member; their history is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Members.Deactivate(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deactivated member %s\n", m.Name)
			return nil
		},
	}
}

func newMemberRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MEMBER",
		Short: "Remove a member together with their sessions and work log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Members.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Removed member %s\n", m.Name)
			return nil
		},
	}
}
