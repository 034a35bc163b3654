package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Project notes and requirements",
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteRemoveCmd(app),
	)

	return cmd
}

func parseNoteKind(s string) (domain.NoteKind, error) {
	switch k := domain.NoteKind(strings.ToLower(s)); k {
	case "", domain.NoteGeneral, domain.NoteRequirement:
		return k, nil
	}
	return "", fmt.Errorf("invalid note kind %q (use note or requirement)", s)
}

func newNoteAddCmd(app *App) *cobra.Command {
	var projectRef, kind, author string

	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a note to a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			k, err := parseNoteKind(kind)
			if err != nil {
				return err
			}
			n := &domain.Note{ProjectID: p.ID, Kind: k, Body: strings.Join(args, " ")}
			if author != "" {
				m, err := resolveMember(ctx, app, author)
				if err != nil {
					return err
				}
				n.AuthorID = &m.ID
			}
			if err := app.Notes.Add(ctx, n); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added %s %s to %s\n", n.Kind, formatter.ShortID(n.ID), p.DisplayID())
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().StringVar(&kind, "kind", "", "note|requirement (default note)")
	cmd.Flags().StringVar(&author, "author", "", "Member who wrote it")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	var projectRef, kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			k, err := parseNoteKind(kind)
			if err != nil {
				return err
			}
			notes, err := app.Notes.ListByProject(ctx, p.ID, k)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Fprintln(out(cmd), "No notes found.")
				return nil
			}
			fmt.Fprint(out(cmd), formatter.FormatNoteList(notes, app.now()))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().StringVar(&kind, "kind", "", "Only notes of this kind")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNoteID(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Notes.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Removed note %s\n", formatter.ShortID(id))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)

	return cmd
}
