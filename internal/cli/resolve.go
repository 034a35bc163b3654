package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("project is required (use --project)")
	}
	return app.Projects.Resolve(ctx, ref)
}

func resolveMember(ctx context.Context, app *App, ref string) (*domain.Member, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("member is required (use --member)")
	}
	return app.Members.Resolve(ctx, ref)
}

func resolvePair(ctx context.Context, app *App, projectRef, memberRef string) (*domain.Project, *domain.Member, error) {
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return nil, nil, err
	}
	m, err := resolveMember(ctx, app, memberRef)
	if err != nil {
		return nil, nil, err
	}
	return p, m, nil
}

// matchPrefix resolves ref against ids: an exact match wins, otherwise ref
// must be the prefix of exactly one id.
func matchPrefix(kind, ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

// resolveTaskID accepts a full task UUID, or an ID prefix when projectRef
// narrows the search.
func resolveTaskID(ctx context.Context, app *App, projectRef, ref string) (string, error) {
	if projectRef == "" {
		t, err := app.Tasks.GetByID(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("task %q: %w (pass --project to match an ID prefix)", ref, err)
		}
		return t.ID, nil
	}
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return "", err
	}
	tasks, err := app.Tasks.ListByProject(ctx, p.ID, taskFilterAll)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return matchPrefix("task", ref, ids)
}

// resolveNoteID needs the project: notes are only listed per project.
func resolveNoteID(ctx context.Context, app *App, projectRef, ref string) (string, error) {
	if projectRef == "" {
		return ref, nil
	}
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return "", err
	}
	notes, err := app.Notes.ListByProject(ctx, p.ID, "")
	if err != nil {
		return "", err
	}
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return matchPrefix("note", ref, ids)
}

func resolveFollowUpID(ctx context.Context, app *App, projectRef, ref string) (string, error) {
	if projectRef == "" {
		return ref, nil
	}
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return "", err
	}
	items, err := app.FollowUps.ListByProject(ctx, p.ID, false)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, f := range items {
		ids[i] = f.ID
	}
	return matchPrefix("follow-up", ref, ids)
}

// memberNames maps every member ID, inactive included, to its name.
func memberNames(ctx context.Context, app *App) (map[string]string, error) {
	members, err := app.Members.List(ctx, true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	return names, nil
}
