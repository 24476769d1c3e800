package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (a *App) AddNote(ctx context.Context) error {

	content, err := GetMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	note, err := a.api.CreateNote(ctx, content)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Created note", note.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {

	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(notes) == 0 {
		printlnFn("No notes")
		return nil
	}

	for _, n := range notes {
		marker := ""
		if len(n.Accessors) > 0 {
			marker = fmt.Sprintf(" (shared with %d)", len(n.Accessors))
		}
		printlnFn(fmt.Sprintf("%s%s  %s", n.ID, marker, firstLine(n.Content)))
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	note, err := a.api.GetNote(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("id: %s\nowner: %s\naccessors: %s\nupdated: %s\n---\n%s",
		note.ID, note.Owner, strings.Join(note.Accessors, ", "),
		note.UpdatedAt.Format("2006-01-02 15:04:05"), note.Content))
	return nil
}

func (a *App) Edit(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Enter new note text", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	note, err := a.api.UpdateNote(ctx, id, content)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Updated note", note.ID)
	return nil
}

func (a *App) Delete(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	deleted, err := a.api.DeleteNote(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Deleted %d note(s)", deleted))
	return nil
}

// Share replaces a note's accessor list with the user ids entered,
// space-separated. An empty line revokes all sharing.
func (a *App) Share(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	line, err := GetSimpleText(a.reader, "Enter accessor user ids (space-separated, empty to revoke all)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	note, err := a.api.ShareNote(ctx, id, strings.Fields(line))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(note.Accessors) == 0 {
		printlnFn("Sharing revoked")
	} else {
		printlnFn("Now shared with:", strings.Join(note.Accessors, ", "))
	}
	return nil
}

func (a *App) Search(ctx context.Context) error {

	query, err := GetSimpleText(a.reader, "Enter search text", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	notes, err := a.api.Search(ctx, query)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(notes) == 0 {
		printlnFn("No matches")
		return nil
	}

	for _, n := range notes {
		printlnFn(fmt.Sprintf("%s  %s", n.ID, firstLine(n.Content)))
	}
	return nil
}
