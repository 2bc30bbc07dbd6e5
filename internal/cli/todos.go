package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/remote"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/view"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return errUsage("unknown format %q (want text|json|yaml)", f)
}

func newListCmd(app *App) *cobra.Command {
	var format string
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, open and most important first",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			s, err := app.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			items := view.Sort(s.Items())
			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, items)
			case formatYAML:
				return writeYAML(out, items)
			}
			fmt.Fprintln(out, ui.Panel(listLines(items, group)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format: text|json|yaml")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Group by pending/done")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo with its description",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			c, err := app.client()
			if err != nil {
				return err
			}
			td, err := c.Get(cmd.Context(), model.ID(args[0]))
			if errors.Is(err, remote.ErrInvalidID) {
				return usageError{err: err}
			}
			if remote.IsNotFound(err) {
				return notFoundError{id: args[0]}
			}
			if err != nil {
				app.Logger.Warn("failed to fetch todo", "id", args[0], "error", err)
				return opError{msg: "Failed to fetch todo", err: err}
			}
			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, td)
			case formatYAML:
				return writeYAML(out, td)
			}
			fmt.Fprintln(out, ui.Panel(detailLines(td)))
			if td.HasDescription() {
				fmt.Fprintln(out, renderMarkdown(*td.Description, 76))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format: text|json|yaml")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var desc, prio string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (the title may span several words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePriority(prio)
			if err != nil {
				return usageError{err: err}
			}
			in, ok := view.Draft{
				Title:       strings.Join(args, " "),
				Description: desc,
				Priority:    p,
			}.Input()
			if !ok {
				return errUsage("add: empty title")
			}

			c, err := app.client()
			if err != nil {
				return err
			}
			s := newStore(app, c)
			td, err := s.Create(cmd.Context(), in)
			if err != nil {
				return opError{msg: s.LastError(), err: err}
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%s: %s", td.ID, td.Title))
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&prio, "priority", "p", string(model.PriorityMedium), "Priority: low|medium|high")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title, desc, prio string
	var clearDesc bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, description or priority of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch model.Patch
			if flags.Changed("title") {
				t := strings.TrimSpace(title)
				if t == "" {
					return usageError{err: view.ErrEmptyTitle}
				}
				patch.Title = &t
			}
			if flags.Changed("description") && clearDesc {
				return errUsage("--description and --clear-description are exclusive")
			}
			switch d := strings.TrimSpace(desc); {
			case clearDesc, flags.Changed("description") && d == "":
				patch.Description = model.Null[string]()
			case flags.Changed("description"):
				patch.Description = model.Value(d)
			}
			if flags.Changed("priority") {
				p, err := model.ParsePriority(prio)
				if err != nil {
					return usageError{err: err}
				}
				patch.Priority = &p
			}
			if patch.IsEmpty() {
				return errUsage("edit: nothing to change (use --title, --description, --clear-description or --priority)")
			}

			s, err := app.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			cur, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			td, err := s.Update(cmd.Context(), cur.ID, patch)
			if err != nil {
				return storeError(s, cur.ID, err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated #%s: %s", td.ID, td.Title))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "description", "", "New description (empty clears it)")
	cmd.Flags().BoolVar(&clearDesc, "clear-description", false, "Remove the description")
	cmd.Flags().StringVar(&prio, "priority", "", "New priority: low|medium|high")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle the completed flag of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			cur, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			td, err := s.ToggleCompleted(cmd.Context(), cur.ID)
			if err != nil {
				return storeError(s, cur.ID, err)
			}
			verb := "reopened"
			if td.Completed {
				verb = "completed"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s #%s: %s", verb, td.ID, td.Title))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a todo",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			cur, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), cur.ID); err != nil {
				return storeError(s, cur.ID, err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed #%s: %s", cur.ID, cur.Title))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
