package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/progress"
	"github.com/Joseda-hg/dailytodo/internal/tracker"
)

func listCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with today's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), state, a.tracker.Today())
			}
			printState(cmd.OutOrStdout(), state, a.tracker.Today())
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	return cmd
}

func addCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, _ := cmd.Flags().GetInt("total")
			increment, _ := cmd.Flags().GetInt("increment")
			start, _ := cmd.Flags().GetInt("start")
			exclude, _ := cmd.Flags().GetBool("exclude")
			include := !exclude

			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			_, task, err := a.tracker.AddTask(cmd.Context(), state, tracker.NewTask{
				Name:             strings.Join(args, " "),
				Total:            total,
				DefaultIncrement: increment,
				StartValue:       start,
				IncludeInTotal:   &include,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", task.Name, task.ID)
			return nil
		},
	}
	cmd.Flags().IntP("total", "t", model.DefaultTotal, "Goal for the day")
	cmd.Flags().IntP("increment", "i", model.DefaultIncrement, "Amount added by done")
	cmd.Flags().IntP("start", "s", 0, "Start value")
	cmd.Flags().Bool("exclude", false, "Leave the task out of the overall total")
	return cmd
}

func doneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done [task]",
		Short: "Add the task's default increment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateProgress(cmd, args[0], func(ctx context.Context, state tracker.State, id string) (tracker.State, error) {
				return a.tracker.Complete(ctx, state, id)
			})
		},
	}
}

func incCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inc [task] [amount]",
		Short: "Add a custom amount",
		Long: `Add a custom amount to a task (1 when omitted). Subtract with a negative
amount passed as --by=-5 or after --, as in: dailytodo inc 1 -- -5`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := incAmount(cmd, args)
			if err != nil {
				return err
			}
			return a.updateProgress(cmd, args[0], func(ctx context.Context, state tracker.State, id string) (tracker.State, error) {
				return a.tracker.Increment(ctx, state, id, amount)
			})
		},
	}
	cmd.Flags().Int("by", 1, "Amount to add (negative subtracts)")
	return cmd
}

func incAmount(cmd *cobra.Command, args []string) (int, error) {
	if len(args) == 2 {
		if cmd.Flags().Changed("by") {
			return 0, fmt.Errorf("amount given both as argument and --by")
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", args[1])
		}
		return amount, nil
	}
	return cmd.Flags().GetInt("by")
}

func (a *app) updateProgress(cmd *cobra.Command, ref string, apply func(context.Context, tracker.State, string) (tracker.State, error)) error {
	state, err := a.tracker.Load(cmd.Context())
	if err != nil {
		return err
	}
	id, err := resolveTaskID(state, ref)
	if err != nil {
		return err
	}
	next, err := apply(cmd.Context(), state, id)
	if err != nil {
		return err
	}
	task, _, err := progress.Find(next.Tasks, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatTask(task, a.tracker.Today()))
	return nil
}

func editCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [task]",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := taskEditFromFlags(cmd)
			if err != nil {
				return err
			}

			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveTaskID(state, args[0])
			if err != nil {
				return err
			}
			_, task, err := a.tracker.EditTask(cmd.Context(), state, id, edit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(task, a.tracker.Today()))
			return nil
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Int("total", 0, "New goal")
	cmd.Flags().Int("current", 0, "New current value")
	cmd.Flags().Int("increment", 0, "New default increment")
	cmd.Flags().Int("start", 0, "New start value")
	cmd.Flags().Bool("include", true, "Count the task in the overall total")
	return cmd
}

func taskEditFromFlags(cmd *cobra.Command) (tracker.TaskEdit, error) {
	flags := cmd.Flags()
	var edit tracker.TaskEdit
	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		edit.Name = &name
	}
	ints := map[string]**int{
		"total":     &edit.Total,
		"current":   &edit.Current,
		"increment": &edit.DefaultIncrement,
		"start":     &edit.StartValue,
	}
	for name, target := range ints {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetInt(name)
		if err != nil {
			return tracker.TaskEdit{}, err
		}
		*target = &value
	}
	if flags.Changed("include") {
		include, _ := flags.GetBool("include")
		edit.IncludeInTotal = &include
	}
	return edit, nil
}

func rmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [task]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveTaskID(state, args[0])
			if err != nil {
				return err
			}
			if _, err := a.tracker.DeleteTask(cmd.Context(), state, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print a portable token holding every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			token, err := a.tracker.Export(state)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [token]",
		Short: "Replace every task with the contents of a token (reads stdin without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assumeYes, _ := cmd.Flags().GetBool("yes")
			in := bufio.NewReader(cmd.InOrStdin())

			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				data, err := io.ReadAll(in)
				if err != nil {
					return err
				}
				token = strings.Join(strings.Fields(string(data)), "")
				assumeYes = true
			}

			state, err := a.tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			confirm := func(tasks []model.Task) bool {
				if assumeYes {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Import %d task(s) and overwrite current data? [y/N] ", len(tasks))
				answer, _ := in.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == "yes"
			}

			next, replaced, err := a.tracker.Import(cmd.Context(), state, token, confirm)
			if err != nil {
				return err
			}
			if !replaced {
				fmt.Fprintln(cmd.OutOrStdout(), "import cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d task(s)\n", len(next.Tasks))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func settingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.tracker.LoadSettings(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("particles") {
				settings.ParticleCount, _ = cmd.Flags().GetInt("particles")
				if settings, err = a.tracker.SaveSettings(cmd.Context(), settings); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "particle count: %d\n", settings.ParticleCount)
			return nil
		},
	}
	cmd.Flags().Int("particles", model.DefaultParticleCount, "Celebration particle count (10-100)")
	return cmd
}

// resolveTaskID accepts a task id or its 1-based position in the list.
func resolveTaskID(state tracker.State, ref string) (string, error) {
	if _, _, err := progress.Find(state.Tasks, ref); err == nil {
		return ref, nil
	}
	if position, err := strconv.Atoi(ref); err == nil && position >= 1 && position <= len(state.Tasks) {
		return state.Tasks[position-1].ID, nil
	}
	return "", &progress.NotFoundError{ID: ref}
}

func printState(w io.Writer, state tracker.State, today model.Day) {
	if len(state.Tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	for i, task := range state.Tasks {
		fmt.Fprintf(w, "%2d. %s\n", i+1, formatTask(task, today))
	}
	totals := state.Totals()
	stats := state.Stats(today)
	fmt.Fprintf(w, "\ntotal: %d/%d (%d%%)\n", totals.Current, totals.Total, totals.Percentage)
	fmt.Fprintf(w, "done today: %d | in progress: %d | not started: %d\n", stats.CompletedToday, stats.InProgress, stats.NotStarted)
}

func formatTask(task model.Task, today model.Day) string {
	marker := " "
	if progress.IsCompletedToday(task, today) {
		marker = "✓"
	}
	line := fmt.Sprintf("%s %s %d/%d (%d%%)", marker, task.Name, task.Current, task.Total, progress.Percentage(task))
	if !task.IncludeInTotal {
		line += " [not counted]"
	}
	return line
}

type listing struct {
	Today  model.Day           `json:"today"`
	Tasks  []model.Task        `json:"tasks"`
	Totals progress.Totals     `json:"totals"`
	Stats  progress.DailyStats `json:"stats"`
}

func writeJSON(w io.Writer, state tracker.State, today model.Day) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(listing{
		Today:  today,
		Tasks:  state.Tasks,
		Totals: state.Totals(),
		Stats:  state.Stats(today),
	})
}
