package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskdash/internal/analytics"
	"taskdash/internal/notify"
	"taskdash/internal/task"
)

func (c *CLI) createAddCommand() *cobra.Command {
	var (
		desc     string
		due      string
		priority string
		category string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long:  `Add a task. The due date defaults to today, priority to medium and category to work.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.renderer(cmd, format)
			if err != nil {
				return err
			}
			t, err := c.repo.Add(task.Draft{
				Title:       strings.Join(args, " "),
				Description: desc,
				DueDate:     due,
				Priority:    priority,
				CategoryID:  category,
			}, c.now)
			if err != nil {
				return err
			}
			return out.Task(t)
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low, medium, high)")
	cmd.Flags().StringVarP(&category, "category", "c", "work", "Category (work, personal, health)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")

	return cmd
}

func (c *CLI) createListCommand() *cobra.Command {
	var (
		category string
		status   string
		format   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long:    `List tasks, optionally filtered by category and by status (all, active, completed).`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.renderer(cmd, format)
			if err != nil {
				return err
			}
			if _, ok := task.LookupCategory(category); !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			if status == "" {
				status = c.cfg.DefaultFilter
			}
			if !contains(task.StatusFilters(), status) {
				return fmt.Errorf("unknown status %q (want all, active or completed)", status)
			}
			return out.Tasks(c.repo.Snapshot().Filter(category, status))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", task.AllCategories, "Filter by category (all, work, personal, health)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (all, active, completed)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")

	return cmd
}

func (c *CLI) createDoneCommand() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Long:  `Mark a task completed. The id may be any unique prefix of the task id.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.repo.Snapshot().Find(args[0])
			if err != nil {
				return err
			}
			if t.Completed != undo {
				fmt.Fprintf(cmd.OutOrStdout(), "\"%s\" is already %s\n", t.Title, t.Status())
				return nil
			}
			t, err = c.repo.Toggle(t.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked \"%s\" %s\n", t.Title, t.Status())
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task pending again")

	return cmd
}

func (c *CLI) createRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.repo.Delete(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted \"%s\"\n", t.Title)
			return nil
		},
	}
}

func (c *CLI) createReportCommand() *cobra.Command {
	var (
		rangeKind string
		from      string
		to        string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show analytics for a date range",
		Long: `Show completion, productivity, category and priority analytics for the
current day, week (Monday to Sunday), month, or a custom --from/--to range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.renderer(cmd, format)
			if err != nil {
				return err
			}
			if rangeKind == "" {
				rangeKind = c.cfg.DefaultRange
			}
			kind, err := analytics.ParseKind(rangeKind)
			if err != nil {
				return err
			}
			if kind != analytics.KindCustom && (from != "" || to != "") {
				kind = analytics.KindCustom
			}
			if kind == analytics.KindCustom && (from == "" || to == "") {
				return errors.New("a custom range needs both --from and --to")
			}
			r := analytics.Resolve(kind, from, to, c.now)
			if r.Empty() {
				c.log.WithField("range", r.Label).Warn("empty range")
			}
			return out.Report(analytics.Analyze(c.repo.Snapshot(), r, c.now))
		},
	}

	cmd.Flags().StringVarP(&rangeKind, "range", "r", "", "Range (day, week, month, custom; default from config)")
	cmd.Flags().StringVar(&from, "from", "", "Custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Custom range end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")

	return cmd
}

func (c *CLI) createImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the task list with an exported JSON array",
		Long: `Replace the task list with the JSON array stored by the browser version
under the "tasks" key. Entries that fail validation are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var tasks []task.Task
			if err := json.Unmarshal(data, &tasks); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			skipped, err := c.repo.Replace(tasks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d skipped)\n", len(tasks)-skipped, skipped)
			return nil
		},
	}
}

func (c *CLI) createRemindCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send a desktop notification about overdue and upcoming tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := c.repo.Snapshot()
			if dryRun {
				r, ok := notify.Build(analytics.Summarize(tasks, c.now))
				printReminder(cmd, r, ok)
				return nil
			}
			r, ok, err := notify.Remind(c.notifier, tasks, c.now)
			if err != nil {
				c.log.WithError(err).Warn("notification failed")
				return err
			}
			printReminder(cmd, r, ok)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the reminder without notifying")

	return cmd
}

func printReminder(cmd *cobra.Command, r notify.Reminder, ok bool) {
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing overdue or due this week.")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Title, r.Message)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
