package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskboard/internal/filter"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/render"
)

// list flags
var (
	listStatus   string
	listSearch   string
	listPriority []string
	listProgress []string
	listDue      []string
)

// now is swapped in tests
var now = time.Now

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the tasks matching the given filters",
	Example: `  taskboard list --status pending --priority high
  taskboard list --search report --due today,tomorrow`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print task counters",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup TITLE...",
	Short: "Remove every task whose title matches one of the given titles exactly",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCleanup,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "all", "all, pending, completed or overdue")
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive text in title, description or tags")
	listCmd.Flags().StringSliceVar(&listPriority, "priority", nil, "low, medium, high")
	listCmd.Flags().StringSliceVar(&listProgress, "progress", nil, "0-30, 31-70, 71-99, 100")
	listCmd.Flags().StringSliceVar(&listDue, "due", nil, "today, tomorrow, week, overdue")
}

// criteriaFromFlags validates the list flags
func criteriaFromFlags() (filter.Criteria, error) {
	status, ok := filter.ParseStatus(listStatus)
	if !ok {
		return filter.Criteria{}, fmt.Errorf("unknown status %q", listStatus)
	}
	c := filter.Criteria{Search: listSearch, Status: status}

	for _, raw := range listPriority {
		p, ok := models.ParsePriority(raw)
		if !ok {
			return filter.Criteria{}, fmt.Errorf("unknown priority %q", raw)
		}
		c.Priorities = append(c.Priorities, p)
	}
	for _, raw := range listProgress {
		b := filter.ProgressBucket(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
		if !slices.Contains(filter.ProgressBuckets, b) {
			return filter.Criteria{}, fmt.Errorf("unknown progress range %q", raw)
		}
		c.Progress = append(c.Progress, b)
	}
	for _, raw := range listDue {
		b := filter.DueBucket(strings.ToLower(strings.TrimSpace(raw)))
		if !slices.Contains(filter.DueBuckets, b) {
			return filter.Criteria{}, fmt.Errorf("unknown due window %q", raw)
		}
		c.Due = append(c.Due, b)
	}
	return c, nil
}

func runList(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags()
	if err != nil {
		return err
	}

	database, tasks, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	all, err := tasks.LoadAll()
	if err != nil {
		return err
	}
	t := now()
	vm := render.Render(all, filter.Apply(all, criteria, t), t)

	out := cmd.OutOrStdout()
	if len(vm.Items) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "TITLE", "PRIORITY", "PROGRESS", "DUE", "TAGS")
	for _, item := range vm.Items {
		done := " "
		if item.Completed {
			done = "x"
		}
		due := item.DueLabel
		if item.Overdue {
			due += " !"
		}
		tbl.Row(done, item.Title, item.PriorityLabel, strconv.Itoa(item.Progress)+"%", due, strings.Join(item.Tags, ", "))
	}
	fmt.Fprintln(out, tbl.String())
	fmt.Fprintf(out, "%d of %d tasks\n", len(vm.Items), vm.Stats.Total)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	database, tasks, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	all, err := tasks.LoadAll()
	if err != nil {
		return err
	}
	st := render.ComputeStats(all, now())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total:       %d\n", st.Total)
	fmt.Fprintf(out, "Pending:     %d\n", st.Pending)
	fmt.Fprintf(out, "In progress: %d\n", st.InProgress)
	fmt.Fprintf(out, "Completed:   %d\n", st.Completed)
	fmt.Fprintf(out, "Overdue:     %d\n", st.Overdue)
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	database, tasks, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := tasks.RemoveByTitles(args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d task(s)\n", n)
	return nil
}
