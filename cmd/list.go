package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/ui"
	"taskdeck/query"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, optionally filtered by status, narrowed by a search
term, and sorted by a chosen key.

Examples:
  taskdeck list                          # everything, newest first
  taskdeck list --status todo            # only open tasks
  taskdeck list --search groceries       # title/description substring match
  taskdeck list --sort due --order asc   # soonest due date first
  taskdeck list --sort priority --order desc`,
	RunE: runList,
}

var (
	listStatus string
	listSearch string
	listSort   string
	listOrder  string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "filter by status (todo, in-progress, done, all)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive search in title and description")
	listCmd.Flags().StringVar(&listSort, "sort", "created", "sort key (created, due, priority, title)")
	listCmd.Flags().StringVar(&listOrder, "order", "desc", "sort order (asc, desc)")
}

// buildQueryParams validates the list flags into query.Params.
func buildQueryParams(status, search, sortKey, order string) (query.Params, error) {
	var p query.Params
	var err error

	if p.Status, err = query.ParseStatusFilter(status); err != nil {
		return query.Params{}, err
	}
	if p.SortBy, err = query.ParseSortKey(sortKey); err != nil {
		return query.Params{}, err
	}
	if p.Order, err = query.ParseOrder(order); err != nil {
		return query.Params{}, err
	}
	p.Search = search
	return p, nil
}

func runList(cmd *cobra.Command, args []string) error {
	params, err := buildQueryParams(listStatus, listSearch, listSort, listOrder)
	if err != nil {
		return err
	}

	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	tasks, err := taskStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	view := query.Apply(tasks, params)

	if isJSON() {
		return printJSON(view)
	}

	if len(view) == 0 {
		switch {
		case len(tasks) == 0:
			cmd.Println("No tasks yet. Add one with: taskdeck add \"Your task\" --desc \"...\"")
		case params.Search != "":
			cmd.Printf("No tasks match %q.\n", params.Search)
		case params.Status != query.StatusAll:
			cmd.Printf("No %s tasks.\n", params.Status)
		default:
			cmd.Println("No tasks match.")
		}
		return nil
	}

	fmt.Print(ui.RenderTaskTable(view))
	return nil
}
