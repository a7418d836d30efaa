package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/pipeline"
	"github.com/tkellman/cashsim/internal/store"
)

var flagRunLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent simulation runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer func() { _ = cache.Close() }()

	runs, err := cache.ListRuns(opts.user, flagRunLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUN HISTORY  %s", opts.user)))
	if len(runs) == 0 {
		fmt.Println(cli.Muted("  No runs recorded yet."))
		return nil
	}

	table := cli.Table{
		Headers: []string{"Started", "From", "Window", "Final Balance", "Alerts", "Transfers", "Transferred"},
	}
	for _, r := range runs {
		table.Rows = append(table.Rows, []string{
			r.StartedAt.Format("2006-01-02 15:04"),
			r.StartDate.Format("2006-01-02"),
			strconv.Itoa(r.WindowDays) + "d",
			cli.FormatMoney(r.FinalBalance),
			strconv.Itoa(r.AlertDays),
			strconv.Itoa(r.TransferCount),
			cli.FormatMoney(r.TransferTotal),
		})
	}
	fmt.Println(cli.RenderTable(table))
	return nil
}
