package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/engine"
	"github.com/tkellman/cashsim/internal/pipeline"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show only the days projected below target",
	RunE:  runAlerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	startDate := engine.DateOnly(time.Now())
	if flagFrom != "" {
		startDate, err = time.Parse("2006-01-02", flagFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date %q: %w", flagFrom, err)
		}
	}

	data, err := loadUserData(opts)
	if err != nil {
		return err
	}
	current, target, err := data.Profile.ParseBalances()
	if err != nil {
		return err
	}

	result, err := engine.Simulate(current, target, pipeline.ForecastOnly(data.Transactions), startDate, opts.window)
	if err != nil {
		return err
	}

	alerts := result.AlertDays()
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ALERTS  %s  next %dd", opts.user, opts.window)))
	if len(alerts) == 0 {
		fmt.Println(cli.Muted("  No days below target."))
		return nil
	}

	table := cli.Table{
		Headers: []string{"Date", "Day", "End Balance", "Add Funds"},
	}
	for _, d := range alerts {
		table.Rows = append(table.Rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Date),
			cli.FormatMoney(d.EndBalance),
			cli.FormatMoney(d.Shortfall),
		})
	}
	fmt.Println(cli.RenderTable(table))
	return nil
}
