package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/engine"
	"github.com/tkellman/cashsim/internal/ledger"
	"github.com/tkellman/cashsim/internal/model"
	"github.com/tkellman/cashsim/internal/pipeline"
	"github.com/tkellman/cashsim/internal/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Project the balance day by day and recommend surplus transfers",
	RunE:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
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

	forecast := pipeline.ForecastOnly(data.Transactions)
	result, err := engine.Simulate(current, target, forecast, startDate, opts.window)
	if err != nil {
		return err
	}

	renderSimulation(opts, result, startDate)

	outPath := filepath.Join(ledger.UserDir(opts.dataDir, opts.user).Dir,
		fmt.Sprintf("simulation_output_%s.csv", time.Now().Format("20060102")))
	if err := writeSimulationCSV(outPath, result.Days); err != nil {
		return fmt.Errorf("writing simulation output: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", outPath)
	}

	recordRun(opts, result, startDate, current, target)
	return nil
}

func renderSimulation(opts options, result *engine.SimulationResult, startDate time.Time) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW SIMULATION  %s  %dd from %s",
		opts.user, opts.window, startDate.Format("2006-01-02"))))
	fmt.Println()

	fmt.Printf("  %s\n\n", cli.RenderSparkline(endBalanceSeries(result.Days)))

	table := cli.Table{
		Headers: []string{"Date", "Day", "Net Change", "End Balance", "Status"},
	}
	for _, d := range result.Days {
		table.Rows = append(table.Rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Date),
			cli.FormatSignedMoney(d.NetChange),
			cli.FormatMoney(d.EndBalance),
			cli.RenderAlert(d.Alert),
		})
	}
	fmt.Println(cli.RenderTable(table))

	renderAlertSection(result)
	renderTransferSection(result)
}

func renderAlertSection(result *engine.SimulationResult) {
	alerts := result.AlertDays()
	fmt.Println()
	fmt.Println(cli.RenderTitle("ALERTS"))
	if len(alerts) == 0 {
		fmt.Println(cli.Muted("  No days below target."))
		return
	}
	for _, d := range alerts {
		fmt.Printf("  %s  balance %s  SYSTEM: Add funds (%s)\n",
			d.Date.Format("2006-01-02"),
			cli.FormatMoney(d.EndBalance),
			cli.FormatMoney(d.Shortfall))
	}
}

func renderTransferSection(result *engine.SimulationResult) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("SYSTEM TRANSFERS"))
	if len(result.Transfers) == 0 {
		fmt.Println(cli.Muted("  No surplus to transfer in this window."))
		return
	}
	for _, tr := range result.Transfers {
		fmt.Printf("  %s  transfer out %s\n", tr.Date.Format("2006-01-02"), cli.FormatMoney(tr.Amount))
	}
	fmt.Printf("\n  Total: %s\n", cli.FormatMoney(result.TotalTransferred()))
}

func endBalanceSeries(days []model.DayRecord) []decimal.Decimal {
	out := make([]decimal.Decimal, len(days))
	for i, d := range days {
		out[i] = d.EndBalance
	}
	return out
}

func writeSimulationCSV(path string, days []model.DayRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "start_balance", "transactions_summary", "net_change", "end_balance", "alert_type"}); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			d.Date.Format("2006-01-02"),
			d.StartBalance.StringFixed(2),
			d.Summary,
			d.NetChange.StringFixed(2),
			d.EndBalance.StringFixed(2),
			string(d.Alert),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func recordRun(opts options, result *engine.SimulationResult, startDate time.Time, current, target decimal.Decimal) {
	cache := openRunStore()
	if cache == nil {
		return
	}
	defer func() { _ = cache.Close() }()

	run := store.Run{
		ID:            store.NewRunID(),
		User:          opts.user,
		StartedAt:     time.Now(),
		StartDate:     startDate,
		WindowDays:    opts.window,
		StartBalance:  current,
		TargetBalance: target,
		AlertDays:     len(result.AlertDays()),
		TransferCount: len(result.Transfers),
		TransferTotal: result.TotalTransferred(),
	}
	if n := len(result.Days); n > 0 {
		run.FinalBalance = result.Days[n-1].EndBalance
	}
	if err := cache.SaveRun(run); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Could not record run: %v\n", err)
	}
}
