package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/cli"
	"github.com/tkellman/cashsim/internal/ledger"
	"github.com/tkellman/cashsim/internal/model"
	"github.com/tkellman/cashsim/internal/pipeline"
)

var flagMonth string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Monthly profit & loss rollup by category",
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&flagMonth, "month", "m", "", "Month to summarize (YYYYMM, default current)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	month := flagMonth
	if month == "" {
		month = time.Now().Format("200601")
	}
	year, mon, err := pipeline.ParseMonth(month)
	if err != nil {
		return err
	}

	data, err := loadUserData(opts)
	if err != nil {
		return err
	}

	uncategorized := pipeline.FindUncategorized(data.Transactions, data.Profile.Categories.Valid)
	if len(uncategorized) > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d transaction(s) with unknown categories", len(uncategorized))))
		outPath := filepath.Join(ledger.UserDir(opts.dataDir, opts.user).Dir,
			fmt.Sprintf("uncategorized_%s.csv", time.Now().Format("20060102")))
		if err := writeTransactionsCSV(outPath, uncategorized); err != nil {
			return fmt.Errorf("writing uncategorized report: %w", err)
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %s\n", outPath)
		}
	}

	summary := pipeline.SummarizeMonth(data.Transactions, data.Profile.Categories.Valid, year, mon)

	renderSummary(opts, month, summary)
	return nil
}

func renderSummary(opts options, month string, summary model.MonthlySummary) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY SUMMARY  %s  %s", opts.user, month)))

	categories := make([]string, 0, len(summary.Categories))
	for cat := range summary.Categories {
		if len(summary.Categories[cat]) == 0 {
			continue
		}
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		fmt.Printf("\n  %s\n", cat)
		descs := make([]string, 0, len(summary.Categories[cat]))
		for desc := range summary.Categories[cat] {
			descs = append(descs, desc)
		}
		sort.Strings(descs)
		for _, desc := range descs {
			fmt.Printf("    %-32s %s\n", desc, cli.FormatSignedMoney(summary.Categories[cat][desc]))
		}
	}

	st := summary.Statement
	fmt.Println()
	fmt.Println(cli.RenderTitle("CASH FLOW STATEMENT"))
	fmt.Printf("  %-24s %s\n", "Revenue", cli.FormatSignedMoney(st.Revenue))
	fmt.Printf("  %-24s %s\n", "Fixed Expenses", cli.FormatSignedMoney(st.FixedExpenses))
	fmt.Printf("  %-24s %s\n", "Variable Expenses", cli.FormatSignedMoney(st.VariableExpenses))
	fmt.Printf("  %-24s %s\n", "Profit Margin", cli.FormatSignedMoney(st.ProfitMargin))
	fmt.Printf("  %-24s %s\n", "Misc Income", cli.FormatSignedMoney(st.MiscIncome))
	fmt.Printf("  %-24s %s\n", "Misc Expenses", cli.FormatSignedMoney(st.MiscExpenses))
	fmt.Printf("  %-24s %s\n", "Net Income", cli.FormatSignedMoney(st.NetIncome))
}

func writeTransactionsCSV(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "amount", "description", "category", "forecast"}); err != nil {
		return err
	}
	for _, tx := range txns {
		forecast := "0"
		if tx.Forecast {
			forecast = "1"
		}
		row := []string{
			tx.Date.Format("2006-01-02"),
			tx.Amount.StringFixed(2),
			tx.Description,
			tx.Category,
			forecast,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
