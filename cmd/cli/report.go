package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/ledger"
	"github.com/dvloznov/partner-ledger/internal/money"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the financial position for a period",
	Long: `Aggregate transactions, expenses and donation payouts into the company and
partner figures. Flow figures cover the period; balances and the donation
fund are always all-time.`,
	Example: `  # All time
  ledger report

  # One month, as JSON
  ledger report --start-date 2025-01-01 --end-date 2025-01-31 --json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addPeriodFlags(reportCmd)
	addSnapshotFlag(reportCmd)
	reportCmd.Flags().Bool("json", false, "Print the raw report as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext("report", 2*time.Minute)
	defer cancel()

	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, s, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := svc.Report(ctx, period)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(os.Stdout, report)
}

// printReport writes a human readable report.
func printReport(out io.Writer, r ledger.Report) error {
	f := r.Financials
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "Period:\t%s\t\n", r.Period)
	fmt.Fprintf(w, "Records:\t%d transactions, %d expenses, %d payouts\t\n",
		r.Counts.Transactions, r.Counts.Expenses, r.Counts.DonationPayouts)
	fmt.Fprintln(w, "\t\t")
	fmt.Fprintf(w, "Gross profit\t%s\t\n", money.PKR(f.TotalGrossProfit))
	fmt.Fprintf(w, "Net profit\t%s\t\n", money.PKR(f.TotalNetProfit))
	fmt.Fprintf(w, "Company expenses\t%s\t\n", money.PKR(f.TotalCompanyExpenses))
	fmt.Fprintf(w, "Personal expenses\t%s\t\n", money.PKR(f.TotalPersonalExpenses))
	fmt.Fprintf(w, "Donations accrued\t%s\t\n", money.PKR(f.TotalDonationsAccrued))
	fmt.Fprintf(w, "Donations paid\t%s\t\n", money.PKR(f.TotalDonationsPaid))
	fmt.Fprintf(w, "Company capital\t%s\t\n", money.PKR(r.Wallet.AvailableBalance))
	fmt.Fprintf(w, "Donation fund\t%s\t\n", money.PKR(r.Wallet.DonationsFund))
	if f.Loan.OwedBy != nil {
		fmt.Fprintf(w, "Loan\t%s owed by %s\t\n", money.PKR(f.Loan.Amount), *f.Loan.OwedBy)
	}

	if len(r.Partners) > 0 {
		fmt.Fprintln(w, "\t\t")
		fmt.Fprintln(w, "Partner\tEquity\tEarned\tSpent\tBalance\t")
		for _, p := range r.Partners {
			pw := r.PartnerWallets[p.ID]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				p.Name, money.Percent(p.Equity*100),
				money.PKR(pw.TotalIncome), money.PKR(pw.TotalExpenses), money.PKR(pw.AvailableBalance))
		}
	}
	return w.Flush()
}
