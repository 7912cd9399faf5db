package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/finance"
)

var migrateExpensesCmd = &cobra.Command{
	Use:   "migrate-expenses",
	Short: "Attach partner ids to legacy expenses",
	Long: `Resolve the partner of every expense recorded without a partner id by
matching its spender name against partner names and display names. Unmatched
expenses are listed and left unchanged.`,
	RunE: runMigrateExpenses,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check partners, income sources and the donation policy",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(migrateExpensesCmd)
	rootCmd.AddCommand(validateCmd)
	migrateExpensesCmd.Flags().Bool("dry-run", false, "Report matches without saving")
	addSnapshotFlag(validateCmd)
}

func runMigrateExpenses(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext("migrate-expenses", 5*time.Minute)
	defer cancel()

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	svc, s, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := svc.MigrateExpenseAttribution(ctx, dryRun)
	if err != nil {
		return err
	}

	for _, e := range result.Attributed {
		fmt.Printf("  [OK]   %s %q -> %s\n", e.ID, e.ByWhom, e.PartnerID)
	}
	for _, e := range result.Unmatched {
		fmt.Printf("  [SKIP] %s %q (no matching partner)\n", e.ID, e.ByWhom)
	}
	verb := "Attributed"
	if dryRun {
		verb = "Would attribute"
	}
	fmt.Printf("%s %d expense(s); %d unmatched\n", verb, len(result.Attributed), len(result.Unmatched))
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext("validate", 2*time.Minute)
	defer cancel()

	svc, s, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var problems []error

	partners, err := svc.ListPartners(ctx)
	if err != nil {
		return err
	}
	warnings, err := finance.ValidatePartners(partners)
	if err != nil {
		problems = append(problems, fmt.Errorf("partners: %w", err))
	}
	printWarnings(warnings)

	donation, err := svc.DonationConfig(ctx)
	if err != nil {
		return err
	}
	warnings, err = finance.ValidateDonationConfig(donation)
	if err != nil {
		problems = append(problems, fmt.Errorf("donation policy: %w", err))
	}
	printWarnings(warnings)

	sources, err := svc.ListIncomeSources(ctx)
	if err != nil {
		return err
	}
	for _, source := range sources {
		if err := finance.ValidateIncomeSource(source); err != nil {
			problems = append(problems, fmt.Errorf("income source %s: %w", source.ID, err))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}
	fmt.Printf("OK: %d partners, %d income sources\n", len(partners), len(sources))
	return nil
}

func printWarnings(warnings []*finance.ValidationError) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Field, w.Message)
	}
}
