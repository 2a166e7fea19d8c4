package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/courier_ledger/internal/core/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/courier_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check stored ledger totals against active payments",
	Long: `audit recomputes every booking and expense total from its active payments
and prints the ledgers that disagree as JSON. Nothing is repaired.

The command exits non-zero when a discrepancy is found unless --report-only is set.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().Bool("report-only", false, "Exit zero even when discrepancies are found")
}

func runAudit(cmd *cobra.Command, args []string) error {
	reportOnly, _ := cmd.Flags().GetBool("report-only")

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, true)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	auditSvc := services.NewLedgerAuditService(pgsql.NewRepositoryProvider(dbPool).AuditRepo)
	report, err := auditSvc.Audit(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.ToLedgerAuditResponse(report)); err != nil {
		return err
	}

	if len(report.Discrepancies) > 0 && !reportOnly {
		logger.Warn("Ledger discrepancies found", slog.Int("count", len(report.Discrepancies)))
		return fmt.Errorf("%d ledger(s) disagree with their payments", len(report.Discrepancies))
	}
	return nil
}
