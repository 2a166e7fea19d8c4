package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

func registerLedgerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.LedgerAuditSvc) {
	rg.GET("/ledger/audit", func(c *gin.Context) {
		runLedgerAudit(c, auditService)
	})
}

// runLedgerAudit godoc
// @Summary Audit ledger totals
// @Description Compares stored booking and expense totals with their active payments. Nothing is repaired.
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.LedgerAuditResponse
// @Failure 500 {object} map[string]string "Failed to audit ledgers"
// @Security BearerAuth
// @Router /ledger/audit [get]
func runLedgerAudit(c *gin.Context, auditService portssvc.LedgerAuditSvc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := auditService.Audit(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to audit ledgers")
		return
	}

	logger.Info("Ledger audit served", slog.Int("discrepancies", len(report.Discrepancies)))
	c.JSON(http.StatusOK, dto.ToLedgerAuditResponse(report))
}
