package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	auditdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/domain"
	clientdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	contractdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/domain"
)

// ExportContractBook streams the contract book as a spreadsheet.
func (s *Server) ExportContractBook(c *gin.Context) {
	ctx := c.Request.Context()

	tx := s.db.WithContext(ctx).Model(&contractdomain.Contract{})
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := contractdomain.ParseStatus(raw)
		if !ok {
			AbortWithError(c, contractdomain.ErrInvalidStatus)
			return
		}
		tx = tx.Where("status = ?", status)
	}

	var contracts []contractdomain.Contract
	if err := tx.Order("created_at").Find(&contracts).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	clientNames := map[int64]string{}
	var clients []clientdomain.Client
	if err := s.db.WithContext(ctx).Find(&clients).Error; err != nil {
		AbortWithError(c, err)
		return
	}
	for _, client := range clients {
		clientNames[int64(client.ID)] = client.Name
	}

	book := excelize.NewFile()
	defer book.Close()

	const sheet = "Contratos"
	book.SetSheetName(book.GetSheetName(0), sheet)

	headers := []string{"Código", "Cliente", "Status", "Valor total (R$)", "Parcelas", "Criado em"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		book.SetCellValue(sheet, cell, header)
	}

	for row, record := range contracts {
		values := []any{
			record.Code,
			clientNames[int64(record.ClientID)],
			string(record.Status),
			float64(record.TotalAmount) / 100,
			record.Installments,
			record.CreatedAt.Format("02/01/2006"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			book.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("contratos-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := book.Write(c.Writer); err != nil {
		s.log.Error("spreadsheet write failed", zap.Error(err))
	}
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		Action     string `form:"action"`
		TargetType string `form:"target_type"`
		TargetID   string `form:"target_id"`
		Limit      int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entries, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListFilter{
		Action:     strings.TrimSpace(query.Action),
		TargetType: strings.TrimSpace(query.TargetType),
		TargetID:   strings.TrimSpace(query.TargetID),
		Limit:      query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
