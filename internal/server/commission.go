package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	commissiondomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/domain"
)

func (s *Server) CreateCommissionTable(c *gin.Context) {
	var req commissiondomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.commissionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCommissionTables(c *gin.Context) {
	resp, err := s.commissionSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PreviewCommission(c *gin.Context) {
	var req struct {
		TotalAmount int64 `json:"total_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.commissionSvc.Preview(c.Request.Context(), commissiondomain.PreviewRequest{
		TableID:     strings.TrimSpace(c.Param("id")),
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
