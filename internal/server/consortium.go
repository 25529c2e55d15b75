package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	consortiumdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
)

func (s *Server) CreateGroup(c *gin.Context) {
	var req consortiumdomain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consortiumSvc.CreateGroup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListGroups(c *gin.Context) {
	resp, err := s.consortiumSvc.ListGroups(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateQuota(c *gin.Context) {
	var req struct {
		Number string `json:"number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consortiumSvc.CreateQuota(c.Request.Context(), consortiumdomain.CreateQuotaRequest{
		GroupID: strings.TrimSpace(c.Param("id")),
		Number:  strings.TrimSpace(req.Number),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListGroupQuotas(c *gin.Context) {
	resp, err := s.consortiumSvc.ListQuotas(c.Request.Context(), consortiumdomain.ListQuotasRequest{
		GroupID: strings.TrimSpace(c.Param("id")),
		Status:  strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListQuotas(c *gin.Context) {
	var query consortiumdomain.ListQuotasRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consortiumSvc.ListQuotas(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
