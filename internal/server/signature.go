package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sigdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
)

// ListSignatureLinks returns the public signing URL for every slot of a
// contract the actor can see.
func (s *Server) ListSignatureLinks(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	record, err := s.contractSvc.GetByID(c.Request.Context(), actor, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	links, err := s.signatureSvc.BuildSignatureLinks(c.Request.Context(), record.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": links})
}

type mintSignatureFieldRequest struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// MintSignatureField hands the contract editor a ready-to-paste signature
// token with a fresh slot id.
func (s *Server) MintSignatureField(c *gin.Context) {
	var req mintSignatureFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "signer name is required"))
		return
	}

	ref := sigdomain.SlotRef{
		SlotID:     uuid.NewString(),
		SignerName: name,
		SignerCPF:  strings.TrimSpace(req.CPF),
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"slot_id": ref.SlotID,
		"token":   sigdomain.BuildToken(ref),
	}})
}

func (s *Server) RemoveSignature(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	slotID := strings.TrimSpace(c.Param("slotId"))

	slot, err := s.signatureSvc.GetSlot(c.Request.Context(), slotID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	// Visibility check doubles as the ownership gate.
	if _, err := s.contractSvc.GetByID(c.Request.Context(), actor, slot.ContractID.String()); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.signatureSvc.RemoveSignature(c.Request.Context(), slotID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListContractDocuments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	record, err := s.contractSvc.GetByID(c.Request.Context(), actor, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	docs, err := s.signatureSvc.ListDocuments(c.Request.Context(), record.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}
