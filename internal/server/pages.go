package server

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	contractdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
	sigdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "templates/*.html"))

const maxUploadSize = 10 << 20

type signBlockPageData struct {
	ContractCode string
	SlotID       string
	SignerName   string
	SignerDoc    string
	Signed       bool
}

// SignBlockPage serves the standalone signing page one signer reaches
// through their link.
func (s *Server) SignBlockPage(c *gin.Context) {
	slot, err := s.slotForRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	record, err := s.contractSvc.Render(c.Request.Context(), slot.ContractID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.renderPage(c, "sign_block.html", signBlockPageData{
		ContractCode: record.Contract.Code,
		SlotID:       slot.SlotID,
		SignerName:   slot.SignerName,
		SignerDoc:    sigdomain.FormatDocument(slot.SignerCPF),
		Signed:       slot.Status == sigdomain.SlotSigned,
	})
}

// SubmitSignBlock stores the uploaded signature stroke for one slot.
func (s *Server) SubmitSignBlock(c *gin.Context) {
	slot, err := s.slotForRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, contentType, err := readUpload(c, "signature")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	signed, err := s.signatureSvc.MarkSigned(c.Request.Context(), sigdomain.MarkSignedRequest{
		SlotID:      slot.SlotID,
		ImageData:   data,
		ContentType: contentType,
		SignerCPF:   c.PostForm("cpf"),
		RemoteAddr:  c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": signed})
}

type signPageData struct {
	ContractCode string
	ContractID   string
	HTML         template.HTML
	PendingSlots []sigdomain.SignatureSlot
}

// SignPage serves the full client flow: the rendered document plus the
// identity document upload form.
func (s *Server) SignPage(c *gin.Context) {
	view, err := s.contractSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("contractId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	slots, err := s.signatureSvc.ListSlots(c.Request.Context(), view.Contract.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := signPageData{
		ContractCode: view.Contract.Code,
		ContractID:   view.Contract.ID.String(),
		HTML:         template.HTML(view.HTML),
	}
	for _, slot := range slots {
		if slot.Status == sigdomain.SlotPending {
			data.PendingSlots = append(data.PendingSlots, slot)
		}
	}
	s.renderPage(c, "sign.html", data)
}

// SubmitSignPage captures the client's signature and identity document,
// then hands the contract over for review.
func (s *Server) SubmitSignPage(c *gin.Context) {
	view, err := s.contractSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("contractId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "signer name is required"))
		return
	}
	cpf := c.PostForm("cpf")

	stroke, strokeType, err := readUpload(c, "signature")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	docData, docContentType, err := readUpload(c, "document")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	slots, err := s.signatureSvc.ListSlots(c.Request.Context(), view.Contract.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	// The stroke lands on the client's own pending slots; slots naming a
	// different CPF keep waiting for their own links.
	for _, slot := range slots {
		if slot.Status != sigdomain.SlotPending || !slotMatchesSigner(slot, cpf) {
			continue
		}
		_, err := s.signatureSvc.MarkSigned(c.Request.Context(), sigdomain.MarkSignedRequest{
			SlotID:      slot.SlotID,
			ImageData:   stroke,
			ContentType: strokeType,
			SignerName:  name,
			SignerCPF:   cpf,
			RemoteAddr:  c.ClientIP(),
		})
		if err != nil && !errors.Is(err, sigdomain.ErrAlreadySigned) {
			AbortWithError(c, err)
			return
		}
	}

	doc, err := s.signatureSvc.AddDocument(c.Request.Context(), sigdomain.AddDocumentRequest{
		ContractID:  view.Contract.ID,
		DocType:     c.PostForm("doc_type"),
		Data:        docData,
		ContentType: docContentType,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The client finishing the flow submits on behalf of the owning
	// representative. Already-reviewed contracts stay where they are.
	owner := identity.Actor{UserID: view.Contract.RepresentativeID, Role: "representative"}
	if _, err := s.contractSvc.Submit(c.Request.Context(), owner, view.Contract.ID.String()); err != nil &&
		!errors.Is(err, contractdomain.ErrNotSubmittable) {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func slotMatchesSigner(slot sigdomain.SignatureSlot, cpf string) bool {
	if slot.SignerCPF == "" {
		return true
	}
	return digits(cpf) == digits(slot.SignerCPF)
}

func digits(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

type viewPageData struct {
	ContractCode string
	Status       string
	HTML         template.HTML
}

// ViewContract serves the print-ready document with signature blocks
// rendered in place.
func (s *Server) ViewContract(c *gin.Context) {
	view, err := s.contractSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("contractId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.renderPage(c, "view.html", viewPageData{
		ContractCode: view.Contract.Code,
		Status:       string(view.Contract.Status),
		HTML:         template.HTML(view.HTML),
	})
}

func (s *Server) slotForRequest(c *gin.Context) (*sigdomain.SignatureSlot, error) {
	slot, err := s.signatureSvc.GetSlot(c.Request.Context(), strings.TrimSpace(c.Param("slotId")))
	if err != nil {
		return nil, err
	}
	// The link carries both ids; a mismatch means a stale or forged URL.
	if slot.ContractID.String() != strings.TrimSpace(c.Param("contractId")) {
		return nil, sigdomain.ErrSlotNotFound
	}
	return slot, nil
}

func (s *Server) renderPage(c *gin.Context, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTemplates.ExecuteTemplate(c.Writer, name, data); err != nil {
		s.log.Error("page render failed", zap.Error(err))
	}
}

func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, "", newValidationError(field, "required", field+" upload is required")
	}
	if file.Size > maxUploadSize {
		return nil, "", newValidationError(field, "too_large", "upload exceeds the size limit")
	}
	opened, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer opened.Close()

	data, err := io.ReadAll(io.LimitReader(opened, maxUploadSize+1))
	if err != nil {
		return nil, "", err
	}
	return data, file.Header.Get("Content-Type"), nil
}
