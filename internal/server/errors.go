package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/authorization"
	clientdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	commissiondomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/domain"
	consortiumdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
	contractdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
	sigdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
	templatedomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/template/domain"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not_found")
	ErrRateLimited  = errors.New("rate_limited")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e apiError) Error() string { return e.Message }

func invalidRequestError() apiError {
	return apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) apiError {
	return apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError converts service errors into a JSON error response.
func AbortWithError(c *gin.Context, err error) {
	var api apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, identity.ErrInvalidToken), errors.Is(err, identity.ErrMissingClaim):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrForbidden), errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, contractdomain.ErrNotOwner), errors.Is(err, contractdomain.ErrTemplateForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrRateLimited):
		status, code = http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrNotFound),
		errors.Is(err, contractdomain.ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, templatedomain.ErrNotFound),
		errors.Is(err, commissiondomain.ErrNotFound),
		errors.Is(err, consortiumdomain.ErrGroupNotFound),
		errors.Is(err, consortiumdomain.ErrQuotaNotFound),
		errors.Is(err, sigdomain.ErrSlotNotFound):
		status, code = http.StatusNotFound, err.Error()
	case errors.Is(err, contractdomain.ErrVersionConflict),
		errors.Is(err, templatedomain.ErrNameTaken),
		errors.Is(err, consortiumdomain.ErrQuotaUnavailable),
		errors.Is(err, consortiumdomain.ErrQuotaNotHeld),
		errors.Is(err, consortiumdomain.ErrDuplicateNumber),
		errors.Is(err, sigdomain.ErrAlreadySigned):
		status, code = http.StatusConflict, err.Error()
	case errors.Is(err, contractdomain.ErrNotEditable),
		errors.Is(err, contractdomain.ErrNotDeletable),
		errors.Is(err, contractdomain.ErrNotSubmittable),
		errors.Is(err, contractdomain.ErrNotReviewable):
		status, code = http.StatusUnprocessableEntity, err.Error()
	case isValidationError(err):
		status, code = http.StatusBadRequest, err.Error()
	}

	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Status: status, Code: code, Message: err.Error()}})
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		contractdomain.ErrInvalidID,
		contractdomain.ErrInvalidStatus,
		contractdomain.ErrInvalidAmount,
		contractdomain.ErrReasonRequired,
		clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidName,
		clientdomain.ErrInvalidDocument,
		templatedomain.ErrInvalidID,
		templatedomain.ErrInvalidName,
		templatedomain.ErrInvalidVisibility,
		commissiondomain.ErrInvalidID,
		commissiondomain.ErrInvalidName,
		commissiondomain.ErrInvalidPercentage,
		commissiondomain.ErrInvalidFormula,
		consortiumdomain.ErrInvalidGroupID,
		consortiumdomain.ErrInvalidQuotaID,
		consortiumdomain.ErrInvalidName,
		consortiumdomain.ErrInvalidNumber,
		sigdomain.ErrInvalidImage,
		sigdomain.ErrInvalidDocType,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
