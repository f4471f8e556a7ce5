package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"area1337-backend/internal/delivery/http/response"
	"area1337-backend/internal/domain"
	"area1337-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxContactBody bounds the submission size; larger bodies are treated as invalid
const maxContactBody = 64 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, rate limited)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", limit, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form submission to the company inbox by email.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.SuccessBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Failure      502      {object}  response.ErrorBody
// @Router       /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBody))
	if err != nil {
		c.Error(apperror.BadRequest(domain.MsgInvalidBody))
		return
	}

	req, err := decodeContactRequest(raw)
	if err != nil {
		c.Error(apperror.BadRequest(domain.MsgInvalidBody))
		return
	}

	// A client hanging up must not abort a relay that is already under way
	ctx := context.WithoutCancel(c.Request.Context())

	if err := h.contactUC.SendContactMessage(ctx, req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK)
}

// decodeContactRequest reads only the exact-case field names.
// encoding/json would otherwise fold "FIRSTNAME" onto firstName.
func decodeContactRequest(raw []byte) (*domain.ContactRequest, error) {
	// Unmarshal rejects trailing data, unlike a streaming decoder
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	req := &domain.ContactRequest{}
	targets := map[string]*string{
		"firstName": &req.FirstName,
		"lastName":  &req.LastName,
		"email":     &req.Email,
		"company":   &req.Company,
		"subject":   &req.Subject,
		"message":   &req.Message,
	}
	for key, dst := range targets {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
	}
	return req, nil
}
