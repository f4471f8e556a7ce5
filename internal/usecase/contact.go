package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"area1337-backend/config"
	"area1337-backend/internal/domain"
	"area1337-backend/pkg/apperror"
	"area1337-backend/pkg/email"
	"area1337-backend/pkg/logger"
	"area1337-backend/pkg/security"
	"area1337-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var errMissingAPIKey = errors.New("brevo api key is not configured")

// ContactMailConfig holds the fixed identities of contact emails
type ContactMailConfig struct {
	Sender    email.Address
	Recipient email.Address
}

type contactUsecase struct {
	sender   email.Sender
	secrets  config.SecretSource
	validate *validator.Validate
	mail     ContactMailConfig
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender email.Sender, secrets config.SecretSource, validate *validator.Validate, mail ContactMailConfig) domain.ContactUsecase {
	return &contactUsecase{
		sender:   sender,
		secrets:  secrets,
		validate: validate,
		mail:     mail,
	}
}

// SendContactMessage validates the contact request and sends the email.
// Every failure is an *apperror.AppError carrying the client-facing message.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return apperror.BadRequest(domain.MsgInvalidBody)
	}

	// Required fields are checked before the email format
	if err := uc.validate.Struct(req); err != nil {
		if !validation.HasFailedTag(err, validation.TagNotBlank) && validation.HasFailedTag(err, validation.TagLooseEmail) {
			return apperror.BadRequest(domain.MsgInvalidEmail)
		}
		return apperror.BadRequest(domain.MsgRequiredFields)
	}

	apiKey := uc.secrets.BrevoAPIKey(ctx)
	if apiKey == "" {
		logger.Log.Error("BREVO_API_KEY is not configured.")
		return apperror.New(http.StatusInternalServerError, domain.MsgServerConfig, errMissingAPIKey)
	}

	msg, err := uc.buildMessage(req)
	if err != nil {
		logger.Log.Error("Failed to build contact email", "error", err)
		return apperror.New(http.StatusInternalServerError, domain.MsgSendFailed, err)
	}

	if err := uc.sender.Send(ctx, apiKey, msg); err != nil {
		var apiErr *email.APIError
		if errors.As(err, &apiErr) {
			logger.Log.Error("Brevo API error", "status", apiErr.StatusCode, "body", apiErr.Body)
			return apperror.BadGateway(domain.MsgSendFailed, err)
		}
		logger.Log.Error("Brevo request failed", "error", err)
		return apperror.New(http.StatusInternalServerError, domain.MsgSendFailed, err)
	}

	security.DefaultLogger().LogContactRelayed(ctx, strings.TrimSpace(req.Email), req.Subject, requestIDFrom(ctx))
	return nil
}

// buildMessage assembles the outbound email from a validated request
func (uc *contactUsecase) buildMessage(req *domain.ContactRequest) (*email.Message, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	senderEmail := strings.TrimSpace(req.Email)
	fullName := firstName + " " + lastName

	// Lookup uses the raw key, exactly as submitted
	label := domain.SubjectLabel(req.Subject)

	html, err := email.RenderContactEmail(email.ContactEmailData{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        senderEmail,
		Company:      strings.TrimSpace(req.Company),
		SubjectLabel: label,
		Message:      strings.TrimSpace(req.Message),
	})
	if err != nil {
		return nil, err
	}

	return &email.Message{
		Sender:      uc.mail.Sender,
		To:          []email.Address{uc.mail.Recipient},
		ReplyTo:     &email.Address{Name: fullName, Email: senderEmail},
		Subject:     fmt.Sprintf("[Website] %s - %s", label, fullName),
		HTMLContent: html,
	}, nil
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
