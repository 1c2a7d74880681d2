// Package web provides the HTTP API for listing composers and previewing alerts.
package web

import (
	"github.com/dukex/flowalert/pkg/composer"
	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/registry"
	"github.com/dukex/flowalert/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	alerts    *services.Alerts
	validator *validator.Validate
}

func NewAPIHandlers(alerts *services.Alerts, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		alerts:    alerts,
		validator: validator,
	}
}

func (h *APIHandlers) ListComposers(c fiber.Ctx) error {
	return c.JSON(ComposersResponse{
		Composers: h.alerts.Composers(),
		Default:   registry.DefaultName,
	})
}

// PreviewAlert composes the alert of the kind named in the path without
// delivering it. The optional "composer" query parameter overrides the
// composer configured on the flow, and "format" selects html or text bodies.
func (h *APIHandlers) PreviewAlert(c fiber.Ctx) error {
	kind, err := composer.ParseKind(c.Params("kind"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	format := c.Query("format")
	if format != "" && format != "html" && format != "text" {
		return badRequest(c, "format must be html or text")
	}

	req, err := h.parseComposeRequest(c, kind)
	if err != nil {
		return badRequest(c, err.Error())
	}

	req.Composer = c.Query("composer")

	result, err := h.alerts.Compose(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}

	response := PreviewResponse{
		Kind:     string(kind),
		Composer: result.Composer,
		Composed: result.Composed,
		To:       result.Message.To(),
	}

	if result.Composed {
		response.MimeType = result.Message.MimeType()
		response.Subject = result.Message.Subject()
		response.Body = renderBody(result.Message, format)
	}

	return c.JSON(response)
}

// parseComposeRequest binds and validates the body matching kind.
func (h *APIHandlers) parseComposeRequest(c fiber.Ctx, kind composer.Kind) (*services.ComposeRequest, error) {
	req := &services.ComposeRequest{Kind: kind}

	switch kind {
	case composer.KindFailure:
		var body FailureAlertRequest
		if err := h.bind(c, &body); err != nil {
			return nil, err
		}

		req.Flow = body.Flow
		req.Past = body.PastExecutions
		req.Reasons = body.Reasons
	case composer.KindExecutorUpdateFailure:
		var body ExecutorUpdateFailureRequest
		if err := h.bind(c, &body); err != nil {
			return nil, err
		}

		req.Flows = body.Flows
		req.Executor = body.Executor
		req.UpdateErr = body.UpdateErr()
	default:
		var body FlowAlertRequest
		if err := h.bind(c, &body); err != nil {
			return nil, err
		}

		req.Flow = body.Flow
	}

	return req, nil
}

func (h *APIHandlers) bind(c fiber.Ctx, body any) error {
	if err := c.Bind().JSON(body); err != nil {
		return services.NewValidationError("PreviewAlert", "Invalid JSON body: "+err.Error(), err)
	}

	if err := h.validator.Struct(body); err != nil {
		return services.NewValidationError("PreviewAlert", err.Error(), err)
	}

	return nil
}

func renderBody(msg *mail.Message, format string) string {
	switch format {
	case "html":
		return mail.RenderHTML(msg)
	case "text":
		return mail.RenderText(msg)
	default:
		return mail.Render(msg)
	}
}
