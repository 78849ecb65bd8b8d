package http

import (
	"net/http"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/usecase/emailtemplate"
	"quote-workflow/internal/usecase/guardrail"
	"quote-workflow/internal/usecase/workflow"
	"quote-workflow/pkg/apperr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type WorkflowHandler struct {
	workflow  *workflow.Usecase
	limits    *guardrail.Usecase
	templates *emailtemplate.Usecase
	log       zerolog.Logger
}

func NewWorkflowHandler(wf *workflow.Usecase, limits *guardrail.Usecase, templates *emailtemplate.Usecase, log zerolog.Logger) *WorkflowHandler {
	return &WorkflowHandler{workflow: wf, limits: limits, templates: templates, log: log}
}

// Register mounts the workflow operations on g, which must already carry the
// auth middleware.
func (h *WorkflowHandler) Register(g *echo.Group) {
	g.POST("/submit", h.Submit)
	g.POST("/claim", h.Claim)
	g.POST("/admin-decision", h.AdminDecision)
	g.POST("/finance-decision", h.FinanceDecision)
	g.POST("/reassign", h.Reassign)
	g.GET("/finance-margin-limit", h.GetFinanceLimit)
	g.PUT("/finance-margin-limit", h.SetFinanceLimit)
	g.GET("/email-template", h.GetEmailTemplate)
	g.PUT("/email-template", h.PutEmailTemplate)
	g.GET("/quote-events", h.QuoteEvents)
}

type submitReq struct {
	QuoteID string `json:"quoteId" validate:"required,id"`
}

type claimReq struct {
	QuoteID string `json:"quoteId" validate:"required,id"`
	Lane    string `json:"lane" validate:"required,oneof=admin finance"`
}

type decisionReq struct {
	QuoteID             string   `json:"quoteId" validate:"required,id"`
	Decision            string   `json:"decision" validate:"required"`
	Notes               *string  `json:"notes"`
	MarginPercent       *float64 `json:"marginPercent"`
	FinanceLimitPercent *float64 `json:"financeLimitPercent" validate:"omitempty,gt=0"`
}

func (r decisionReq) input() workflow.DecisionInput {
	return workflow.DecisionInput{
		QuoteID:             r.QuoteID,
		Decision:            r.Decision,
		Notes:               r.Notes,
		MarginPercent:       r.MarginPercent,
		FinanceLimitPercent: r.FinanceLimitPercent,
	}
}

type reassignReq struct {
	QuoteID      string  `json:"quoteId" validate:"required,id"`
	Lane         string  `json:"lane" validate:"required,oneof=owner admin finance"`
	TargetUserID *string `json:"targetUserId"`
}

type financeLimitReq struct {
	Percent  *float64 `json:"percent" validate:"required"`
	Currency string   `json:"currency" validate:"currency"`
}

type emailTemplateReq struct {
	TemplateType    string `json:"templateType" validate:"required"`
	SubjectTemplate string `json:"subjectTemplate" validate:"notblank"`
	BodyTemplate    string `json:"bodyTemplate" validate:"notblank"`
	Enabled         *bool  `json:"enabled"`
}

// quoteOp runs one quote transition: decode, resolve the actor, call op.
func quoteOp[T any](h *WorkflowHandler, c echo.Context, op func(actor profile.RequestContext, req T) (any, error)) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var req T
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.log, err)
	}
	q, err := op(actor, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "quote": q})
}

func (h *WorkflowHandler) Submit(c echo.Context) error {
	return quoteOp(h, c, func(actor profile.RequestContext, req submitReq) (any, error) {
		return h.workflow.Submit(c.Request().Context(), actor, workflow.SubmitInput{QuoteID: req.QuoteID})
	})
}

func (h *WorkflowHandler) Claim(c echo.Context) error {
	return quoteOp(h, c, func(actor profile.RequestContext, req claimReq) (any, error) {
		return h.workflow.Claim(c.Request().Context(), actor, workflow.ClaimInput{QuoteID: req.QuoteID, Lane: req.Lane})
	})
}

func (h *WorkflowHandler) AdminDecision(c echo.Context) error {
	return quoteOp(h, c, func(actor profile.RequestContext, req decisionReq) (any, error) {
		return h.workflow.AdminDecision(c.Request().Context(), actor, req.input())
	})
}

func (h *WorkflowHandler) FinanceDecision(c echo.Context) error {
	return quoteOp(h, c, func(actor profile.RequestContext, req decisionReq) (any, error) {
		return h.workflow.FinanceDecision(c.Request().Context(), actor, req.input())
	})
}

func (h *WorkflowHandler) Reassign(c echo.Context) error {
	return quoteOp(h, c, func(actor profile.RequestContext, req reassignReq) (any, error) {
		return h.workflow.Reassign(c.Request().Context(), actor, workflow.ReassignInput{
			QuoteID: req.QuoteID, Lane: req.Lane, TargetUserID: req.TargetUserID,
		})
	})
}

func (h *WorkflowHandler) GetFinanceLimit(c echo.Context) error {
	if _, err := actorOf(c); err != nil {
		return writeError(c, h.log, err)
	}
	v, err := h.limits.Get(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "value": v})
}

func (h *WorkflowHandler) SetFinanceLimit(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := requireRole(actor, profile.RoleAdmin, profile.RoleFinance, profile.RoleMaster); err != nil {
		return writeError(c, h.log, err)
	}
	var req financeLimitReq
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.log, err)
	}
	v, err := h.limits.Set(c.Request().Context(), *req.Percent, req.Currency, actor.UserID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "value": v})
}

func (h *WorkflowHandler) GetEmailTemplate(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := requireRole(actor, profile.RoleAdmin, profile.RoleFinance, profile.RoleMaster); err != nil {
		return writeError(c, h.log, err)
	}
	t, err := h.templates.Get(c.Request().Context(), c.QueryParam("type"), actor.UserID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "template": t})
}

func (h *WorkflowHandler) PutEmailTemplate(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := requireRole(actor, profile.RoleAdmin, profile.RoleFinance, profile.RoleMaster); err != nil {
		return writeError(c, h.log, err)
	}
	var req emailTemplateReq
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.log, err)
	}
	t, err := h.templates.Upsert(c.Request().Context(), emailtemplate.UpsertInput{
		TemplateType:    req.TemplateType,
		SubjectTemplate: req.SubjectTemplate,
		BodyTemplate:    req.BodyTemplate,
		Enabled:         req.Enabled,
	}, actor.UserID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "template": t})
}

func (h *WorkflowHandler) QuoteEvents(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	quoteID := c.QueryParam("quoteId")
	if quoteID == "" {
		return writeError(c, h.log, apperr.BadInput("quoteId is required"))
	}
	events, err := h.workflow.Events(c.Request().Context(), actor, quoteID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "events": events})
}
