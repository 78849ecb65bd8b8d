package emailtemplate

import (
	"context"
	"errors"
	"strings"

	domain "quote-workflow/internal/domain/emailtemplate"
	"quote-workflow/internal/usecase/notification"
	"quote-workflow/pkg/apperr"

	"github.com/rs/zerolog"
)

const fallbackBody = `<p>Quote <strong>{{quoteId}}</strong> for {{customerName}} has an update.</p>` +
	`{{#if decision}}<p>Decision: {{decision}}</p>{{/if}}` +
	`{{#if notes}}<p>Notes: {{notes}}</p>{{/if}}` +
	`{{#if reviewerName}}<p>Reviewer: {{reviewerName}}</p>{{/if}}` +
	`{{#if quoteUrl}}<p><a href="{{quoteUrl}}">Open quote</a></p>{{/if}}`

var fallbackSubjects = map[string]string{
	domain.TypeQuoteSubmitted:     "Quote {{quoteId}} submitted for review",
	domain.TypeQuoteApproved:      "Quote {{quoteId}} reviewed: {{decision}}",
	domain.TypeQuoteRejected:      "Quote {{quoteId}} rejected",
	domain.TypeQuoteFinanceReview: "Quote {{quoteId}} needs finance review",
	domain.TypeQuoteNeedsRevision: "Quote {{quoteId}} needs revision",
}

type UpsertInput struct {
	TemplateType    string
	SubjectTemplate string
	BodyTemplate    string
	Enabled         *bool
}

type Usecase struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewUsecase(repo domain.Repository, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, log: log}
}

// Get returns the template for templateType, creating an enabled generic
// one when the type has no row yet.
func (u *Usecase) Get(ctx context.Context, templateType, actorID string) (*domain.EmailTemplate, error) {
	stored, err := resolve(templateType)
	if err != nil {
		return nil, err
	}

	t, err := u.repo.GetByType(ctx, stored)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	t = &domain.EmailTemplate{
		TemplateType:    stored,
		SubjectTemplate: fallbackSubjects[stored],
		BodyTemplate:    fallbackBody,
		Enabled:         true,
		CreatedBy:       optional(actorID),
		UpdatedBy:       optional(actorID),
	}
	t.Variables = notification.Variables(t.SubjectTemplate, t.BodyTemplate)
	if err := u.repo.Upsert(ctx, t); err != nil {
		return nil, apperr.Internal(err)
	}
	u.log.Info().Str("template_type", stored).Msg("emailtemplate: created fallback template")
	return t, nil
}

// Upsert replaces subject, body and enabled flag, recomputing the declared variables.
func (u *Usecase) Upsert(ctx context.Context, in UpsertInput, actorID string) (*domain.EmailTemplate, error) {
	stored, err := resolve(in.TemplateType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SubjectTemplate) == "" || strings.TrimSpace(in.BodyTemplate) == "" {
		return nil, apperr.BadInput("subjectTemplate and bodyTemplate are required")
	}
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	t := &domain.EmailTemplate{
		TemplateType:    stored,
		SubjectTemplate: in.SubjectTemplate,
		BodyTemplate:    in.BodyTemplate,
		Enabled:         enabled,
		Variables:       notification.Variables(in.SubjectTemplate, in.BodyTemplate),
		CreatedBy:       optional(actorID),
		UpdatedBy:       optional(actorID),
	}
	if err := u.repo.Upsert(ctx, t); err != nil {
		return nil, apperr.Internal(err)
	}
	return t, nil
}

func resolve(templateType string) (string, error) {
	templateType = strings.TrimSpace(templateType)
	if templateType == "" {
		return "", apperr.BadInput("template type is required")
	}
	stored, ok := domain.ResolveType(templateType)
	if !ok {
		return "", apperr.BadInput("Unsupported template type: " + templateType)
	}
	return stored, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
