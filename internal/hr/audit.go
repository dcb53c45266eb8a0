package hr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/middleware"
	"github.com/simp-lee/hrdesk/internal/resource"
)

// auditActor is recorded as the actor of console and API mutations; the
// console has no sign-in.
const auditActor = "console"

type auditCreator interface {
	Create(ctx context.Context, in domain.AuditLogCreate) (*domain.AuditLog, error)
}

// AuditRecorder writes one audit log entry per successful mutation of any
// other resource.
type AuditRecorder struct {
	log auditCreator
}

func NewAuditRecorder(log auditCreator) *AuditRecorder {
	return &AuditRecorder{log: log}
}

func (a *AuditRecorder) Observe(ctx context.Context, e resource.Event) {
	if e.Resource == auditLogName {
		return
	}
	entry := domain.AuditLogCreate{
		EventID:    uuid.NewString(),
		Actor:      auditActor,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ID,
		RequestID:  middleware.RequestIDFromContext(ctx),
		Details:    fmt.Sprintf("%s %s #%d via %s", e.Action, e.Resource, e.ID, e.Source),
	}
	// The mutation already succeeded; a lost audit entry is logged, not returned.
	if _, err := a.log.Create(context.WithoutCancel(ctx), entry); err != nil {
		slog.ErrorContext(ctx, "audit: record failed",
			"resource", e.Resource, "id", e.ID, "action", e.Action, "error", err)
	}
}
