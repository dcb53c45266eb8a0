package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/simp-lee/hrdesk/internal/domain"
)

const (
	msgUnavailable = "The HR service is unavailable right now. Please try again."
	msgCanceled    = "The request was canceled."
	msgInternal    = "Something went wrong. Please try again."
)

// ErrorMessage turns an error into text that is safe to show to a user.
// Business errors keep their own message; infrastructure details never leak.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return msgCanceled
	}

	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return msgInternal
	}
	switch appErr.Code {
	case domain.CodeNotFound, domain.CodeValidation, domain.CodeAlreadyExists:
		return sentence(appErr.Message)
	case domain.CodeTransport:
		return msgUnavailable
	default:
		return msgInternal
	}
}

func bulkMessage(r BulkResult) string {
	ids := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = fmt.Sprint(f.ID)
	}
	return fmt.Sprintf("Deleted %d of %d records. Could not delete: %s.",
		len(r.Done), len(r.Done)+len(r.Failed), strings.Join(ids, ", "))
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return msgInternal
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
