package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/insurly/autoquote/internal/core"
	"github.com/insurly/autoquote/pkg/problem"
)

func writeError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, core.ErrValidation):
		log.WarnContext(ctx, "validation failed", "err", err)
		problem.Write(w, http.StatusBadRequest, "Validation Error", detail)

	case errors.Is(err, core.ErrNotFound):
		log.WarnContext(ctx, "resource not found", "err", err)
		problem.Write(w, http.StatusNotFound, "Not Found", detail)

	case errors.Is(err, core.ErrConflict):
		log.WarnContext(ctx, "resource conflict", "err", err)
		problem.Write(w, http.StatusConflict, "Conflict", detail)

	case errors.Is(err, core.ErrRiskAssessment):
		log.ErrorContext(ctx, "risk assessment failed", "err", err)
		problem.Write(w, http.StatusBadGateway, "Risk Assessment Unavailable",
			"The external risk assessment could not be completed.")

	case errors.Is(err, core.ErrPersistence):
		log.ErrorContext(ctx, "persistence failure", "err", err)
		problem.Write(w, http.StatusInternalServerError, "Storage Error",
			"The quote could not be stored. Please retry.")

	case errors.Is(err, context.DeadlineExceeded):
		log.ErrorContext(ctx, "operation timeout", "err", err)
		problem.Write(w, http.StatusGatewayTimeout, "Timeout", "Operation took too long.")

	default:
		log.ErrorContext(ctx, "internal server error", "err", err)
		problem.Write(w, http.StatusInternalServerError, "Internal Server Error", detail)
	}
}
