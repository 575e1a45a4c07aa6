package handlers

import (
	"net/http"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/utils"
)

// writeServiceError writes a service error, preserving the status code when
// the error is an AppError and falling back to a generic 500 otherwise.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}
