package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrInvalidCredentials:       http.StatusUnauthorized,
	service.ErrUnauthenticated:          http.StatusUnauthorized,
	service.ErrValidationNoTitle:        http.StatusBadRequest,
	service.ErrValidationBadPriority:    http.StatusBadRequest,
	service.ErrValidationBadStatus:      http.StatusBadRequest,
	service.ErrValidationEmptyNote:      http.StatusBadRequest,
	service.ErrValidationNothingToApply: http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrTaskNotFound:       http.StatusNotFound,
	store.ErrNoteNotSaved:       http.StatusInternalServerError,
	store.ErrEmptyUpdate:        http.StatusBadRequest,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
