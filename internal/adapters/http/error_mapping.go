package httpadapter

import (
	"net/http"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrExtraction):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case domain.IsKind(err, domain.ErrModelTimeout):
		return http.StatusGatewayTimeout
	case domain.IsKind(err, domain.ErrModelTransport):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
