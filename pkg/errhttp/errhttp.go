// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stockpilot/pkg/httpx"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ledgerdomain.ErrItemNotFound),
		errors.Is(err, ledgerdomain.ErrEventNotFound),
		errors.Is(err, ledgerdomain.ErrSaleNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, ledgerdomain.ErrInvalidQuantity),
		errors.Is(err, ledgerdomain.ErrInvalidUnitPrice),
		errors.Is(err, ledgerdomain.ErrInvalidItemName),
		errors.Is(err, ledgerdomain.ErrInvalidEventName):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, ledgerdomain.ErrInsufficientCentralStock),
		errors.Is(err, ledgerdomain.ErrInsufficientEventStock),
		errors.Is(err, ledgerdomain.ErrTransactionConflict):
		return http.StatusConflict // 409
	case errors.Is(err, ledgerdomain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
