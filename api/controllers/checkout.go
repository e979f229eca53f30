package controllers

import (
	"net/http"

	"github.com/macroplate/macroplate-backend/api/middleware"
	"github.com/macroplate/macroplate-backend/api/responses"
	"github.com/macroplate/macroplate-backend/api/validators"
	"github.com/macroplate/macroplate-backend/internal/checkout"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
	"github.com/macroplate/macroplate-backend/pkg/logger"
)

// CheckoutSubmit converts the cart into a committed order.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkout.SubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.DeliveryAddress = validators.SanitizeString(body.DeliveryAddress, 500)

		token := middleware.CartTokenFromContext(r.Context())
		result, err := svc.Submit(r.Context(), token, userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
