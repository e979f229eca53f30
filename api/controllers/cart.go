package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/macroplate/macroplate-backend/api/middleware"
	"github.com/macroplate/macroplate-backend/api/responses"
	"github.com/macroplate/macroplate-backend/api/validators"
	cartsvc "github.com/macroplate/macroplate-backend/internal/cart"
	"github.com/macroplate/macroplate-backend/internal/checkout"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
	"github.com/macroplate/macroplate-backend/pkg/logger"
)

// cartQuoter resolves a cart against the live catalog for display.
type cartQuoter interface {
	Quote(ctx context.Context, token string) (*checkout.MaterializedCart, error)
}

// CartGet returns the cart resolved against current catalog prices.
func CartGet(quoter cartQuoter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if quoter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		quote, err := quoter.Quote(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type setCartItemRequest struct {
	MealID   uuid.UUID `json:"meal_id" validate:"required"`
	Quantity int       `json:"quantity"`
}

// CartSetItem sets the quantity for one meal. A quantity below one removes
// the line.
func CartSetItem(svc cartsvc.Service, quoter cartQuoter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || quoter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var body setCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		if _, err := svc.SetItem(r.Context(), token, body.MealID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := quoter.Quote(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CartRemoveItem drops one meal from the cart.
func CartRemoveItem(svc cartsvc.Service, quoter cartQuoter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || quoter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		mealID, err := parseMealID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		if _, err := svc.RemoveItem(r.Context(), token, mealID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := quoter.Quote(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
