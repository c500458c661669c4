package checkout

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	checkoutdto "github.com/marketplace-zw/storefront-backend/api/controllers/checkout/dto"
	"github.com/marketplace-zw/storefront-backend/api/responses"
	"github.com/marketplace-zw/storefront-backend/api/validators"
	checkoutsvc "github.com/marketplace-zw/storefront-backend/internal/checkout"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/logger"
)

// CheckoutFetch returns the current session state.
func CheckoutFetch(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := referenceFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Get(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(session))
	}
}

// CheckoutAdvance validates the current step and moves the session forward.
func CheckoutAdvance(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := referenceFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutdto.AdvanceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Advance(r.Context(), reference, toAdvanceInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(session))
	}
}

// CheckoutBack moves the session one step backwards.
func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := referenceFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Back(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(session))
	}
}

// CheckoutSubmit places the order and returns payment instructions.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := referenceFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutdto.SubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, instructions, err := svc.Submit(r.Context(), reference, toSubmitInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutdto.SubmitResponse{
			Session:      newSessionView(session),
			Instructions: newInstructions(instructions),
		})
	}
}

// CheckoutConfirm settles a pending payment, completing the order when the
// provider confirms it.
func CheckoutConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := referenceFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.ConfirmPayment(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(session))
	}
}

// CheckoutCancel abandons a pending payment, keeping the cart.
func CheckoutCancel(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := referenceFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.CancelPayment(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(session))
	}
}

func referenceFromRequest(r *http.Request) (string, error) {
	reference := strings.TrimSpace(chi.URLParam(r, "ref"))
	if reference == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order reference is required")
	}
	return reference, nil
}
