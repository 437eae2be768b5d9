// Package responses writes the backend wire envelope used by the dev
// servers: {status, message, code, result}.
package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/logger"
)

// WriteSuccess writes a success envelope with the given result payload.
func WriteSuccess(w http.ResponseWriter, message string, result any) {
	env := dispatch.Envelope{Status: dispatch.StatusSuccess, Message: message}
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			WriteError(context.Background(), nil, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding response result"))
			return
		}
		env.Result = raw
	}
	writeJSON(w, http.StatusOK, env)
}

// WriteError maps a typed error onto an error envelope with the matching
// HTTP status.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	if m := typed.Message(); m != "" {
		msg = m
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "error_code", string(typed.Code()))
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, dispatch.Envelope{
		Status:  dispatch.StatusError,
		Message: msg,
		Code:    meta.HTTPStatus,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("writing response: %v", err)
	}
}
