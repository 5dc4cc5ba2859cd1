package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/weaponlions/ecommerce-server/api/responses"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
)

// Recoverer converts handler panics into 500 envelopes so one bad request
// cannot take the process down. http.ErrAbortHandler passes through untouched.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				writePanic(logg, w, r, rec)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writePanic(logg *logger.Logger, w http.ResponseWriter, r *http.Request, rec any) {
	err := fmt.Errorf("panic: %v", rec)
	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"panic": rec,
			"stack": string(debug.Stack()),
		})
		logg.Error(ctx, "panic.recovered", err)
	}
	responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "internal error"))
}
