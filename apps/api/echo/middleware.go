package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core/profile"
)

// setupRequiredMiddleware rejects every request until the operator profile exists.
func setupRequiredMiddleware(svc *profile.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ok, err := svc.IsConfigured(ctx.Request().Context())
			if err != nil {
				return errors.Wrap(err, "checking setup")
			}
			if !ok {
				return errSetupRequired
			}
			return next(ctx)
		}
	}
}
