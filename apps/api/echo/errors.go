package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/student"
	"github.com/trezcool/missingwork/services/media"
)

var (
	errSetupRequired  = echo.NewHTTPError(http.StatusForbidden, profile.ErrNotConfigured.Error())
	errMissingFile    = echo.NewHTTPError(http.StatusBadRequest, "a file is required")
	errRosterTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "roster must be 5MB or smaller")

	notFoundErrs = []error{grade.ErrNotFound, student.ErrNotFound, assignment.ErrNotFound}
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *core.ValidationError:
			code = http.StatusBadRequest
			if len(origErr.Fields) > 0 {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = echo.Map{"error": origErr.Error(), "fields": fldErrs}
			} else {
				message = origErr.Error()
			}
		case *core.StorageError:
			// the change is applied in memory but will be lost on restart
			code = http.StatusInternalServerError
			message = "the change could not be saved (" + origErr.Collection + "), it will be lost on restart"
			logger.Error(origErr.Error(), err)
		default:
			code, message = sentinelStatus(origErr)
			if code == 0 { // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg))
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func sentinelStatus(err error) (int, string) {
	for _, nf := range notFoundErrs {
		if errors.Is(err, nf) {
			return http.StatusNotFound, err.Error()
		}
	}
	switch {
	case errors.Is(err, profile.ErrNotConfigured):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, profile.ErrAlreadyConfigured):
		return http.StatusConflict, err.Error()
	case errors.Is(err, media.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, media.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType, err.Error()
	}
	return 0, ""
}
