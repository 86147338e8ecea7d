package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/payment"
)

var (
	errHttpNotEnrolled  = echo.NewHTTPError(http.StatusForbidden, "you are not enrolled in this course")
	errHttpNotFound     = echo.NewHTTPError(http.StatusNotFound, "not found")
	errHttpNotDelivered = "your message could not be delivered, please try again later"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			internal := origErr.Internal
			if internal != nil {
				if herr, ok := internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
			if code >= http.StatusInternalServerError && internal != nil {
				logger.Error(http.StatusText(code), internal)
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateValidationErrors(origErr, translator).(*core.ValidationError).FieldMap()
		case *core.ValidationError:
			code = http.StatusBadRequest
			if flds := origErr.FieldMap(); flds != nil {
				message = flds
			} else {
				message = origErr.Error()
			}
		default:
			switch origErr {
			case course.ErrNotFound, payment.ErrCheckoutNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			case payment.ErrVerificationTimeout, payment.ErrPaymentDeclined:
				code = http.StatusPaymentRequired
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
					"method": ctx.Request().Method,
					"path":   ctx.Path(),
				})

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
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
