package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core/contact"
)

type contactApi struct {
	svc      *contact.Service
	validate *validator.Validate
}

func registerContactAPI(g *echo.Group, svc *contact.Service, validate *validator.Validate) {
	api := contactApi{svc: svc, validate: validate}
	g.POST("/contact", api.submit)
}

// Handlers

func (api *contactApi) submit(ctx echo.Context) error {
	var data contact.Message
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Message")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Submit(ctx.Request().Context(), data); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errHttpNotDelivered).SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Thank you! Your message has been sent."})
}

type SuccessResponse struct {
	Success string `json:"success"`
}
