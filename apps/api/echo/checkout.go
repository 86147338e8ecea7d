package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core/payment"
)

type checkoutApi struct {
	svc      *payment.Service
	validate *validator.Validate
}

func registerCheckoutAPI(g *echo.Group, svc *payment.Service, validate *validator.Validate) {
	api := checkoutApi{svc: svc, validate: validate}

	cg := g.Group("/checkout")
	cg.GET("/banks", api.banks)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.POST("/:id/confirm", api.confirm)
}

// Handlers

func (api *checkoutApi) banks(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, payment.Banks)
}

func (api *checkoutApi) create(ctx echo.Context) error {
	var data payment.NewCheckout
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCheckout")
	}
	data.Clean()
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	co, err := api.svc.Start(data)
	if err != nil {
		return errors.Wrap(err, "starting checkout")
	}
	return ctx.JSON(http.StatusCreated, co)
}

func (api *checkoutApi) retrieve(ctx echo.Context) error {
	co, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding checkout by ID")
	}
	return ctx.JSON(http.StatusOK, co)
}

func (api *checkoutApi) confirm(ctx echo.Context) error {
	co, err := api.svc.Confirm(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "confirming checkout")
	}
	return ctx.JSON(http.StatusOK, co)
}
