package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/coursely/coursely/core/course"
)

var queryBinder = &echo.DefaultBinder{}

// bindQueryParams reads the catalog view parameters from the URL query only.
func bindQueryParams(ctx echo.Context) (course.QueryParams, error) {
	var params course.QueryParams
	if err := queryBinder.BindQueryParams(ctx, &params); err != nil {
		return course.QueryParams{}, err
	}
	params.Clean()
	return params, nil
}
