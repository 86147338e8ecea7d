package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core/course"
)

const courseCtxKey = "course"

// courseMiddleware loads the course named by the `:slug` path param into the context.
func courseMiddleware(svc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			crs, err := svc.GetBySlug(ctx.Param("slug"))
			if err != nil {
				if errors.Cause(err) == course.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding course by slug")
			}
			ctx.Set(courseCtxKey, crs)
			return next(ctx)
		}
	}
}

func getContextCourse(ctx echo.Context) (course.Course, error) {
	crs, ok := ctx.Get(courseCtxKey).(course.Course)
	if !ok {
		return course.Course{}, errors.New("course object not found in echo.Context")
	}
	return crs, nil
}
