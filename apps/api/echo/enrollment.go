package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core/enrollment"
)

type enrollmentApi struct {
	svc *enrollment.Service
}

func registerEnrollmentAPI(g *echo.Group, svc *enrollment.Service) {
	api := enrollmentApi{svc: svc}

	eg := g.Group("/enrollments")
	eg.GET("", api.list)
	eg.PUT("/:slug", api.enroll)
	eg.DELETE("/:slug", api.unenroll)
}

// Handlers

func (api *enrollmentApi) list(ctx echo.Context) error {
	courses, err := api.svc.Courses()
	if err != nil {
		return errors.Wrap(err, "querying enrolled courses")
	}
	return ctx.JSON(http.StatusOK, EnrollmentListResponse{
		Slugs:   api.svc.Slugs(),
		Courses: newCourseCards(courses, api.svc),
	})
}

func (api *enrollmentApi) enroll(ctx echo.Context) error {
	crs, err := api.svc.Enroll(ctx.Param("slug"))
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusOK, EnrollmentResponse{Slug: crs.Slug, Enrolled: true})
}

func (api *enrollmentApi) unenroll(ctx echo.Context) error {
	if err := api.svc.Unenroll(ctx.Param("slug")); err != nil {
		return errors.Wrap(err, "unenrolling")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	EnrollmentListResponse struct {
		Slugs   []string     `json:"slugs"`
		Courses []CourseCard `json:"courses"`
	}

	EnrollmentResponse struct {
		Slug     string `json:"slug"`
		Enrolled bool   `json:"enrolled"`
	}
)
