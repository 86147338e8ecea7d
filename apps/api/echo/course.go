package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/enrollment"
)

const (
	actionContinue = "Continue Learning"
	actionEnroll   = "Enroll Now"
)

type courseApi struct {
	svc         *course.Service
	enrollments *enrollment.Service
	validate    *validator.Validate
}

func registerCourseAPI(
	g *echo.Group,
	svc *course.Service,
	enrollments *enrollment.Service,
	validate *validator.Validate,
) {
	api := courseApi{
		svc:         svc,
		enrollments: enrollments,
		validate:    validate,
	}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.GET("/filters", api.filters)

	dg := cg.Group("/:slug", courseMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.GET("/learn", api.learn)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	params, err := bindQueryParams(ctx)
	if err != nil {
		return errors.Wrap(err, "binding to QueryParams")
	}
	if err = api.validate.Struct(&params); err != nil {
		return err
	}

	res, err := api.svc.Query(params)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, CourseListResponse{
		Results:    newCourseCards(res.Courses, api.enrollments),
		Count:      res.Total,
		TotalPages: res.TotalPages,
		Page:       res.Page,
		PageSize:   res.PageSize,
		State:      res.State(),
	})
}

func (api *courseApi) filters(ctx echo.Context) error {
	cats, err := api.svc.Categories()
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	return ctx.JSON(http.StatusOK, FiltersResponse{
		Categories:  cats,
		Levels:      api.svc.Levels(),
		SortOptions: course.SortOptions,
	})
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	related, err := api.svc.Related(crs)
	if err != nil {
		return errors.Wrap(err, "querying related courses")
	}

	card := newCourseCard(crs, api.enrollments)
	return ctx.JSON(http.StatusOK, CourseDetail{
		CourseCard: card,
		Curriculum: outline(crs.Curriculum, card.Enrolled),
		Related:    newCourseCards(related, api.enrollments),
	})
}

func (api *courseApi) learn(ctx echo.Context) error {
	crs, err := getContextCourse(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	if !api.enrollments.IsEnrolled(crs.Slug) {
		return errHttpNotEnrolled
	}
	curriculum := crs.Curriculum
	if curriculum == nil {
		curriculum = []course.Module{}
	}
	return ctx.JSON(http.StatusOK, LearnResponse{
		Course:     newCourseCard(crs, api.enrollments),
		Curriculum: curriculum,
	})
}

type (
	// CourseCard is a course as listed in the catalog.
	CourseCard struct {
		course.Course
		Discount int    `json:"discount"`
		Enrolled bool   `json:"enrolled"`
		Action   string `json:"action"`
	}

	CourseDetail struct {
		CourseCard
		Curriculum []course.Module `json:"curriculum"`
		Related    []CourseCard    `json:"related"`
	}

	CourseListResponse struct {
		Results    []CourseCard `json:"results"`
		Count      int          `json:"count"`
		TotalPages int          `json:"total_pages"`
		Page       int          `json:"page"`
		PageSize   int          `json:"page_size"`
		State      course.State `json:"state"`
	}

	FiltersResponse struct {
		Categories  []string            `json:"categories"`
		Levels      []string            `json:"levels"`
		SortOptions []course.SortOption `json:"sort_options"`
	}

	LearnResponse struct {
		Course     CourseCard      `json:"course"`
		Curriculum []course.Module `json:"curriculum"`
	}
)

func newCourseCard(c course.Course, enrollments *enrollment.Service) CourseCard {
	card := CourseCard{Course: c, Discount: c.Discount(), Action: actionEnroll}
	if enrollments.IsEnrolled(c.Slug) {
		card.Enrolled = true
		card.Action = actionContinue
	}
	return card
}

func newCourseCards(courses []course.Course, enrollments *enrollment.Service) []CourseCard {
	cards := make([]CourseCard, 0, len(courses))
	for _, c := range courses {
		cards = append(cards, newCourseCard(c, enrollments))
	}
	return cards
}

// outline hides lesson contents from non-enrolled users, free previews excepted.
func outline(modules []course.Module, enrolled bool) []course.Module {
	out := make([]course.Module, 0, len(modules))
	for _, m := range modules {
		lessons := make([]course.Lesson, len(m.Lessons))
		copy(lessons, m.Lessons)
		if !enrolled {
			for i := range lessons {
				if !lessons[i].FreePreview {
					lessons[i].Content = ""
				}
			}
		}
		m.Lessons = lessons
		out = append(out, m)
	}
	return out
}
