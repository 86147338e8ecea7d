package course

import (
	"errors"

	"github.com/coursely/coursely/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

// maxRelated is the number of related courses shown on a detail page.
const maxRelated = 3

type (
	Repository interface {
		// QueryAllCourses returns the whole catalog, in catalog order.
		QueryAllCourses() ([]Course, error)
		// GetCourseBySlug does a case-insensitive lookup.
		GetCourseBySlug(slug string) (Course, error)
	}

	Service struct {
		repo     Repository
		pageSize int
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	pageSize := DefaultPageSize
	if conf != nil && conf.Catalog.PageSize > 0 {
		pageSize = conf.Catalog.PageSize
	}
	return &Service{repo: repo, pageSize: pageSize}
}

func (svc *Service) All() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetBySlug(slug string) (Course, error) {
	slug = core.CleanSlug(slug)
	if slug == "" {
		return Course{}, ErrNotFound
	}
	return svc.repo.GetCourseBySlug(slug)
}

// Query runs the catalog query on the current catalog. params.PageSize is forced to the configured size.
func (svc *Service) Query(params QueryParams) (Result, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return Result{}, err
	}
	params.PageSize = svc.pageSize
	return Query(courses, params), nil
}

// Categories returns "All" followed by every distinct category, in catalog order.
func (svc *Service) Categories() ([]string, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(courses))
	cats := []string{All}
	for _, c := range courses {
		if c.Category == "" || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		cats = append(cats, c.Category)
	}
	return cats, nil
}

// Levels returns "All" followed by every course level.
func (svc *Service) Levels() []string {
	lvls := make([]string, 0, len(Levels)+1)
	lvls = append(lvls, All)
	for _, lvl := range Levels {
		lvls = append(lvls, string(lvl))
	}
	return lvls
}

// Related returns up to 3 other courses of the same category.
func (svc *Service) Related(c Course) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	related := make([]Course, 0, maxRelated)
	for _, rc := range courses {
		if len(related) == maxRelated {
			break
		}
		if rc.Category == c.Category && rc.Slug != c.Slug {
			related = append(related, rc)
		}
	}
	return related, nil
}
