package enrollment

import (
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core/course"
)

// CourseFinder is the subset of the catalog the enrollment service needs.
type CourseFinder interface {
	All() ([]course.Course, error)
	GetBySlug(slug string) (course.Course, error)
}

// Service guards the Store against slugs that are not in the catalog.
type Service struct {
	store   *Store
	courses CourseFinder
}

func NewService(store *Store, courses CourseFinder) *Service {
	return &Service{store: store, courses: courses}
}

func (svc *Service) Store() *Store { return svc.store }

// Enroll enrolls the current user in the course. Enrolling twice is not an error.
func (svc *Service) Enroll(slug string) (course.Course, error) {
	crs, err := svc.courses.GetBySlug(slug)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	svc.store.Enroll(crs.Slug)
	return crs, nil
}

// Unenroll removes the course from the current user's courses. Unenrolling twice is not an error.
func (svc *Service) Unenroll(slug string) error {
	crs, err := svc.courses.GetBySlug(slug)
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	svc.store.Unenroll(crs.Slug)
	return nil
}

func (svc *Service) IsEnrolled(slug string) bool {
	return svc.store.IsEnrolled(slug)
}

func (svc *Service) Slugs() []string {
	return svc.store.List()
}

// Courses returns the enrolled courses in catalog order.
// Seeded slugs missing from the catalog are skipped.
func (svc *Service) Courses() ([]course.Course, error) {
	all, err := svc.courses.All()
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	enrolled := make([]course.Course, 0, svc.store.Len())
	for _, c := range all {
		if svc.store.IsEnrolled(c.Slug) {
			enrolled = append(enrolled, c)
		}
	}
	return enrolled, nil
}
