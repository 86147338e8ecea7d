package inmemdb

import (
	"fmt"
	"strings"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if len(repo.db.bySlug) != len(repo.db.rows) {
		return nil, core.NewShutdownError(fmt.Sprintf(
			"catalog index corrupted: %d slugs for %d courses", len(repo.db.bySlug), len(repo.db.rows)))
	}
	courses := make([]course.Course, len(repo.db.rows))
	copy(courses, repo.db.rows)
	return courses, nil
}

func (repo *courseRepository) GetCourseBySlug(slug string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if idx, ok := repo.db.bySlug[strings.ToLower(slug)]; ok {
		if idx < 0 || idx >= len(repo.db.rows) || !strings.EqualFold(repo.db.rows[idx].Slug, slug) {
			return course.Course{}, core.NewShutdownError(fmt.Sprintf("catalog index corrupted for slug %q", slug))
		}
		return repo.db.rows[idx], nil
	}
	return course.Course{}, course.ErrNotFound
}
