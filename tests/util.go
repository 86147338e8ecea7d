package testutil

import (
	"testing"

	"github.com/coursely/coursely/assets"
	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/storage/database/inmem"
)

// NewCourse returns a minimal catalog course. Zero values are kept as such.
func NewCourse(slug, title, category string, level course.Level, price, rating float64, students int, featured bool) course.Course {
	return course.Course{
		ID:          slug,
		Slug:        slug,
		Title:       title,
		Description: title + " description",
		Category:    category,
		Price:       price,
		Rating:      rating,
		Students:    students,
		Level:       level,
		Featured:    featured,
		Instructor:  course.Instructor{ID: "i-" + slug, Name: "Instructor " + title},
	}
}

// SampleCourses returns a small catalog with unique prices, ratings and student counts.
func SampleCourses() []course.Course {
	return []course.Course{
		NewCourse("go-basics", "Go Basics", "Programming", course.LevelBeginner, 19.99, 4.5, 1200, false),
		NewCourse("react-hooks", "React Hooks", "Web Development", course.LevelIntermediate, 49.99, 4.8, 5400, true),
		NewCourse("k8s-in-depth", "Kubernetes In Depth", "DevOps", course.LevelAdvanced, 99.99, 4.9, 800, true),
		NewCourse("css-grid", "CSS Grid", "Web Development", course.LevelBeginner, 9.99, 4.1, 3000, false),
		NewCourse("sql-tuning", "SQL Tuning", "Database Management", course.LevelAdvanced, 79.99, 4.6, 650, false),
		NewCourse("vue-starter", "Vue Starter", "Web Development", course.LevelBeginner, 29.99, 4.3, 2100, true),
		NewCourse("ml-intro", "Machine Learning Intro", "Data Science", course.LevelIntermediate, 89.99, 4.7, 9000, false),
		NewCourse("rust-systems", "Rust Systems", "Programming", course.LevelAdvanced, 69.99, 4.4, 430, false),
	}
}

// OpenDB opens an in-memory DB holding courses.
func OpenDB(t *testing.T, courses []course.Course) *inmemdb.DB {
	db, err := inmemdb.OpenWith(courses)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// OpenCatalogDB opens an in-memory DB holding the embedded catalog.
func OpenCatalogDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open(assets.FS, assets.CatalogFile, core.NewTestConfig())
	if err != nil {
		t.Fatalf("OpenCatalogDB() failed: %v", err)
	}
	return db
}

// Slugs returns the slugs of courses, in order.
func Slugs(courses []course.Course) []string {
	slugs := make([]string, len(courses))
	for i, c := range courses {
		slugs[i] = c.Slug
	}
	return slugs
}
