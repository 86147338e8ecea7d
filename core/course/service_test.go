package course_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/storage/database/inmem"
	"github.com/coursely/coursely/tests"
)

func newService(t *testing.T, courses ...course.Course) *course.Service {
	db := testutil.OpenCatalogDB(t)
	if courses != nil {
		db = testutil.OpenDB(t, courses)
	}
	return course.NewService(inmemdb.NewCourseRepository(db), core.NewTestConfig())
}

func TestService_GetBySlug(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		slug     string
		wantSlug string
		wantErr  error
	}{
		{name: "exact", slug: "cybersecurity-fundamentals", wantSlug: "cybersecurity-fundamentals"},
		{name: "case-insensitive", slug: "  CyberSecurity-Fundamentals ", wantSlug: "cybersecurity-fundamentals"},
		{name: "blank", slug: "  ", wantErr: course.ErrNotFound},
		{name: "unknown", slug: "cooking-101", wantErr: course.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.GetBySlug(tt.slug)
			if err != tt.wantErr {
				t.Fatalf("GetBySlug() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantSlug, c.Slug)
		})
	}
}

func TestService_Query(t *testing.T) {
	svc := newService(t)

	res, err := svc.Query(course.QueryParams{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, course.DefaultPageSize, res.PageSize, "page size comes from the config")
	assert.Len(t, res.Courses, course.DefaultPageSize)
	assert.Equal(t, 12, res.CatalogSize)
}

func TestService_Categories(t *testing.T) {
	svc := newService(t)

	cats, err := svc.Categories()
	require.NoError(t, err)
	require.NotEmpty(t, cats)
	assert.Equal(t, course.All, cats[0])

	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
	assert.Equal(t, []string{
		course.All,
		"Web Development",
		"Data Science",
		"Design",
		"Backend Development",
		"Web Design",
		"Programming",
		"Cybersecurity",
		"Mobile Development",
		"DevOps",
		"Artificial Intelligence",
		"Database Management",
	}, cats)
}

func TestService_Levels(t *testing.T) {
	svc := newService(t)
	assert.Equal(t, []string{"All", "Beginner", "Intermediate", "Advanced"}, svc.Levels())
}

func TestService_Related(t *testing.T) {
	courses := []course.Course{
		testutil.NewCourse("a", "A", "Web", course.LevelBeginner, 1, 1, 1, false),
		testutil.NewCourse("b", "B", "Web", course.LevelBeginner, 1, 1, 1, false),
		testutil.NewCourse("c", "C", "Data", course.LevelBeginner, 1, 1, 1, false),
		testutil.NewCourse("d", "D", "Web", course.LevelBeginner, 1, 1, 1, false),
		testutil.NewCourse("e", "E", "Web", course.LevelBeginner, 1, 1, 1, false),
		testutil.NewCourse("f", "F", "Web", course.LevelBeginner, 1, 1, 1, false),
	}
	svc := newService(t, courses...)

	tests := []struct {
		name string
		crs  course.Course
		want []string
	}{
		{name: "at most 3, never itself", crs: courses[1], want: []string{"a", "d", "e"}},
		{name: "alone in its category", crs: courses[2], want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			related, err := svc.Related(tt.crs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, testutil.Slugs(related))
		})
	}
}

func TestCourse_Discount(t *testing.T) {
	p := func(f float64) *float64 { return &f }

	tests := []struct {
		name string
		crs  course.Course
		want int
	}{
		{name: "no original price", crs: course.Course{Price: 10}},
		{name: "original lower than price", crs: course.Course{Price: 10, OriginalPrice: p(5)}},
		{name: "zero original price", crs: course.Course{Price: 10, OriginalPrice: p(0)}},
		{name: "half price", crs: course.Course{Price: 50, OriginalPrice: p(100)}, want: 50},
		{name: "rounded down", crs: course.Course{Price: 89.99, OriginalPrice: p(199.99)}, want: 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.crs.Discount())
		})
	}
}
