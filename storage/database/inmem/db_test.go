package inmemdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursely/coursely/assets"
	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/payment"
)

func TestOpen_embeddedCatalog(t *testing.T) {
	db, err := Open(assets.FS, assets.CatalogFile, core.NewTestConfig())
	require.NoError(t, err)

	repo := NewCourseRepository(db)
	courses, err := repo.QueryAllCourses()
	require.NoError(t, err)
	require.Len(t, courses, 12)

	first := courses[0]
	assert.Equal(t, "complete-react-developer-course", first.Slug)
	assert.Equal(t, 89.99, first.Price)
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, 199.99, *first.OriginalPrice)
	assert.Equal(t, course.LevelIntermediate, first.Level)
	assert.True(t, first.Featured)
	assert.Equal(t, "Sarah Johnson", first.Instructor.Name)
	assert.NotEmpty(t, first.Curriculum)

	featured := 0
	for _, c := range courses {
		if c.Featured {
			featured++
		}
	}
	assert.Equal(t, 8, featured)
}

func TestLoadCatalog(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantSlugs []string
		wantErr   bool
	}{
		{name: "empty document", doc: ""},
		{name: "empty list", doc: "courses: []\n"},
		{
			name: "two courses",
			doc: "courses:\n" +
				"  - {id: '1', slug: go-basics, title: Go Basics, price: 10, level: Beginner}\n" +
				"  - {id: '2', slug: rust, title: Rust, rating: 4.5}\n",
			wantSlugs: []string{"go-basics", "rust"},
		},
		{name: "unknown field", doc: "courses:\n  - {slug: x, colour: red}\n", wantErr: true},
		{name: "not yaml", doc: "courses: [", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses, err := LoadCatalog(strings.NewReader(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			slugs := make([]string, 0, len(courses))
			for _, c := range courses {
				slugs = append(slugs, c.Slug)
			}
			if len(tt.wantSlugs) == 0 {
				assert.Empty(t, slugs)
			} else {
				assert.Equal(t, tt.wantSlugs, slugs)
			}
		})
	}
}

func TestOpenWith_rejectsBadSlugs(t *testing.T) {
	_, err := OpenWith([]course.Course{{ID: "1", Slug: "a"}, {ID: "2", Slug: "A"}})
	assert.Error(t, err, "duplicate slugs")

	_, err = OpenWith([]course.Course{{ID: "1"}})
	assert.Error(t, err, "blank slug")
}

func TestCourseRepository(t *testing.T) {
	db, err := OpenWith([]course.Course{
		{ID: "1", Slug: "go-basics", Title: "Go Basics"},
		{ID: "2", Slug: "rust", Title: "Rust"},
	})
	require.NoError(t, err)
	repo := NewCourseRepository(db)

	c, err := repo.GetCourseBySlug("GO-Basics")
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", c.Title)

	_, err = repo.GetCourseBySlug("python")
	assert.Equal(t, course.ErrNotFound, err)

	// callers own the returned slice
	all, err := repo.QueryAllCourses()
	require.NoError(t, err)
	all[0].Title = "changed"
	all, _ = repo.QueryAllCourses()
	assert.Equal(t, "Go Basics", all[0].Title)
}

func TestCourseRepository_corruptedIndex(t *testing.T) {
	db, err := OpenWith([]course.Course{
		{ID: "1", Slug: "go-basics"},
		{ID: "2", Slug: "rust"},
	})
	require.NoError(t, err)
	repo := NewCourseRepository(db)

	db.course.bySlug["rust"] = 0 // points at go-basics
	_, err = repo.GetCourseBySlug("rust")
	assert.True(t, core.IsShutdown(err), "got %v", err)

	db.course.bySlug["rust"] = 7
	_, err = repo.GetCourseBySlug("rust")
	assert.True(t, core.IsShutdown(err), "got %v", err)

	_, err = repo.GetCourseBySlug("go-basics")
	assert.NoError(t, err)

	delete(db.course.bySlug, "rust")
	_, err = repo.QueryAllCourses()
	assert.True(t, core.IsShutdown(err), "got %v", err)
}

func TestCheckoutRepository(t *testing.T) {
	db, err := OpenWith(nil)
	require.NoError(t, err)
	repo := NewCheckoutRepository(db)

	_, err = repo.GetCheckoutByID("nope")
	assert.Equal(t, payment.ErrCheckoutNotFound, err)

	_, err = repo.UpdateCheckout(payment.Checkout{ID: "nope"})
	assert.Equal(t, payment.ErrCheckoutNotFound, err)

	co, err := repo.CreateCheckout(payment.Checkout{ID: "c1", Status: payment.StatusPending})
	require.NoError(t, err)

	co.Status = payment.StatusSuccess
	_, err = repo.UpdateCheckout(co)
	require.NoError(t, err)

	got, err := repo.GetCheckoutByID("c1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, got.Status)
}
