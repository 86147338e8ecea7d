package tests

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursely/coursely/apps/api/echo"
	"github.com/coursely/coursely/core/course"
)

func Test_home(t *testing.T) {
	a := setup(t, options{})
	rec := a.do(t, httpTest{path: "/", wantCode: http.StatusOK}, nil)
	assert.Equal(t, "Welcome to Coursely API!", rec.Body.String())
}

func Test_courseApi_query(t *testing.T) {
	a := setup(t, options{})

	path := func(search, category, level, sort, page string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		if category != "" {
			v.Add("category", category)
		}
		if level != "" {
			v.Add("level", level)
		}
		if sort != "" {
			v.Add("sort", sort)
		}
		if page != "" {
			v.Add("page", page)
		}
		return "/v1/courses?" + v.Encode()
	}

	tests := []struct {
		name           string
		path           string
		wantSlugs      []string
		wantCount      int
		wantTotalPages int
		wantPage       int
		wantState      course.State
	}{
		{
			name:      "defaults: featured first, first page",
			path:      "/v1/courses",
			wantSlugs: []string{"react-hooks", "k8s-in-depth", "vue-starter", "go-basics", "css-grid", "sql-tuning"},
			wantCount: 8, wantTotalPages: 2, wantPage: 1, wantState: course.StateResults,
		},
		{
			name:      "second page",
			path:      path("", "", "", "", "2"),
			wantSlugs: []string{"ml-intro", "rust-systems"},
			wantCount: 8, wantTotalPages: 2, wantPage: 2, wantState: course.StateResults,
		},
		{
			name:      "page past the end is clamped",
			path:      path("", "", "", "", "99"),
			wantSlugs: []string{"ml-intro", "rust-systems"},
			wantCount: 8, wantTotalPages: 2, wantPage: 2, wantState: course.StateResults,
		},
		{
			name:      "search is case-insensitive",
			path:      path("  REACT ", "", "", "", ""),
			wantSlugs: []string{"react-hooks"},
			wantCount: 1, wantTotalPages: 1, wantPage: 1, wantState: course.StateResults,
		},
		{
			name:      "category + price-low",
			path:      path("", "Web Development", "", string(course.SortPriceLow), ""),
			wantSlugs: []string{"css-grid", "vue-starter", "react-hooks"},
			wantCount: 3, wantTotalPages: 1, wantPage: 1, wantState: course.StateResults,
		},
		{
			name:      "level + rating",
			path:      path("", "", "Advanced", string(course.SortRating), ""),
			wantSlugs: []string{"k8s-in-depth", "sql-tuning", "rust-systems"},
			wantCount: 3, wantTotalPages: 1, wantPage: 1, wantState: course.StateResults,
		},
		{
			name:      "All filters",
			path:      path("", course.All, course.All, string(course.SortStudents), ""),
			wantSlugs: []string{"ml-intro", "react-hooks", "css-grid", "vue-starter", "go-basics", "k8s-in-depth"},
			wantCount: 8, wantTotalPages: 2, wantPage: 1, wantState: course.StateResults,
		},
		{
			name:      "no match",
			path:      path("zzz", "", "", "", "3"),
			wantSlugs: []string{},
			wantCount: 0, wantTotalPages: 1, wantPage: 1, wantState: course.StateNoResults,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res echoapi.CourseListResponse
			a.do(t, httpTest{path: tt.path, wantCode: http.StatusOK}, &res)

			assert.Equal(t, tt.wantSlugs, cardSlugs(res.Results))
			assert.Equal(t, tt.wantCount, res.Count)
			assert.Equal(t, tt.wantTotalPages, res.TotalPages)
			assert.Equal(t, tt.wantPage, res.Page)
			assert.Equal(t, course.DefaultPageSize, res.PageSize)
			assert.Equal(t, tt.wantState, res.State)
		})
	}
}

func Test_courseApi_query_badParams(t *testing.T) {
	a := setup(t, options{})

	tests := []struct {
		name      string
		path      string
		wantField string
	}{
		{name: "unknown sort", path: "/v1/courses?sort=popularity", wantField: "sort"},
		{name: "unknown level", path: "/v1/courses?level=Expert", wantField: "level"},
		{name: "negative page", path: "/v1/courses?page=-1", wantField: "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, httpTest{path: tt.path, wantCode: http.StatusBadRequest}, nil)
			assertFieldErrors(t, rec, tt.wantField)
		})
	}

	t.Run("page is not a number", func(t *testing.T) {
		var herr httpErr
		a.do(t, httpTest{path: "/v1/courses?page=two", wantCode: http.StatusBadRequest}, &herr)
		assert.NotEmpty(t, herr.Error)
	})
}

func Test_courseApi_filters(t *testing.T) {
	a := setup(t, options{})

	var res echoapi.FiltersResponse
	a.do(t, httpTest{path: "/v1/courses/filters", wantCode: http.StatusOK}, &res)

	assert.Equal(t, []string{course.All, "Programming", "Web Development", "DevOps", "Database Management", "Data Science"}, res.Categories)
	assert.Equal(t, []string{course.All, "Beginner", "Intermediate", "Advanced"}, res.Levels)
	assert.Equal(t, course.SortOptions, res.SortOptions)
}

func Test_courseApi_retrieve(t *testing.T) {
	a := setup(t, options{})

	var detail echoapi.CourseDetail
	a.do(t, httpTest{path: "/v1/courses/REACT-HOOKS", wantCode: http.StatusOK}, &detail)
	assert.Equal(t, "react-hooks", detail.Slug)
	assert.False(t, detail.Enrolled)
	assert.Equal(t, "Enroll Now", detail.Action)
	assert.Equal(t, []string{"css-grid", "vue-starter"}, cardSlugs(detail.Related))

	var herr httpErr
	a.do(t, httpTest{path: "/v1/courses/unknown", wantCode: http.StatusNotFound}, &herr)
	assert.Equal(t, "not found", herr.Error)
}

func Test_courseApi_learn(t *testing.T) {
	a := setup(t, options{enrolled: []string{"go-basics"}})

	var herr httpErr
	a.do(t, httpTest{path: "/v1/courses/rust-systems/learn", wantCode: http.StatusForbidden}, &herr)
	assert.Equal(t, "you are not enrolled in this course", herr.Error)

	var res echoapi.LearnResponse
	a.do(t, httpTest{path: "/v1/courses/go-basics/learn", wantCode: http.StatusOK}, &res)
	assert.Equal(t, "go-basics", res.Course.Slug)
	assert.True(t, res.Course.Enrolled)
	assert.NotNil(t, res.Curriculum)
}
