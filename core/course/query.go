package course

import (
	"sort"
	"strings"
)

// Query filters, sorts and paginates courses. It never modifies `courses`.
//
// A course is kept when the search text (if any) is a case-insensitive substring of its title,
// instructor name or description, AND its category and level match (unless "All" or empty).
// The page is clamped to [1, TotalPages]; an empty result still has one (empty) page.
func Query(courses []Course, params QueryParams) Result {
	size := params.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	filtered := Filter(courses, params)
	Sort(filtered, params.Sort)

	totalPages := (len(filtered) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page := params.Page
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Courses:     filtered[start:end],
		Total:       len(filtered),
		TotalPages:  totalPages,
		Page:        page,
		PageSize:    size,
		CatalogSize: len(courses),
	}
}

// Filter returns a new slice holding the courses matching every active predicate of params.
func Filter(courses []Course, params QueryParams) []Course {
	search := strings.ToLower(params.Search)
	filtered := make([]Course, 0, len(courses))
	for _, c := range courses {
		if Matches(c, search, params.Category, params.Level) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Matches reports whether c satisfies the search, category and level predicates.
// `search` must already be lower-cased.
func Matches(c Course, search, category, level string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(c.Title), search) &&
		!strings.Contains(strings.ToLower(c.Instructor.Name), search) &&
		!strings.Contains(strings.ToLower(c.Description), search) {
		return false
	}
	if category != "" && category != All && c.Category != category {
		return false
	}
	if level != "" && level != All && string(c.Level) != level {
		return false
	}
	return true
}

// Sort stable-sorts courses in place. Unknown options fall back to SortFeatured.
func Sort(courses []Course, opt SortOption) {
	var less func(a, b Course) bool
	switch opt {
	case SortRating:
		less = func(a, b Course) bool { return a.Rating > b.Rating }
	case SortStudents:
		less = func(a, b Course) bool { return a.Students > b.Students }
	case SortPriceLow:
		less = func(a, b Course) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b Course) bool { return a.Price > b.Price }
	default:
		// stable partition: featured first, original order otherwise
		less = func(a, b Course) bool { return a.Featured && !b.Featured }
	}
	sort.SliceStable(courses, func(i, j int) bool { return less(courses[i], courses[j]) })
}

// IsSortOption reports whether s names a known sort option.
func IsSortOption(s string) bool {
	for _, opt := range SortOptions {
		if string(opt) == s {
			return true
		}
	}
	return false
}

// IsLevel reports whether s names a known level or is the "All" filter value.
func IsLevel(s string) bool {
	if s == All {
		return true
	}
	for _, lvl := range Levels {
		if string(lvl) == s {
			return true
		}
	}
	return false
}
