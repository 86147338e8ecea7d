package course

import (
	"github.com/coursely/coursely/core"
)

// Levels
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// All is the filter value matching every category or level.
const All = "All"

var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Sort options
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortRating    SortOption = "rating"
	SortStudents  SortOption = "students"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
)

var SortOptions = []SortOption{SortFeatured, SortRating, SortStudents, SortPriceLow, SortPriceHigh}

// DefaultPageSize is the number of course cards per catalog page.
const DefaultPageSize = 6

// Lesson types
const (
	LessonVideo   = "video"
	LessonReading = "reading"
	LessonQuiz    = "quiz"
)

type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty" yaml:"twitter"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin"`
	Website  string `json:"website,omitempty" yaml:"website"`
}

type Instructor struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Bio         string      `json:"bio" yaml:"bio"`
	Avatar      string      `json:"avatar" yaml:"avatar"`
	Company     string      `json:"company" yaml:"company"`
	JobTitle    string      `json:"job_title" yaml:"jobTitle"`
	SocialLinks SocialLinks `json:"social_links" yaml:"socialLinks"`
}

type Lesson struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Content     string `json:"content,omitempty" yaml:"content"`
	Duration    string `json:"duration,omitempty" yaml:"duration"`
	FreePreview bool   `json:"free_preview" yaml:"freePreview"`
}

type Module struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Duration    string   `json:"duration" yaml:"duration"`
	Lessons     []Lesson `json:"lessons" yaml:"lessons"`
}

// Course is a catalog entry. Courses are loaded once at start-up and never mutated.
// Missing numeric fields are 0 and compare as such; OriginalPrice is nil when there is no discount.
type Course struct {
	ID                 string     `json:"id" yaml:"id"`
	Slug               string     `json:"slug" yaml:"slug"`
	Title              string     `json:"title" yaml:"title"`
	Description        string     `json:"description" yaml:"description"`
	Category           string     `json:"category" yaml:"category"`
	Image              string     `json:"image" yaml:"image"`
	Price              float64    `json:"price" yaml:"price"`
	OriginalPrice      *float64   `json:"original_price,omitempty" yaml:"originalPrice"`
	Rating             float64    `json:"rating" yaml:"rating"`
	ReviewCount        int        `json:"review_count" yaml:"reviewCount"`
	Students           int        `json:"students" yaml:"students"`
	Duration           string     `json:"duration" yaml:"duration"`
	Level              Level      `json:"level" yaml:"level"`
	Featured           bool       `json:"featured" yaml:"featured"`
	Skills             []string   `json:"skills" yaml:"skills"`
	Instructor         Instructor `json:"instructor" yaml:"instructor"`
	Curriculum         []Module   `json:"-" yaml:"curriculum"`
	LearningObjectives []string   `json:"learning_objectives,omitempty" yaml:"learningObjectives"`
	Requirements       []string   `json:"requirements,omitempty" yaml:"requirements"`
	LastUpdated        string     `json:"last_updated,omitempty" yaml:"lastUpdated"`
}

// Discount returns the discount percentage over OriginalPrice, rounded down, or 0.
func (c Course) Discount() int {
	if c.OriginalPrice == nil || *c.OriginalPrice <= 0 || *c.OriginalPrice <= c.Price {
		return 0
	}
	return int((*c.OriginalPrice - c.Price) / *c.OriginalPrice * 100)
}

// QueryParams holds the catalog view parameters.
type QueryParams struct {
	Search   string     `query:"search"`
	Category string     `query:"category"`
	Level    string     `query:"level" validate:"omitempty,courselevel"`
	Sort     SortOption `query:"sort" validate:"omitempty,sortoption"`
	Page     int        `query:"page" validate:"gte=0"`
	PageSize int        `query:"-"`
}

func (qp *QueryParams) Clean() {
	qp.Search = core.CleanString(qp.Search)
	qp.Category = core.CleanString(qp.Category)
	qp.Level = core.CleanString(qp.Level)
	qp.Sort = SortOption(core.CleanString(string(qp.Sort), true /* lower */))
}

// State tells apart an empty catalog from a filter that matched nothing.
type State string

const (
	StateResults   State = "results"
	StateNoResults State = "no_results"
	StateNoCourses State = "no_courses"
)

// Result is one page of the filtered & sorted catalog.
type Result struct {
	Courses     []Course
	Total       int // filtered count
	TotalPages  int // always >= 1
	Page        int // clamped to [1, TotalPages]
	PageSize    int
	CatalogSize int
}

func (r Result) State() State {
	switch {
	case r.CatalogSize == 0:
		return StateNoCourses
	case r.Total == 0:
		return StateNoResults
	default:
		return StateResults
	}
}
