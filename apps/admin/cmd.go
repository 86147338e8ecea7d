package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	courseSvc  *course.Service
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  courses [-search S] [-category C] [-level L] [-sort O] [-page N] - list a catalog page")
	_, _ = fmt.Fprintln(cli.out, "  course -slug SLUG - show a course, its curriculum and related courses")
	_, _ = fmt.Fprintln(cli.out, "  categories - list the catalog categories")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	coursesCmd := flag.NewFlagSet("courses", flag.ContinueOnError)
	coursesCmd.SetOutput(cli.out)
	search := coursesCmd.String("search", "", "Text searched in titles, instructor names and descriptions.")
	category := coursesCmd.String("category", "", "Category filter (default: All).")
	level := coursesCmd.String("level", "", "Level filter: All, Beginner, Intermediate or Advanced.")
	sort := coursesCmd.String("sort", string(course.SortFeatured), "Sort option: featured, rating, students, price-low or price-high.")
	page := coursesCmd.Int("page", 1, "Page number.")

	courseCmd := flag.NewFlagSet("course", flag.ContinueOnError)
	courseCmd.SetOutput(cli.out)
	slug := courseCmd.String("slug", "", "The course slug.")

	switch args[1] {
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.listCourses(course.QueryParams{
			Search:   *search,
			Category: *category,
			Level:    *level,
			Sort:     course.SortOption(*sort),
			Page:     *page,
		})
	case "course":
		if err := courseCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if strings.TrimSpace(*slug) == "" {
			courseCmd.Usage()
			return errHelp
		}
		return cli.showCourse(*slug)
	case "categories":
		return cli.listCategories()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listCourses(params course.QueryParams) error {
	params.Clean()
	if err := cli.validate.Struct(&params); err != nil {
		return core.TranslateValidationErrors(err, cli.translator)
	}

	res, err := cli.courseSvc.Query(params)
	if err != nil {
		return err
	}
	switch res.State() {
	case course.StateNoCourses:
		_, _ = fmt.Fprintln(cli.out, "No courses available.")
		return nil
	case course.StateNoResults:
		_, _ = fmt.Fprintln(cli.out, "No courses match your filters.")
		return nil
	}

	rows := make([][]string, 0, len(res.Courses))
	for _, c := range res.Courses {
		featured := ""
		if c.Featured {
			featured = "yes"
		}
		rows = append(rows, []string{
			c.Slug,
			c.Title,
			c.Category,
			string(c.Level),
			fmt.Sprintf("$%.2f", c.Price),
			strconv.FormatFloat(c.Rating, 'f', 1, 64),
			strconv.Itoa(c.Students),
			featured,
		})
	}
	_, _ = fmt.Fprintln(cli.out, renderTable(
		[]string{"SLUG", "TITLE", "CATEGORY", "LEVEL", "PRICE", "RATING", "STUDENTS", "FEATURED"},
		rows,
	))
	_, _ = fmt.Fprintf(cli.out, "page %d/%d (%d courses)\n", res.Page, res.TotalPages, res.Total)
	return nil
}

func (cli *commandLine) showCourse(slug string) error {
	crs, err := cli.courseSvc.GetBySlug(slug)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cli.out, titleStyle.Render(crs.Title))
	_, _ = fmt.Fprintf(cli.out, "%s · %s · by %s\n", crs.Category, crs.Level, crs.Instructor.Name)
	price := fmt.Sprintf("$%.2f", crs.Price)
	if d := crs.Discount(); d > 0 {
		price += fmt.Sprintf(" (-%d%% off $%.2f)", d, *crs.OriginalPrice)
	}
	_, _ = fmt.Fprintf(cli.out, "%s · %.1f★ · %d students · %s\n", price, crs.Rating, crs.Students, crs.Duration)

	if len(crs.Curriculum) > 0 {
		rows := make([][]string, 0, len(crs.Curriculum))
		for _, m := range crs.Curriculum {
			for _, l := range m.Lessons {
				preview := ""
				if l.FreePreview {
					preview = "free"
				}
				rows = append(rows, []string{m.Title, l.Title, l.Type, l.Duration, preview})
			}
		}
		_, _ = fmt.Fprintln(cli.out, renderTable([]string{"MODULE", "LESSON", "TYPE", "DURATION", "PREVIEW"}, rows))
	}

	related, err := cli.courseSvc.Related(crs)
	if err != nil {
		return err
	}
	if len(related) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(cli.out, titleStyle.Render("Related courses"))
	rows := make([][]string, 0, len(related))
	for _, r := range related {
		rows = append(rows, []string{r.Slug, r.Title, string(r.Level), fmt.Sprintf("$%.2f", r.Price)})
	}
	_, _ = fmt.Fprintln(cli.out, renderTable([]string{"SLUG", "TITLE", "LEVEL", "PRICE"}, rows))
	return nil
}

func (cli *commandLine) listCategories() error {
	cats, err := cli.courseSvc.Categories()
	if err != nil {
		return err
	}
	for _, c := range cats {
		_, _ = fmt.Fprintln(cli.out, c)
	}
	return nil
}
