package inmemdb

import (
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/payment"
)

type (
	DB struct {
		course   *courseTable
		checkout *checkoutTable
	}

	courseTable struct {
		sync.RWMutex
		rows   []course.Course // catalog order
		bySlug map[string]int  // {lower(slug): index in rows}
	}

	checkoutTable struct {
		sync.RWMutex
		table map[string]*payment.Checkout
	}

	catalogFile struct {
		Courses []course.Course `yaml:"courses"`
	}
)

// Open returns a DB holding the catalog read from `name` in fsys.
// conf.Catalog.File, when set, is read from disk instead.
func Open(fsys fs.FS, name string, conf *core.Config) (*DB, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if conf != nil && conf.Catalog.File != "" {
		f, err = os.Open(conf.Catalog.File)
	} else {
		f, err = fsys.Open(name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog")
	}
	defer func() { _ = f.Close() }()

	courses, err := LoadCatalog(f)
	if err != nil {
		return nil, err
	}
	return OpenWith(courses)
}

// OpenWith returns a DB holding the given catalog. Courses must have unique, non-blank slugs.
func OpenWith(courses []course.Course) (*DB, error) {
	ct := &courseTable{
		rows:   make([]course.Course, 0, len(courses)),
		bySlug: make(map[string]int, len(courses)),
	}
	for _, c := range courses {
		key := strings.ToLower(c.Slug)
		if key == "" {
			return nil, errors.Errorf("course %q has no slug", c.ID)
		}
		if _, dup := ct.bySlug[key]; dup {
			return nil, errors.Errorf("duplicate course slug %q", c.Slug)
		}
		ct.bySlug[key] = len(ct.rows)
		ct.rows = append(ct.rows, c)
	}

	db := &DB{
		course:   ct,
		checkout: &checkoutTable{table: make(map[string]*payment.Checkout)},
	}
	return db, nil
}

// LoadCatalog decodes a YAML catalog document (a top-level `courses` list).
func LoadCatalog(r io.Reader) ([]course.Course, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding catalog")
	}
	return doc.Courses, nil
}
