package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/coursely/coursely/assets"
	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/storage/database/inmem"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := inmemdb.Open(assets.FS, assets.CatalogFile, conf)
	errAndDie(err)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		courseSvc:  course.NewService(inmemdb.NewCourseRepository(db), conf),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
