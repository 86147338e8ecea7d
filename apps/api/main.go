package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/coursely/coursely/apps/api/echo"
	"github.com/coursely/coursely/assets"
	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/contact"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/enrollment"
	"github.com/coursely/coursely/core/payment"
	"github.com/coursely/coursely/services/email"
	"github.com/coursely/coursely/services/logger"
	"github.com/coursely/coursely/services/telegram"
	"github.com/coursely/coursely/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB & repos
	db, err := inmemdb.Open(assets.FS, assets.CatalogFile, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading catalog: %v", err), err)
	}
	courseRepo := inmemdb.NewCourseRepository(db)
	checkoutRepo := inmemdb.NewCheckoutRepository(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(
			conf,
			log.New(os.Stdout, "MAIL : ", log.LstdFlags|log.Lmicroseconds),
			logger,
		)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	validate := validator.New()
	translator := core.NewTranslator()

	courseSvc := course.NewService(courseRepo, conf)

	store := enrollment.NewStore(conf.Catalog.Enrolled...)
	store.Subscribe(func(ch enrollment.Change) {
		if ch.Slug == "" {
			return
		}
		logger.Debug(fmt.Sprintf("enrollment changed: %s enrolled=%t", ch.Slug, ch.Enrolled))
	})
	enrollmentSvc := enrollment.NewService(store, courseSvc)

	paymentSvc := payment.NewService(checkoutRepo, payment.SimulatedGateway{}, courseSvc, enrollmentSvc, conf, logger)

	notifiers := []contact.Notifier{contact.NewEmailNotifier(mailSvc, conf)}
	if tg := telegram.NewNotifier(conf); tg.Enabled() {
		notifiers = append(notifiers, tg)
	}
	contactSvc := contact.NewService(validate, logger, notifiers...)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	payment.InitValidators(validate, translator)

	core.ParseEmailTemplates(assets.FS, assets.EmailTemplatesDir, conf, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.Publish("enrollments", expvar.Func(func() interface{} { return store.Len() }))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			CourseSvc:     courseSvc,
			EnrollmentSvc: enrollmentSvc,
			PaymentSvc:    paymentSvc,
			ContactSvc:    contactSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
