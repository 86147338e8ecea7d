package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursely/coursely/apps/api/echo"
	"github.com/coursely/coursely/assets"
	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/contact"
	"github.com/coursely/coursely/core/course"
	"github.com/coursely/coursely/core/enrollment"
	"github.com/coursely/coursely/core/payment"
	"github.com/coursely/coursely/services/email"
	"github.com/coursely/coursely/services/logger"
	"github.com/coursely/coursely/storage/database/inmem"
	"github.com/coursely/coursely/tests"
)

type (
	app struct {
		server  *echoapi.Server
		store   *enrollment.Store
		mailSvc *emailsvc.ConsoleService
	}

	options struct {
		enrolled   []string
		gateway    payment.Gateway
		notifiers  []contact.Notifier
		courseRepo course.Repository // defaults to the in-memory sample catalog
	}

	httpErr struct {
		Error string `json:"error"`
	}

	httpTest struct {
		name     string
		method   string
		path     string
		body     []byte
		wantCode int
	}
)

func setup(t *testing.T, opts options) app {
	conf := core.NewTestConfig()
	logger := logsvc.NewDiscardLogger()

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	payment.InitValidators(validate, translator)
	core.ParseEmailTemplates(assets.FS, assets.EmailTemplatesDir, conf, logger)

	// set up DB & repos
	db := testutil.OpenDB(t, testutil.SampleCourses())
	courseRepo := opts.courseRepo
	if courseRepo == nil {
		courseRepo = inmemdb.NewCourseRepository(db)
	}
	checkoutRepo := inmemdb.NewCheckoutRepository(db)

	// set up services
	courseSvc := course.NewService(courseRepo, conf)
	store := enrollment.NewStore(opts.enrolled...)
	enrollmentSvc := enrollment.NewService(store, courseSvc)

	gateway := opts.gateway
	if gateway == nil {
		gateway = payment.SimulatedGateway{}
	}
	paymentSvc := payment.NewService(checkoutRepo, gateway, courseSvc, enrollmentSvc, conf, logger)

	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	notifiers := append([]contact.Notifier{contact.NewEmailNotifier(mailSvc, conf)}, opts.notifiers...)
	contactSvc := contact.NewService(validate, logger, notifiers...)

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		CourseSvc:     courseSvc,
		EnrollmentSvc: enrollmentSvc,
		PaymentSvc:    paymentSvc,
		ContactSvc:    contactSvc,
		Validate:      validate,
		Translator:    translator,
	})
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	return app{server: server, store: store, mailSvc: mailSvc}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// do serves one request and decodes the JSON response into out, if not nil.
func (a app) do(t *testing.T, tt httpTest, out interface{}) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newRequest(method, tt.path, tt.body)
	a.server.ServeHTTP(rec, req)

	if tt.wantCode != 0 {
		require.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	}
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
	}
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func cardSlugs(cards []echoapi.CourseCard) []string {
	slugs := make([]string, len(cards))
	for i, c := range cards {
		slugs[i] = c.Slug
	}
	return slugs
}

func assertFieldErrors(t *testing.T, rec *httptest.ResponseRecorder, fields ...string) {
	var flds map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flds), "body: %s", rec.Body.String())
	for _, f := range fields {
		assert.Contains(t, flds, f)
	}
}

type pendingGateway struct{}

func (pendingGateway) Verify(context.Context, payment.Checkout) (payment.Status, error) {
	return payment.StatusPending, nil
}

type failingNotifier struct{}

func (failingNotifier) Name() string { return "failing" }

func (failingNotifier) Notify(context.Context, contact.Message) error {
	return errors.New("upstream unavailable")
}
