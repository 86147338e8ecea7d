package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursely/coursely/apps/api/echo"
	"github.com/coursely/coursely/core/contact"
)

func Test_contactApi(t *testing.T) {
	a := setup(t, options{})

	rec := a.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/v1/contact",
		body:     marchallObj(t, contact.Message{}),
		wantCode: http.StatusBadRequest,
	}, nil)
	assertFieldErrors(t, rec, "name", "email", "message")

	rec = a.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/v1/contact",
		body:     marchallObj(t, contact.Message{Name: "Jo", Email: "not-an-email", Message: "hi"}),
		wantCode: http.StatusBadRequest,
	}, nil)
	assertFieldErrors(t, rec, "email")
	assert.Empty(t, a.mailSvc.SentMessages())

	var res echoapi.SuccessResponse
	a.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/v1/contact",
		body:     marchallObj(t, contact.Message{Name: " Jo ", Email: "Jo@Test.test", Message: "Hello there"}),
		wantCode: http.StatusOK,
	}, &res)
	assert.NotEmpty(t, res.Success)

	sent := a.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "support@test.test", sent[0].To[0].Address)
	assert.Equal(t, "jo@test.test", sent[0].ReplyTo.Address)
	assert.Contains(t, sent[0].TextContent, "Hello there")
	assert.Contains(t, sent[0].HTMLContent, "Hello there")
}

func Test_contactApi_notifierFails(t *testing.T) {
	a := setup(t, options{notifiers: []contact.Notifier{failingNotifier{}}})

	var herr httpErr
	a.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/v1/contact",
		body:     marchallObj(t, contact.Message{Name: "Jo", Email: "jo@test.test", Message: "Hello"}),
		wantCode: http.StatusBadGateway,
	}, &herr)
	assert.NotEmpty(t, herr.Error)
	assert.Len(t, a.mailSvc.SentMessages(), 1) // other notifiers still ran
}
