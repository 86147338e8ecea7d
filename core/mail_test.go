package core_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/services/logger"
)

func TestEmailMessage_Render(t *testing.T) {
	fsys := fstest.MapFS{
		"mail/_base.txt":      {Data: []byte(`{{define "base"}}{{template "content" .}} -- {{.AppName}}{{end}}`)},
		"mail/_base.gohtml":   {Data: []byte(`{{define "base"}}<p>{{template "content" .}}</p>{{end}}`)},
		"mail/hello.txt":      {Data: []byte(`{{define "content"}}Hello {{.Data}}{{end}}`)},
		"mail/hello.gohtml":   {Data: []byte(`{{define "content"}}Hello {{.Data}}{{end}}`)},
		"mail/plain-only.txt": {Data: []byte(`{{define "content"}}Plain{{end}}`)},
		"mail/README.md":      {Data: []byte(`ignored`)},
	}
	conf := core.NewTestConfig()
	core.ParseEmailTemplates(fsys, "mail", conf, logsvc.NewDiscardLogger())

	t.Run("text and html", func(t *testing.T) {
		msg := &core.EmailMessage{TemplateName: "hello", TemplateData: "<Jo>"}
		require.NoError(t, msg.Render())
		assert.Equal(t, "Hello <Jo> -- "+conf.AppName, msg.TextContent)
		assert.Equal(t, "<p>Hello &lt;Jo&gt;</p>", msg.HTMLContent)
		assert.True(t, msg.HasContent())
		assert.False(t, msg.HasRecipients())
	})

	t.Run("text only", func(t *testing.T) {
		msg := &core.EmailMessage{TemplateName: "plain-only"}
		require.NoError(t, msg.Render())
		assert.Equal(t, "Plain -- "+conf.AppName, msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
	})

	t.Run("body string", func(t *testing.T) {
		msg := &core.EmailMessage{BodyStr: "raw"}
		require.NoError(t, msg.Render())
		assert.Equal(t, "raw", msg.TextContent)
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := &core.EmailMessage{TemplateName: "README"}
		assert.EqualError(t, msg.Render(), `email template "README" not found`)
	})
}
