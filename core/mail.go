package core

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"path"
	"strings"
	"sync"
	texttmpl "text/template"
)

var (
	templates   tmplCache
	tmplMu      sync.RWMutex
	tmplContext ContextData
)

type (
	tmplCacheEntry struct {
		text *texttmpl.Template
		html *htmltmpl.Template
	}
	tmplCache map[string]tmplCacheEntry // {name: entry}

	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		ReplyTo *mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		AppName         string
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) getContextData() ContextData {
	tmplMu.RLock()
	ctx := tmplContext
	tmplMu.RUnlock()
	ctx.Data = m.TemplateData
	return ctx
}

func (m *EmailMessage) getTemplate() (tmplCacheEntry, bool) {
	tmplMu.RLock()
	defer tmplMu.RUnlock()
	entry, ok := templates[m.TemplateName]
	return entry, ok
}

func (m *EmailMessage) renderText(entry tmplCacheEntry) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if entry.text == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := entry.text.ExecuteTemplate(&buff, "base", m.getContextData()); err != nil {
		return err
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) renderHTML(entry tmplCacheEntry) error {
	if entry.html == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := entry.html.ExecuteTemplate(&buff, "base", m.getContextData()); err != nil {
		return err
	}
	m.HTMLContent = buff.String()
	return nil
}

func (m *EmailMessage) Render() error {
	var entry tmplCacheEntry
	if m.TemplateName != "" {
		var ok bool
		if entry, ok = m.getTemplate(); !ok {
			return fmt.Errorf("email template %q not found", m.TemplateName)
		}
	}
	if err := m.renderText(entry); err != nil {
		return err
	}
	return m.renderHTML(entry)
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }

// ParseEmailTemplates parses every `<name>.txt` and `<name>.gohtml` under `dir` in fsys,
// each one combined with the `_base` template of the same extension.
func ParseEmailTemplates(fsys fs.FS, dir string, conf *Config, logger Logger) {
	cache := make(tmplCache)

	fps, err := fs.Glob(fsys, path.Join(dir, "*"))
	if err != nil {
		logger.Error(fmt.Sprintf("core.ParseEmailTemplates: %v", err), err)
		return
	}

	for _, fp := range fps {
		fname := path.Base(fp)
		ext := path.Ext(fname)
		if strings.HasPrefix(fname, "_") || !(ext == ".txt" || ext == ".gohtml") {
			continue
		}
		name := strings.TrimSuffix(fname, ext)
		entry := cache[name]

		if ext == ".txt" {
			tmpl, err := texttmpl.ParseFS(fsys, path.Join(dir, "_base.txt"), fp)
			if err != nil {
				logger.Error(fmt.Sprintf("core.ParseEmailTemplates(%s): %v", fname, err), err)
				continue
			}
			if conf.Debug || conf.TestMode {
				tmpl = tmpl.Option("missingkey=error")
			}
			entry.text = tmpl
		} else {
			tmpl, err := htmltmpl.ParseFS(fsys, path.Join(dir, "_base.gohtml"), fp)
			if err != nil {
				logger.Error(fmt.Sprintf("core.ParseEmailTemplates(%s): %v", fname, err), err)
				continue
			}
			if conf.Debug || conf.TestMode {
				tmpl = tmpl.Option("missingkey=error")
			}
			entry.html = tmpl
		}
		cache[name] = entry
	}

	tmplMu.Lock()
	templates = cache
	tmplContext = ContextData{AppName: conf.AppName, FrontendBaseURL: conf.FrontendBaseURL}
	tmplMu.Unlock()
}
