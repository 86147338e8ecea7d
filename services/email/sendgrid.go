package emailsvc

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/coursely/coursely/core"
)

// SendgridService delivers emails through the SendGrid v3 API, one goroutine per message.
type SendgridService struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
	sandbox    bool
	logger     core.Logger
}

var _ core.EmailService = (*SendgridService)(nil)

func NewSendgridService(conf *core.Config, logger core.Logger) *SendgridService {
	from := conf.DefaultFromEmail()
	return &SendgridService{
		client:     sendgrid.NewSendClient(conf.SendgridAPIKey),
		from:       sgmail.NewEmail(from.Name, from.Address),
		subjPrefix: "[" + conf.AppName + "] ",
		sandbox:    conf.TestMode,
		logger:     logger,
	}
}

func (svc *SendgridService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc *SendgridService) sendMessage(msg *core.EmailMessage) {
	if err := msg.Render(); err != nil {
		svc.logger.Error(fmt.Sprintf("rendering email %q: %v", msg.TemplateName, err), err)
		return
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		svc.logger.Warn("email dropped: no recipients or no content", map[string]interface{}{"subject": msg.Subject})
		return
	}

	res, err := svc.client.Send(svc.build(*msg))
	switch {
	case err != nil:
		svc.logger.Error(fmt.Sprintf("sending email: %v", err), err)
	case res.StatusCode >= http.StatusBadRequest:
		svc.logger.Error(fmt.Sprintf("sending email: status %d", res.StatusCode), map[string]interface{}{
			"subject": msg.Subject,
			"body":    res.Body,
		})
	}
}

// build converts msg into a v3 mail. Rendered contents are expected.
func (svc *SendgridService) build(msg core.EmailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = svc.subjPrefix + msg.Subject
	p.AddTos(sgEmails(msg.To)...)
	p.AddCCs(sgEmails(msg.Cc)...)
	p.AddBCCs(sgEmails(msg.Bcc)...)

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.AddPersonalizations(p)
	if msg.ReplyTo != nil {
		m.SetReplyTo(sgmail.NewEmail(msg.ReplyTo.Name, msg.ReplyTo.Address))
	}
	if msg.TemplateName != "" {
		m.AddCategories(msg.TemplateName)
	}
	if svc.sandbox {
		m.SetMailSettings(sgmail.NewMailSettings().SetSandboxMode(sgmail.NewSetting(true)))
	}

	m.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	if msg.HTMLContent != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}
	return m
}

func sgEmails(addrs []mail.Address) []*sgmail.Email {
	emails := make([]*sgmail.Email, 0, len(addrs))
	for _, a := range addrs {
		emails = append(emails, sgmail.NewEmail(a.Name, a.Address))
	}
	return emails
}
