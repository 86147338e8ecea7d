package contact

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core"
)

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func (m *Message) Validate(validate *validator.Validate) error {
	m.Name = core.CleanString(m.Name)
	m.Email = core.CleanString(m.Email, true /* lower */)
	m.Message = core.CleanString(m.Message)
	return validate.Struct(m)
}

// Notifier forwards a contact message to whoever handles support.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg Message) error
}

type Service struct {
	notifiers []Notifier
	validate  *validator.Validate
	logger    core.Logger
}

func NewService(validate *validator.Validate, logger core.Logger, notifiers ...Notifier) *Service {
	return &Service{notifiers: notifiers, validate: validate, logger: logger}
}

// Submit validates msg then hands it to every notifier. All notifiers are tried; the first error is returned.
func (svc *Service) Submit(ctx context.Context, msg Message) error {
	if err := msg.Validate(svc.validate); err != nil {
		return err
	}

	var firstErr error
	for _, n := range svc.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			svc.logger.Error(fmt.Sprintf("contact: %s notifier failed", n.Name()), err)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "notifying %s", n.Name())
			}
		}
	}
	return firstErr
}

// EmailNotifier mails contact messages to the support inbox.
type EmailNotifier struct {
	svc       core.EmailService
	recipient mail.Address
}

var _ Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(svc core.EmailService, conf *core.Config) *EmailNotifier {
	recipient := mail.Address{Address: conf.Contact.Recipient}
	if addr, err := mail.ParseAddress(conf.Contact.Recipient); err == nil {
		recipient = *addr
	}
	return &EmailNotifier{svc: svc, recipient: recipient}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(_ context.Context, msg Message) error {
	n.svc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{n.recipient},
		ReplyTo:      &mail.Address{Name: msg.Name, Address: msg.Email},
		Subject:      "New contact form submission from " + msg.Name,
		TemplateName: "contact",
		TemplateData: msg,
	})
	return nil
}
