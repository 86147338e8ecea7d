package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/contact"
)

var errAPI = errors.New("telegram API failed")

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notifier posts contact messages to a Telegram chat through the Bot API.
type Notifier struct {
	client *resty.Client
	token  string
	chatID string
}

var _ contact.Notifier = (*Notifier)(nil)

func NewNotifier(conf *core.Config) *Notifier {
	client := resty.New().
		SetBaseURL(strings.TrimRight(conf.Contact.TelegramAPIURL, "/")).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")
	return &Notifier{
		client: client,
		token:  conf.Contact.TelegramToken,
		chatID: conf.Contact.TelegramChatID,
	}
}

// Enabled reports whether a bot token and a chat are configured.
func (n *Notifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

func (n *Notifier) Name() string { return "telegram" }

func (n *Notifier) Notify(ctx context.Context, msg contact.Message) error {
	var res apiResponse
	resp, err := n.client.R().
		SetContext(ctx).
		SetPathParam("token", n.token).
		SetBody(sendMessageRequest{
			ChatID:    n.chatID,
			Text:      formatMessage(msg),
			ParseMode: "Markdown",
		}).
		SetResult(&res).
		SetError(&res).
		Post("/bot{token}/sendMessage")
	if err != nil {
		return errors.Wrap(err, "posting sendMessage")
	}
	if resp.IsError() || !res.OK {
		return errors.Wrapf(errAPI, "status %d: %s", resp.StatusCode(), res.Description)
	}
	return nil
}

// markdownEscaper escapes the entity markers of Telegram's legacy Markdown.
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func formatMessage(msg contact.Message) string {
	return fmt.Sprintf(
		"*New Contact Form Submission*:\n  - *Name*: %s\n  - *Email*: %s\n  - *Message*: %s",
		markdownEscaper.Replace(msg.Name),
		markdownEscaper.Replace(msg.Email),
		markdownEscaper.Replace(msg.Message),
	)
}
