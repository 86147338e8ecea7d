package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/coursely/coursely/core"
)

// Statuses
type Status string

const (
	StatusPending   Status = "pending"
	StatusVerifying Status = "verifying"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
)

// Currency is the only currency checkouts are priced in.
const Currency = "USD"

type Bank struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Banks = []Bank{
	{Value: "aba", Label: "ABA Bank"},
	{Value: "bakong", Label: "Bakong App"},
	{Value: "acleda", Label: "ACLEDA Bank"},
	{Value: "canadia", Label: "Canadia Bank"},
}

func IsBank(value string) bool {
	for _, b := range Banks {
		if b.Value == value {
			return true
		}
	}
	return false
}

// Checkout is a simulated KHQR payment for one course.
type Checkout struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	CourseSlug    string    `json:"course"`
	CourseTitle   string    `json:"course_title"`
	Bank          string    `json:"bank"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	QRCode        string    `json:"qr_code"`
	Status        Status    `json:"status"`
	Attempts      int       `json:"attempts"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// NewCheckout contains information needed to start a checkout.
type NewCheckout struct {
	Course string `json:"course" validate:"required,slug"`
	Bank   string `json:"bank" validate:"required,bank"`
}

func (nc *NewCheckout) Clean() {
	nc.Course = core.CleanSlug(nc.Course)
	nc.Bank = core.CleanString(nc.Bank, true /* lower */)
}

// transactionID follows the TXN_<unix millis>_<bank> layout.
func transactionID(now time.Time, bank string) string {
	return fmt.Sprintf("TXN_%d_%s", now.UnixMilli(), bank)
}

// qrCode renders a mock KHQR payload. It is only meant to be displayed, never parsed.
func qrCode(merchantID string, amount float64, title, txID, bank string) string {
	if r := []rune(title); len(r) > 13 {
		title = string(r[:13])
	}
	amt := fmt.Sprintf("%.2f", amount)
	var b strings.Builder
	b.WriteString("00020101021130510016abaakhppxxx@abaa0115")
	b.WriteString(merchantID)
	b.WriteString("0208ABA Bank5204783253038405405")
	b.WriteString(amt)
	b.WriteString("5802KH5913")
	b.WriteString(title)
	b.WriteString("6010PHNOM PENH62530107")
	b.WriteString(txID)
	b.WriteString("6380010PAYWAY@ABA0103")
	b.WriteString(strings.ToUpper(bank))
	b.WriteString("63046DC4")
	return b.String()
}
