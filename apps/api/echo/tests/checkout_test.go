package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursely/coursely/core/payment"
)

func Test_checkoutApi(t *testing.T) {
	a := setup(t, options{})

	var banks []payment.Bank
	a.do(t, httpTest{path: "/v1/checkout/banks", wantCode: http.StatusOK}, &banks)
	assert.Equal(t, payment.Banks, banks)

	var co payment.Checkout
	a.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/v1/checkout",
		body:     marchallObj(t, payment.NewCheckout{Course: " go-basics ", Bank: "ABA"}),
		wantCode: http.StatusCreated,
	}, &co)
	assert.NotEmpty(t, co.ID)
	assert.Equal(t, "go-basics", co.CourseSlug)
	assert.Equal(t, "aba", co.Bank)
	assert.Equal(t, 19.99, co.Amount)
	assert.Equal(t, payment.StatusPending, co.Status)
	assert.True(t, strings.HasPrefix(co.TransactionID, "TXN_"))
	assert.Contains(t, co.QRCode, "19.99")
	assert.Contains(t, co.QRCode, "ABA")

	var got payment.Checkout
	a.do(t, httpTest{path: "/v1/checkout/" + co.ID, wantCode: http.StatusOK}, &got)
	assert.Equal(t, co.ID, got.ID)

	assert.False(t, a.store.IsEnrolled("go-basics"))
	a.do(t, httpTest{method: http.MethodPost, path: "/v1/checkout/" + co.ID + "/confirm", wantCode: http.StatusOK}, &got)
	assert.Equal(t, payment.StatusSuccess, got.Status)
	assert.True(t, a.store.IsEnrolled("go-basics"))
}

func Test_checkoutApi_errors(t *testing.T) {
	a := setup(t, options{gateway: pendingGateway{}})

	t.Run("bad input", func(t *testing.T) {
		rec := a.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/v1/checkout",
			body:     marchallObj(t, payment.NewCheckout{Bank: "paypal"}),
			wantCode: http.StatusBadRequest,
		}, nil)
		assertFieldErrors(t, rec, "course", "bank")
	})

	t.Run("unknown course", func(t *testing.T) {
		a.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/v1/checkout",
			body:     marchallObj(t, payment.NewCheckout{Course: "python", Bank: "aba"}),
			wantCode: http.StatusNotFound,
		}, nil)
	})

	t.Run("unknown checkout", func(t *testing.T) {
		a.do(t, httpTest{path: "/v1/checkout/nope", wantCode: http.StatusNotFound}, nil)
		a.do(t, httpTest{method: http.MethodPost, path: "/v1/checkout/nope/confirm", wantCode: http.StatusNotFound}, nil)
	})

	t.Run("verification times out", func(t *testing.T) {
		var co payment.Checkout
		a.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/v1/checkout",
			body:     marchallObj(t, payment.NewCheckout{Course: "rust-systems", Bank: "bakong"}),
			wantCode: http.StatusCreated,
		}, &co)

		var herr httpErr
		a.do(t, httpTest{method: http.MethodPost, path: "/v1/checkout/" + co.ID + "/confirm", wantCode: http.StatusPaymentRequired}, &herr)
		assert.Equal(t, payment.ErrVerificationTimeout.Error(), herr.Error)

		var got payment.Checkout
		a.do(t, httpTest{path: "/v1/checkout/" + co.ID, wantCode: http.StatusOK}, &got)
		assert.Equal(t, payment.StatusFailed, got.Status)
		assert.False(t, a.store.IsEnrolled("rust-systems"))
	})
}
