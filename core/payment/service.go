package payment

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/coursely/coursely/core"
	"github.com/coursely/coursely/core/course"
)

var (
	// errors
	ErrCheckoutNotFound    = errors.New("checkout not found")
	ErrVerificationTimeout = errors.New("payment verification timed out")
	ErrPaymentDeclined     = errors.New("payment not confirmed")
	ErrInvalidBank         = errors.New("invalid bank")

	bankTag  = "bank"
	bankText = "must be one of aba, bakong, acleda or canadia"

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateCheckout(co Checkout) (Checkout, error)
		GetCheckoutByID(id string) (Checkout, error)
		UpdateCheckout(co Checkout) (Checkout, error)
	}

	// Gateway reports the payment status of a checkout.
	Gateway interface {
		Verify(ctx context.Context, co Checkout) (Status, error)
	}

	// CourseFinder looks courses up in the catalog.
	CourseFinder interface {
		GetBySlug(slug string) (course.Course, error)
	}

	// Enroller is called once a payment succeeds.
	Enroller interface {
		Enroll(slug string) (course.Course, error)
	}

	Service struct {
		repo         Repository
		gateway      Gateway
		courses      CourseFinder
		enroller     Enroller
		logger       core.Logger
		merchantID   string
		pollInterval time.Duration
		maxAttempts  int
	}
)

func NewService(
	repo Repository,
	gateway Gateway,
	courses CourseFinder,
	enroller Enroller,
	conf *core.Config,
	logger core.Logger,
) *Service {
	maxAttempts := conf.Payment.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Service{
		repo:         repo,
		gateway:      gateway,
		courses:      courses,
		enroller:     enroller,
		logger:       logger,
		merchantID:   conf.Payment.MerchantID,
		pollInterval: conf.Payment.PollInterval,
		maxAttempts:  maxAttempts,
	}
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(bankTag, func(fl validator.FieldLevel) bool {
		return IsBank(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, bankTag, bankText)
}

// Start opens a checkout for the course, priced at the course price, with a freshly generated QR code.
func (svc *Service) Start(nc NewCheckout) (Checkout, error) {
	if !IsBank(nc.Bank) {
		return Checkout{}, core.NewValidationError(ErrInvalidBank, core.FieldError{Field: "bank", Error: bankText})
	}
	crs, err := svc.courses.GetBySlug(nc.Course)
	if err != nil {
		return Checkout{}, errors.Wrap(err, "finding course")
	}

	now := NowFunc().UTC()
	txID := transactionID(now, nc.Bank)
	co := Checkout{
		ID:            uuid.NewString(),
		TransactionID: txID,
		CourseSlug:    crs.Slug,
		CourseTitle:   crs.Title,
		Bank:          nc.Bank,
		Amount:        crs.Price,
		Currency:      Currency,
		QRCode:        qrCode(svc.merchantID, crs.Price, crs.Title, txID, nc.Bank),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateCheckout(co)
}

func (svc *Service) GetByID(id string) (Checkout, error) {
	return svc.repo.GetCheckoutByID(id)
}

// Confirm polls the gateway until the payment succeeds, waiting the poll interval before every attempt.
// On success the course is enrolled. Confirming a successful checkout again returns it unchanged.
func (svc *Service) Confirm(ctx context.Context, id string) (Checkout, error) {
	co, err := svc.repo.GetCheckoutByID(id)
	if err != nil {
		return Checkout{}, err
	}
	if co.Status == StatusSuccess {
		return co, nil
	}

	co.Status = StatusVerifying
	co.Attempts = 0
	if co, err = svc.save(co); err != nil {
		return Checkout{}, err
	}

	status, err := svc.poll(ctx, &co)
	if err != nil {
		co.Status = StatusFailed
		if _, sErr := svc.save(co); sErr != nil {
			svc.logger.Error("saving failed checkout", sErr)
		}
		return co, err
	}

	if _, err = svc.enroller.Enroll(co.CourseSlug); err != nil {
		co.Status = StatusFailed
		if _, sErr := svc.save(co); sErr != nil {
			svc.logger.Error("saving failed checkout", sErr)
		}
		return co, errors.Wrap(err, "enrolling")
	}
	co.Status = status
	svc.logger.Info("payment confirmed", map[string]interface{}{
		"checkout":       co.ID,
		"transaction_id": co.TransactionID,
		"course":         co.CourseSlug,
	})
	return svc.save(co)
}

func (svc *Service) poll(ctx context.Context, co *Checkout) (Status, error) {
	for co.Attempts < svc.maxAttempts {
		select {
		case <-ctx.Done():
			return StatusFailed, errors.Wrap(ctx.Err(), "verifying payment")
		case <-time.After(svc.pollInterval):
		}

		co.Attempts++
		status, err := svc.gateway.Verify(ctx, *co)
		if err != nil {
			return StatusFailed, errors.Wrap(err, "verifying payment")
		}
		switch status {
		case StatusSuccess:
			return status, nil
		case StatusFailed:
			return status, ErrPaymentDeclined
		}
	}
	return StatusFailed, ErrVerificationTimeout
}

func (svc *Service) save(co Checkout) (Checkout, error) {
	co.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdateCheckout(co)
}

// SimulatedGateway approves every payment on the first poll.
type SimulatedGateway struct{}

var _ Gateway = SimulatedGateway{}

func (SimulatedGateway) Verify(context.Context, Checkout) (Status, error) {
	return StatusSuccess, nil
}
