package services

import (
	"context"

	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/app/models/dto"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

// CheckoutClient creates hosted checkout sessions. It exists so the
// payment flow can be exercised without talking to the payment provider.
type CheckoutClient interface {
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeCheckoutClient implements CheckoutClient against the Stripe API.
type StripeCheckoutClient struct{}

// NewStripeCheckoutClient configures the Stripe SDK and returns a client.
func NewStripeCheckoutClient(secretKey string) *StripeCheckoutClient {
	stripe.Key = secretKey
	return &StripeCheckoutClient{}
}

// CreateSession creates a hosted checkout session.
func (c *StripeCheckoutClient) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.New(params)
}

// PaymentService starts hosted checkouts for courses and records their
// completion. The card details never touch this service; the provider
// hosts the payment page.
type PaymentService struct {
	payments   PaymentStore
	checkout   CheckoutClient
	successURL string
	cancelURL  string
	logger     zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	payments PaymentStore,
	checkout CheckoutClient,
	successURL string,
	cancelURL string,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments:   payments,
		checkout:   checkout,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// CreateCheckout records a pending payment and opens a hosted checkout
// session for it, returning the URL the client should redirect to.
func (s *PaymentService) CreateCheckout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.AmountCents <= 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "amount must be positive")
	}

	payment := &models.Payment{
		Email:       req.Email,
		CourseID:    req.CourseID,
		CourseName:  req.CourseName,
		AmountCents: req.AmountCents,
		Status:      models.PaymentStatusPending,
	}
	paymentID, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.Email),
		SuccessURL:    stripe.String(s.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.CourseName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	checkout, err := s.checkout.CreateSession(params)
	if err != nil {
		s.logger.Error().Err(err).Int64("payment_id", paymentID).Msg("Failed to create checkout session")
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService, "could not start checkout")
	}

	if err := s.payments.SetCheckoutSessionID(ctx, paymentID, checkout.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("payment_id", paymentID).
		Str("checkout_session_id", checkout.ID).
		Msg("Checkout session created")

	return &dto.CheckoutResponse{
		CheckoutSessionID: checkout.ID,
		CheckoutURL:       checkout.URL,
	}, nil
}

// CompleteCheckout marks the payment behind a checkout session as paid.
func (s *PaymentService) CompleteCheckout(ctx context.Context, checkoutSessionID string) error {
	if err := s.payments.MarkCompleted(ctx, checkoutSessionID); err != nil {
		return err
	}
	s.logger.Info().Str("checkout_session_id", checkoutSessionID).Msg("Payment completed")
	return nil
}
