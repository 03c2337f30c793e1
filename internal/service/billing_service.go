package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"quickthumb/internal/cache"
	"quickthumb/internal/errors"
	"quickthumb/internal/metrics"
	"quickthumb/internal/model"
	"quickthumb/internal/repository"
)

// Settler turns a pack purchase intent into a redirect URL. The live
// implementation defers fulfillment to the payment processor's webhook;
// the immediate-grant implementation settles on the spot and exists only
// for deployments without payment credentials.
type Settler interface {
	Settle(ctx context.Context, user *model.User, pack model.CreditPack) (string, error)
}

// BillingService initiates and settles credit purchases.
type BillingService interface {
	CreateCheckout(ctx context.Context, user *model.User, packID string) (string, error)
	// ProcessWebhook verifies and applies one payment-completion event.
	// Verification fails closed when a signing secret is configured.
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	userRepo      repository.UserRepository
	eventRepo     repository.WebhookEventRepository
	settler       Settler
	cache         *cache.Client
	webhookSecret string
}

// NewBillingService creates a new billing service.
func NewBillingService(
	userRepo repository.UserRepository,
	eventRepo repository.WebhookEventRepository,
	settler Settler,
	cache *cache.Client,
	webhookSecret string,
) BillingService {
	return &billingService{
		userRepo:      userRepo,
		eventRepo:     eventRepo,
		settler:       settler,
		cache:         cache,
		webhookSecret: webhookSecret,
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, user *model.User, packID string) (string, error) {
	pack, ok := model.LookupPack(packID)
	if !ok {
		return "", errors.ErrInvalidPack
	}
	return s.settler.Settle(ctx, user, pack)
}

func (s *billingService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	var event stripe.Event
	if s.webhookSecret != "" {
		verified, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrWebhookSignature, err)
		}
		event = verified
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrWebhookPayload, err)
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}
	if event.Data == nil {
		return fmt.Errorf("%w: event has no data object", errors.ErrWebhookPayload)
	}

	var checkout stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkout); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrWebhookPayload, err)
	}

	userID := checkout.Metadata["user_id"]
	credits, err := strconv.Atoi(checkout.Metadata["credits"])
	if userID == "" || err != nil || credits <= 0 {
		// unknown or missing metadata is a silent no-op
		return nil
	}

	first, err := s.eventRepo.MarkProcessed(ctx, &model.WebhookEvent{
		EventID: event.ID,
		Type:    string(event.Type),
	})
	if err != nil {
		return fmt.Errorf("record webhook event: %w", err)
	}
	if !first {
		// replayed event, already settled
		return nil
	}

	if err := s.userRepo.AddCredits(ctx, userID, credits); err != nil {
		return fmt.Errorf("grant credits: %w", err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(userID))
	metrics.CreditsGranted.WithLabelValues("webhook").Add(float64(credits))
	return nil
}

type stripeSettler struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeSettler returns the live settler backed by hosted checkout.
func NewStripeSettler(apiKey, frontendURL string) Settler {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &stripeSettler{
		api:        api,
		successURL: frontendURL + "/dashboard?payment=success",
		cancelURL:  frontendURL + "/pricing",
	}
}

func (s *stripeSettler) Settle(ctx context.Context, user *model.User, pack model.CreditPack) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(pack.Name),
				},
				UnitAmount: stripe.Int64(pack.UnitAmount()),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("user_id", user.UserID)
	params.AddMetadata("credits", strconv.Itoa(pack.Credits))
	params.AddMetadata("pack_id", pack.ID)

	checkout, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return checkout.URL, nil
}

type mockSettler struct {
	userRepo   repository.UserRepository
	cache      *cache.Client
	successURL string
}

// NewMockSettler returns the immediate-grant settler used when no payment
// processor key is configured. It bypasses payment entirely.
func NewMockSettler(userRepo repository.UserRepository, cache *cache.Client, frontendURL string) Settler {
	return &mockSettler{
		userRepo:   userRepo,
		cache:      cache,
		successURL: frontendURL + "/dashboard?payment=success",
	}
}

func (s *mockSettler) Settle(ctx context.Context, user *model.User, pack model.CreditPack) (string, error) {
	if err := s.userRepo.AddCredits(ctx, user.UserID, pack.Credits); err != nil {
		return "", fmt.Errorf("grant credits: %w", err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(user.UserID))
	metrics.CreditsGranted.WithLabelValues("mock").Add(float64(pack.Credits))
	return s.successURL, nil
}
