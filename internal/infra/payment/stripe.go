package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// ErrInvalidSignature means the webhook payload failed verification against
// the shared secret. Handlers must fail closed on it.
var ErrInvalidSignature = errors.New("invalid webhook signature")

const EventCheckoutCompleted = "checkout.session.completed"

// LineItem carries the snapshot values the provider needs; UnitPrice is in
// major currency units and converted to cents on the wire.
type LineItem struct {
	Name      string
	UnitPrice float64
	Quantity  int64
}

// Event is the provider-agnostic view of a verified webhook delivery.
type Event struct {
	Type    string
	OrderID string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, orderID uint64) (string, error)
	ParseWebhook(payload []byte, sigHeader string) (*Event, error)
}

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	clientURL     string
}

var _ Gateway = (*StripeGateway)(nil)

func NewStripeGateway(apiKey, webhookSecret, clientURL string) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		clientURL:     clientURL,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, items []LineItem, orderID uint64) (string, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.clientURL + "/payment-successful?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(g.clientURL + "/payment-cancelled"),
	}
	params.Context = ctx

	for _, it := range items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(int64(math.Round(it.UnitPrice * 100))),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params.AddMetadata("orderId", strconv.FormatUint(orderID, 10))

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.ID, nil
}

// ParseWebhook verifies the raw payload bytes against the signature header.
// The payload must not have been re-serialized on the way in.
func (g *StripeGateway) ParseWebhook(payload []byte, sigHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	ev := &Event{Type: string(event.Type)}
	if event.Type == stripe.EventTypeCheckoutSessionCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		ev.OrderID = sess.Metadata["orderId"]
	}
	return ev, nil
}
