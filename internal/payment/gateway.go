// Package payment wraps the external bail payment gateway. The engine only
// hands the gateway a reference and an amount and receives a redirect URL;
// the gateway later calls back with the reference to confirm payment.
package payment

import (
	"context"
	"fmt"
	"net/url"
)

// Gateway is the external payment collaborator.
type Gateway interface {
	// InitiatePayment registers a payment intent and returns the URL the
	// payer is redirected to. It does not change any bail state.
	InitiatePayment(ctx context.Context, reference string, amount int64) (string, error)
}

// RedirectGateway builds redirect URLs against a configured gateway origin.
// The sandbox origin of the provider works the same way as production, which
// makes this usable in development without further wiring.
type RedirectGateway struct {
	baseURL string
}

func NewRedirectGateway(baseURL string) *RedirectGateway {
	return &RedirectGateway{baseURL: baseURL}
}

func (g *RedirectGateway) InitiatePayment(_ context.Context, reference string, amount int64) (string, error) {
	query := url.Values{}
	query.Set("ref", reference)
	query.Set("amount", fmt.Sprintf("%d", amount))
	return fmt.Sprintf("%s/pay?%s", g.baseURL, query.Encode()), nil
}
