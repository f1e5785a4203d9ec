package payment

import (
	"context"
	"fmt"
)

// Status is the closed result set every provider vocabulary maps into.
type Status string

const (
	StatusPaid      Status = "paid"
	StatusAwaiting  Status = "awaiting"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further polling can change the status.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusFailed
}

// ChargeRequest describes a charge to create with a provider. Amount is in
// minor currency units.
type ChargeRequest struct {
	Amount     int64
	Currency   string
	Reference  string
	PayerEmail string
	PayerPhone string
	ReturnURL  string
}

// ChargeSession is the provider's handle for a created charge. Redirect+poll
// providers fill PollToken; hosted-session providers fill SessionID. Either
// one is accepted by CheckStatus of the gateway that produced it.
type ChargeSession struct {
	RedirectURL string
	PollToken   string
	SessionID   string
}

// Token returns whichever provider handle re-queries payment state.
func (s *ChargeSession) Token() string {
	if s.PollToken != "" {
		return s.PollToken
	}
	return s.SessionID
}

// Gateway is the capability set every payment provider adapter implements.
type Gateway interface {
	Name() string
	CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeSession, error)
	CheckStatus(ctx context.Context, token string) (Status, error)
}

// Registry selects gateways by explicit configuration rather than scattered
// provider-name conditionals.
type Registry struct {
	gateways map[string]Gateway
}

// NewRegistry builds a registry over the given gateways.
func NewRegistry(gateways ...Gateway) *Registry {
	m := make(map[string]Gateway, len(gateways))
	for _, g := range gateways {
		m[g.Name()] = g
	}
	return &Registry{gateways: m}
}

// Get returns the gateway registered under name.
func (r *Registry) Get(name string) (Gateway, error) {
	g, ok := r.gateways[name]
	if !ok {
		return nil, fmt.Errorf("unknown payment provider: %s", name)
	}
	return g, nil
}
