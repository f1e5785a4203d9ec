package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PaynowGateway implements the redirect+poll provider model: initiating a
// charge returns a browser URL plus an opaque poll URL, and status is
// re-queried by polling that URL. Wire format on both legs is URL-encoded
// form data with a SHA-512 hash over the ordered field values.
type PaynowGateway struct {
	IntegrationID  string
	IntegrationKey string
	BaseURL        string
	Client         *http.Client
	Logger         *zap.Logger
}

// NewPaynowGateway creates a Paynow gateway adapter.
func NewPaynowGateway(integrationID, integrationKey, baseURL string, logger *zap.Logger) *PaynowGateway {
	return &PaynowGateway{
		IntegrationID:  integrationID,
		IntegrationKey: integrationKey,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Client:         &http.Client{Timeout: 15 * time.Second},
		Logger:         logger,
	}
}

func (g *PaynowGateway) Name() string { return "paynow" }

// CreateCharge initiates a transaction and returns the browser redirect URL
// and the poll URL as the token to retain.
func (g *PaynowGateway) CreateCharge(ctx context.Context, req ChargeRequest) (*ChargeSession, error) {
	// Paynow expects decimal amounts; conversion from minor units happens
	// only here at the wire edge.
	amount := fmt.Sprintf("%.2f", float64(req.Amount)/100)

	form := url.Values{}
	form.Set("id", g.IntegrationID)
	form.Set("reference", req.Reference)
	form.Set("amount", amount)
	form.Set("additionalinfo", "")
	form.Set("returnurl", req.ReturnURL)
	form.Set("resulturl", req.ReturnURL)
	form.Set("authemail", req.PayerEmail)
	form.Set("status", "Message")
	form.Set("hash", g.hash(g.IntegrationID, req.Reference, amount, "", req.ReturnURL, req.ReturnURL, req.PayerEmail, "Message"))

	values, err := g.post(ctx, g.BaseURL+"/initiatetransaction", form)
	if err != nil {
		return nil, err
	}

	if status := strings.ToLower(values.Get("status")); status != "ok" {
		return nil, fmt.Errorf("paynow rejected charge: %s", values.Get("error"))
	}
	browserURL := values.Get("browserurl")
	pollURL := values.Get("pollurl")
	if browserURL == "" || pollURL == "" {
		return nil, fmt.Errorf("paynow response missing redirect or poll url")
	}

	g.Logger.Info("paynow charge created",
		zap.String("reference", req.Reference),
		zap.String("amount", amount))

	return &ChargeSession{RedirectURL: browserURL, PollToken: pollURL}, nil
}

// CheckStatus polls the transaction and maps Paynow's status vocabulary onto
// the closed result set.
func (g *PaynowGateway) CheckStatus(ctx context.Context, pollURL string) (Status, error) {
	values, err := g.post(ctx, pollURL, url.Values{})
	if err != nil {
		return "", err
	}
	return mapPaynowStatus(values.Get("status")), nil
}

func mapPaynowStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "awaiting delivery", "delivered":
		return StatusPaid
	case "cancelled":
		return StatusCancelled
	case "failed", "disputed", "refunded":
		return StatusFailed
	default:
		// "Created", "Sent" and anything unrecognised: still in flight.
		return StatusAwaiting
	}
}

func (g *PaynowGateway) post(ctx context.Context, endpoint string, form url.Values) (url.Values, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("paynow request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paynow unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paynow response read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paynow returned HTTP %d", resp.StatusCode)
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("paynow response parse: %w", err)
	}
	return values, nil
}

// hash concatenates the field values in wire order with the integration key
// and returns the uppercase SHA-512 digest.
func (g *PaynowGateway) hash(fields ...string) string {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(f)
	}
	sb.WriteString(g.IntegrationKey)
	sum := sha512.Sum512([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
