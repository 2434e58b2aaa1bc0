// Package payment wraps the MercadoPago REST API for PIX charges.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PixRequest describes one PIX charge to create.
type PixRequest struct {
	AmountCents int
	Description string
	PayerEmail  string
	ExternalRef string
}

// PixPayment is the subset of MercadoPago's payment resource the platform
// uses: the id for webhook correlation, the status, and the PIX artifacts
// the client renders.
type PixPayment struct {
	ID                 int64              `json:"id"`
	Status             string             `json:"status"`
	StatusDetail       string             `json:"status_detail"`
	ExternalReference  string             `json:"external_reference"`
	PointOfInteraction PointOfInteraction `json:"point_of_interaction"`
}

type PointOfInteraction struct {
	TransactionData TransactionData `json:"transaction_data"`
}

type TransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

// Client calls MercadoPago over plain HTTP with a bearer token.
type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
	log         zerolog.Logger
}

func NewClient(baseURL, accessToken string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 15 * time.Second},
		log:         log.With().Str("component", "mercadopago").Logger(),
	}
}

// CreatePixPayment creates a PIX charge. The idempotency key makes retries
// safe against double charging.
func (c *Client) CreatePixPayment(ctx context.Context, req PixRequest) (PixPayment, error) {
	body := map[string]any{
		"transaction_amount": float64(req.AmountCents) / 100,
		"description":        req.Description,
		"payment_method_id":  "pix",
		"external_reference": req.ExternalRef,
		"payer":              map[string]string{"email": req.PayerEmail},
	}
	var out PixPayment
	if err := c.do(ctx, http.MethodPost, "/v1/payments", body, uuid.NewString(), &out); err != nil {
		return PixPayment{}, err
	}
	return out, nil
}

// GetPayment fetches one payment by provider id.
func (c *Client) GetPayment(ctx context.Context, id string) (PixPayment, error) {
	var out PixPayment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+id, nil, "", &out); err != nil {
		return PixPayment{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, idemKey string, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idemKey != "" {
		req.Header.Set("X-Idempotency-Key", idemKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("provider error")
		return fmt.Errorf("mercadopago: %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
