package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/payment"
	"github.com/playerbase/player-api/internal/repository"
)

// PaymentClient is the slice of the payment provider the boost flow needs.
type PaymentClient interface {
	CreatePixPayment(ctx context.Context, req payment.PixRequest) (payment.PixPayment, error)
	GetPayment(ctx context.Context, id string) (payment.PixPayment, error)
}

// BoostPlan fixes the price and duration of one boost tier.
type BoostPlan struct {
	Name        string `json:"name"`
	AmountCents int    `json:"amount_cents"`
	Currency    string `json:"currency"`
	Days        int    `json:"days"`
}

// Plans are fixed server-side; the client only ever names a plan.
var boostPlans = map[string]BoostPlan{
	"basic":   {Name: "basic", AmountCents: 990, Currency: "BRL", Days: 7},
	"premium": {Name: "premium", AmountCents: 1990, Currency: "BRL", Days: 7},
	"vip":     {Name: "vip", AmountCents: 3990, Currency: "BRL", Days: 7},
}

// BoostView is the JSON shape of a boost.
type BoostView struct {
	ID          string `json:"id"`
	PlayerID    string `json:"player_id"`
	Status      string `json:"status"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Provider    string `json:"provider"`
	AmountCents int    `json:"amount_cents"`
	Currency    string `json:"currency"`
	CreatedAt   string `json:"created_at"`
}

// CheckoutResult pairs the new boost with the PIX artifacts the client
// renders for payment.
type CheckoutResult struct {
	Boost        BoostView `json:"boost"`
	PaymentID    string    `json:"payment_id"`
	QRCode       string    `json:"qr_code,omitempty"`
	QRCodeBase64 string    `json:"qr_code_base64,omitempty"`
	TicketURL    string    `json:"ticket_url,omitempty"`
}

// BoostService sells visibility boosts through the payment provider and
// settles them from webhook notifications.
type BoostService struct {
	boosts   repository.BoostStore
	profiles repository.ProfileStore
	users    repository.UserStore
	payments PaymentClient
	log      zerolog.Logger
}

func NewBoostService(boosts repository.BoostStore, profiles repository.ProfileStore,
	users repository.UserStore, payments PaymentClient, log zerolog.Logger) *BoostService {
	return &BoostService{
		boosts:   boosts,
		profiles: profiles,
		users:    users,
		payments: payments,
		log:      log.With().Str("component", "boost").Logger(),
	}
}

// Plans lists the purchasable tiers.
func (s *BoostService) Plans() []BoostPlan {
	return []BoostPlan{boostPlans["basic"], boostPlans["premium"], boostPlans["vip"]}
}

// Checkout creates a scheduled boost for the caller's profile and opens a
// PIX charge for it. The boost stays scheduled until the webhook confirms
// the payment.
func (s *BoostService) Checkout(ctx context.Context, userID, plan string) (CheckoutResult, error) {
	p, ok := boostPlans[plan]
	if !ok {
		return CheckoutResult{}, fmt.Errorf("%w: unknown plan %q", ErrBadRequest, plan)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return CheckoutResult{}, translateLookup(err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return CheckoutResult{}, translateLookup(err)
	}

	now := time.Now().UTC()
	boost, err := s.boosts.Create(ctx, model.Boost{
		PlayerID:    profile.ID,
		Status:      model.BoostStatusScheduled,
		StartsAt:    now,
		EndsAt:      now.AddDate(0, 0, p.Days),
		Provider:    "mercadopago",
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	pay, err := s.payments.CreatePixPayment(ctx, payment.PixRequest{
		AmountCents: p.AmountCents,
		Description: fmt.Sprintf("Boost %s for @%s", p.Name, profile.Username),
		PayerEmail:  user.Email,
		ExternalRef: boost.ID,
	})
	if err != nil {
		// The scheduled boost never activates without a confirmed payment,
		// so a failed charge leaves no visible side effect.
		s.log.Error().Err(err).Str("boost_id", boost.ID).Msg("create payment failed")
		return CheckoutResult{}, err
	}

	externalID := strconv.FormatInt(pay.ID, 10)
	if err := s.boosts.SetExternalID(ctx, boost.ID, externalID); err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{
		Boost:        newBoostView(boost),
		PaymentID:    externalID,
		QRCode:       pay.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: pay.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:    pay.PointOfInteraction.TransactionData.TicketURL,
	}, nil
}

// List returns the caller's boosts, newest first.
func (s *BoostService) List(ctx context.Context, userID string) ([]BoostView, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateLookup(err)
	}
	rows, err := s.boosts.ListByPlayer(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	out := make([]BoostView, 0, len(rows))
	for _, b := range rows {
		out = append(out, newBoostView(b))
	}
	return out, nil
}

// HandlePaymentUpdate settles a boost from a provider notification. The
// payment is re-fetched from the provider so a forged webhook body cannot
// flip a boost; unknown payments and non-final statuses are ignored.
func (s *BoostService) HandlePaymentUpdate(ctx context.Context, paymentID string) error {
	pay, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	boost, err := s.boosts.GetByExternalID(ctx, paymentID)
	if err != nil {
		// Not ours; acknowledge so the provider stops retrying.
		s.log.Warn().Str("payment_id", paymentID).Msg("notification for unknown payment")
		return nil
	}

	var status string
	switch pay.Status {
	case "approved":
		status = model.BoostStatusActive
	case "rejected", "cancelled":
		status = model.BoostStatusCanceled
	default:
		return nil
	}

	if err := s.boosts.SetStatus(ctx, boost.ID, status); err != nil {
		return err
	}
	s.log.Info().Str("boost_id", boost.ID).Str("status", status).Msg("boost settled")
	return nil
}

func newBoostView(b model.Boost) BoostView {
	return BoostView{
		ID:          b.ID,
		PlayerID:    b.PlayerID,
		Status:      b.Status,
		StartsAt:    b.StartsAt.Format(time.RFC3339),
		EndsAt:      b.EndsAt.Format(time.RFC3339),
		Provider:    b.Provider,
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}
