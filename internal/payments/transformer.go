// Package payments turns trading orders into bank-transfer
// instructions, validates them against the payment API schema, and
// orchestrates bulk and single payouts.
package payments

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/p2pdesk/backoffice/internal/banks"
	"github.com/p2pdesk/backoffice/internal/external/payment"
	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/pkg/config"
)

// PaymentType tags every envelope produced by this service
const PaymentType = "bank_transfer"

// Transformer maps orders to payment instruction envelopes.
// The bank table is injected once and treated as immutable.
type Transformer struct {
	banks         *banks.Table
	clientAccount string
	senderName    string
	feeCharge     string
	now           func() time.Time
}

// NewTransformer creates a transformer with the desk's payout defaults
func NewTransformer(table *banks.Table, payout config.PayoutConfig) *Transformer {
	return &Transformer{
		banks:         table,
		clientAccount: payout.ClientAccountNumber,
		senderName:    payout.SenderName,
		feeCharge:     payout.ClientFeeCharge,
		now:           time.Now,
	}
}

// WithClock replaces the time source. Tests pin the narration date.
func (t *Transformer) WithClock(now func() time.Time) *Transformer {
	t.now = now
	return t
}

// Transform derives a payment envelope from one order. It returns nil
// when the order has no payment term or its bank name has no code
// entry; callers filter nils and count them as discarded.
// clientAccountOverride, when non-empty, replaces the configured
// originating account.
func (t *Transformer) Transform(order trading.Order, clientAccountOverride string) *payment.Envelope {
	if len(order.PaymentTermList) == 0 {
		return nil
	}

	// First payment term is the authoritative settlement instruction
	term := order.PaymentTermList[0]

	bankCode, ok := t.banks.Lookup(term.BankName)
	if !ok {
		// Cannot route a payment without a bank code
		return nil
	}

	clientAccount := t.clientAccount
	if clientAccountOverride != "" {
		clientAccount = clientAccountOverride
	}

	amount, ok := minorUnits(order.TotalPrice)
	if !ok {
		// Leave the amount empty so schema validation rejects the
		// envelope and the order is counted as discarded, keeping
		// positional correspondence intact.
		amount = ""
	}

	return &payment.Envelope{
		Instruction: payment.Instruction{
			BeneficiaryAccountNumber: term.AccountNumber,
			BeneficiaryBankCode:      bankCode,
			Amount:                   amount,
			ClientAccountNumber:      clientAccount,
			BeneficiaryName:          term.RealName,
			Narration:                fmt.Sprintf("Payment for goods on %s", t.now().Format("January 2, 2006")),
			ClientFeeCharge:          t.feeCharge,
			SenderName:               t.senderName,
		},
		OrderID:     order.ID,
		PaymentID:   uuid.NewString(),
		PaymentType: PaymentType,
	}
}

// TransformAll maps a sequence of orders, preserving positional
// correspondence: the result has the same length and order as the
// input, with nil marking orders that cannot be paid.
func (t *Transformer) TransformAll(orders []trading.Order, clientAccountOverride string) []*payment.Envelope {
	envelopes := make([]*payment.Envelope, len(orders))
	for i, order := range orders {
		envelopes[i] = t.Transform(order, clientAccountOverride)
	}
	return envelopes
}

// minorUnits converts a decimal major-unit amount ("150000.50") to a
// minor-unit string ("15000050"). String arithmetic avoids float
// rounding on money values.
func minorUnits(amount string) (string, bool) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(amount), ".")
	if whole == "" {
		return "", false
	}

	for _, r := range whole {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return "", false
		}
	}

	// Normalize to exactly two decimal places (kobo). More precision
	// than the minor unit cannot be represented; rejecting routes the
	// order into the discard path instead of silently shaving value.
	switch {
	case len(frac) == 0:
		frac = "00"
	case len(frac) == 1:
		frac += "0"
	case len(frac) > 2:
		return "", false
	}

	combined := strings.TrimLeft(whole+frac, "0")
	if combined == "" {
		return "", false
	}

	return combined, true
}
