package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/p2pdesk/backoffice/internal/external/payment"
	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// ErrNotPayable marks an order that cannot produce a payment
// instruction: no payment term, or no bank-code match.
var ErrNotPayable = errors.New("order has no usable payment term or bank code")

// ValidationFailedError carries the field-level schema violations that
// stopped a single payment.
type ValidationFailedError struct {
	OrderID string
	Errors  []FieldError
}

func (e *ValidationFailedError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("payment data for order %s failed validation: %s", e.OrderID, strings.Join(parts, "; "))
}

// Submitter is the payment API surface the orchestrator needs
type Submitter interface {
	MakeBulkPayment(ctx context.Context, token string, envelopes []payment.Envelope) (*payment.Receipt, error)
	MakePayment(ctx context.Context, token string, envelope payment.Envelope) (*payment.Receipt, error)
}

// Orchestrator drives the transform, validate, filter, submit pipeline
// for both bulk and single payouts.
type Orchestrator struct {
	submitter   Submitter
	transformer *Transformer
	validator   *Validator
	logger      *logger.Logger
}

// NewOrchestrator creates a payment orchestrator
func NewOrchestrator(submitter Submitter, transformer *Transformer, validator *Validator, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		submitter:   submitter,
		transformer: transformer,
		validator:   validator,
		logger:      log.WithField("module", "payments"),
	}
}

// BulkOutcome summarizes one bulk payout call.
// Invariant: Submitted + Discarded == Input.
type BulkOutcome struct {
	Input       int    `json:"input"`
	Submitted   int    `json:"submitted"`
	Discarded   int    `json:"discarded"`
	Transferred int    `json:"transferred"`
	Partial     bool   `json:"partial"`
	Message     string `json:"message,omitempty"`
}

// SingleOutcome summarizes one single payout call
type SingleOutcome struct {
	OrderID     string `json:"orderId"`
	Transferred bool   `json:"transferred"`
	Message     string `json:"message,omitempty"`
}

// PayBulk transforms and validates every order, silently discards the
// unpayable and invalid ones, and submits the rest as one batched call.
// Discards never abort the batch; upstream failures abort this call
// only and are never retried here.
func (o *Orchestrator) PayBulk(ctx context.Context, token string, orders []trading.Order, clientAccountOverride string) (*BulkOutcome, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("no orders to pay")
	}

	candidates := o.transformer.TransformAll(orders, clientAccountOverride)

	valid := make([]payment.Envelope, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate == nil {
			o.logger.WithField("order_id", orders[i].ID).Debug("Order skipped: not payable")
			continue
		}

		result := o.validator.Validate(candidate)
		if !result.Valid {
			o.logger.WithFields(map[string]interface{}{
				"order_id": orders[i].ID,
				"errors":   result.Errors,
			}).Warn("Payment data failed validation, dropped from batch")
			continue
		}

		valid = append(valid, *result.Envelope)
	}

	outcome := &BulkOutcome{
		Input:     len(orders),
		Submitted: len(valid),
		Discarded: len(orders) - len(valid),
	}
	paymentsDiscarded.Add(float64(outcome.Discarded))

	if len(valid) == 0 {
		outcome.Message = "no payable orders in batch"
		o.logger.WithField("input", outcome.Input).Warn("Bulk payment skipped: nothing to submit")
		return outcome, nil
	}

	receipt, err := o.submitter.MakeBulkPayment(ctx, token, valid)
	if err != nil {
		return nil, err
	}

	paymentsSubmitted.Add(float64(outcome.Submitted))
	paymentsTransferred.Add(float64(receipt.TransferCount))

	outcome.Transferred = receipt.TransferCount
	outcome.Partial = receipt.TransferCount < outcome.Submitted
	outcome.Message = receipt.Message

	o.logger.WithFields(map[string]interface{}{
		"input":       outcome.Input,
		"submitted":   outcome.Submitted,
		"discarded":   outcome.Discarded,
		"transferred": outcome.Transferred,
		"partial":     outcome.Partial,
	}).Info("Bulk payment completed")

	return outcome, nil
}

// PaySingle runs the same pipeline for exactly one order and fails
// fast: an unpayable order returns ErrNotPayable, a schema violation
// returns ValidationFailedError with the field errors.
func (o *Orchestrator) PaySingle(ctx context.Context, token string, order trading.Order, clientAccountOverride string) (*SingleOutcome, error) {
	envelope := o.transformer.Transform(order, clientAccountOverride)
	if envelope == nil {
		return nil, fmt.Errorf("order %s: %w", order.ID, ErrNotPayable)
	}

	result := o.validator.Validate(envelope)
	if !result.Valid {
		paymentsDiscarded.Inc()
		return nil, &ValidationFailedError{OrderID: order.ID, Errors: result.Errors}
	}

	receipt, err := o.submitter.MakePayment(ctx, token, *result.Envelope)
	if err != nil {
		return nil, err
	}

	paymentsSubmitted.Inc()
	paymentsTransferred.Add(float64(receipt.TransferCount))

	o.logger.WithFields(map[string]interface{}{
		"order_id":    order.ID,
		"transferred": receipt.TransferCount,
	}).Info("Single payment completed")

	return &SingleOutcome{
		OrderID:     order.ID,
		Transferred: receipt.TransferCount > 0,
		Message:     receipt.Message,
	}, nil
}
