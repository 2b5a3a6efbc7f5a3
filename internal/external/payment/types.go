package payment

import "fmt"

// Instruction is a bank-transfer-ready record derived from an order's
// payment term. Field names and constraints follow the payment API's
// schema: account numbers are 10-character NUBANs, the amount is a
// string in minor units (kobo), and the bank code comes from the static
// lookup table.
type Instruction struct {
	BeneficiaryAccountNumber string `json:"BeneficiaryAccountNumber" validate:"required,len=10"`
	BeneficiaryBankCode      string `json:"BeneficiaryBankCode" validate:"required,min=5"`
	Amount                   string `json:"Amount" validate:"required,min=6"`
	ClientAccountNumber      string `json:"ClientAccountNumber" validate:"required,len=10"`
	BeneficiaryName          string `json:"BeneficiaryName" validate:"required"`
	Narration                string `json:"Narration" validate:"required"`
	ClientFeeCharge          string `json:"ClientFeeCharge,omitempty"`
	SenderName               string `json:"SenderName,omitempty"`
}

// Envelope wraps an instruction with the order metadata the payment
// API uses for reconciliation.
type Envelope struct {
	Instruction

	OrderID     string `json:"orderId" validate:"required"`
	PaymentID   string `json:"paymentId" validate:"required"`
	PaymentType string `json:"paymentType" validate:"required"`
}

// Receipt is the decoded application-level outcome of a payment call.
// TransferCount reports how many submitted instructions actually
// transferred; when the upstream omits it, the client fills in the
// submitted count.
type Receipt struct {
	TransferCount int
	Message       string
}

// APIError is a failed payment call: either a non-2xx HTTP status or a
// 200 with an application-level success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment API error (status %d): %s", e.StatusCode, e.Message)
}
