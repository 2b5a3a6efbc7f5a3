package trading

// Order sides as encoded by the trading platform
const (
	SideBuy  = 0
	SideSell = 1
)

// Order lifecycle status codes
const (
	StatusOpen           = 10
	StatusPendingPayment = 20
	StatusPaid           = 30
	StatusCompleted      = 40
	StatusCancelled      = 50
	StatusAppealing      = 60
)

// PaymentTerm is a counterparty's declared settlement method for an
// order. Bank name and account number are optional on the wire.
type PaymentTerm struct {
	RealName      string `json:"realName"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNo,omitempty"`
}

// Order is a trade match between two counterparties. The first entry of
// PaymentTermList, when present, is the authoritative settlement
// instruction.
type Order struct {
	ID              string        `json:"id"`
	Side            int           `json:"side"`
	Quantity        string        `json:"quantity"`
	Price           string        `json:"price"`
	TotalPrice      string        `json:"totalPrice"`
	Currency        string        `json:"currency"`
	Asset           string        `json:"asset"`
	Status          int           `json:"status"`
	PaymentTermList []PaymentTerm `json:"paymentTermList"`
	CreateTime      int64         `json:"createTime"`
}

// Ad is a standing buy/sell offer posted by the operator
type Ad struct {
	ID                string `json:"id"`
	Side              int    `json:"side"`
	Price             string `json:"price"`
	Currency          string `json:"currency"`
	Asset             string `json:"asset"`
	AvailableQuantity string `json:"availableQuantity"`
	MinOrderAmount    string `json:"minOrderAmount"`
	MaxOrderAmount    string `json:"maxOrderAmount"`
	Status            int    `json:"status"`
}

// ListOrdersRequest holds pagination and filters for the order list
type ListOrdersRequest struct {
	Page   int  `json:"page"`
	Rows   int  `json:"rows"`
	Side   *int `json:"side,omitempty"`
	Status *int `json:"status,omitempty"`
}

// ListAdsRequest holds pagination and filters for the ad list
type ListAdsRequest struct {
	Page int  `json:"page"`
	Rows int  `json:"rows"`
	Side *int `json:"side,omitempty"`
}

// OrderPage is one page of the order list
type OrderPage struct {
	Count int     `json:"count"`
	Items []Order `json:"items"`
}

// AdPage is one page of the ad list
type AdPage struct {
	Count int  `json:"count"`
	Items []Ad `json:"items"`
}
