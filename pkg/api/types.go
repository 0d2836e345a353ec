package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewConfession is the request body for posting a confession.
type NewConfession struct {
	OwnerAddress string `json:"ownerAddress"`
	Content      string `json:"content"`
}

// Confession is the public view of a confession. The owner address is
// deliberately absent: confessions stay anonymous on every surface.
type Confession struct {
	Id             openapi_types.UUID `json:"id"`
	Content        string             `json:"content"`
	Category       string             `json:"category"`
	TotalTips      string             `json:"totalTips"`
	TotalTipsMicro int64              `json:"totalTipsMicro"`
	TipCount       int64              `json:"tipCount"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NewTip is the request body for recording a verified tip. The reference is
// the hash of the on-chain payment transaction.
type NewTip struct {
	PayerAddress string `json:"payerAddress"`
	Reference    string `json:"reference"`
}

// Tip is the public view of one ledger row.
type Tip struct {
	Id           openapi_types.UUID `json:"id"`
	SubjectId    openapi_types.UUID `json:"subjectId"`
	PayerAddress string             `json:"payerAddress"`
	Amount       string             `json:"amount"`
	AmountMicro  int64              `json:"amountMicro"`
	Reference    string             `json:"reference"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// TipReceipt is returned when a tip is admitted: the new ledger row plus the
// subject's refreshed aggregates.
type TipReceipt struct {
	Tip        Tip        `json:"tip"`
	Confession Confession `json:"confession"`
}

// UserStats is the public aggregate view for one address.
type UserStats struct {
	Address           string    `json:"address"`
	TotalTipsGiven    string    `json:"totalTipsGiven"`
	TotalTipsReceived string    `json:"totalTipsReceived"`
	TipsGivenMicro    int64     `json:"tipsGivenMicro"`
	TipsReceivedMicro int64     `json:"tipsReceivedMicro"`
	ReferralCode      string    `json:"referralCode"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Error is the uniform error envelope.
type Error struct {
	Error             string `json:"error"`
	RetryAfterSeconds *int64 `json:"retryAfterSeconds,omitempty"`
}
