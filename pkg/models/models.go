package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// All amounts are integer micro-units of the payment asset, which carries six
// decimal places on chain. 0.05 tokens is therefore 50000 micro.
const (
	// MinTipMicro is the smallest accepted tip (0.001 tokens), inclusive.
	MinTipMicro int64 = 1_000
	// MaxTipMicro is the largest accepted tip (1.0 tokens), inclusive.
	MaxTipMicro int64 = 1_000_000
)

// MaxConfessionLength caps confession content, counted in runes.
const MaxConfessionLength = 1000

// ConfessionGSI1PK is the constant partition key shared by every confession
// row so the listing indexes can sort the whole table.
const ConfessionGSI1PK = "CONFESSION"

// TipRecord is one immutable ledger row for a verified tip.
// Reference is the on-chain transaction hash and is unique across the table;
// rows are never updated or deleted. OwnerAddress is denormalized from the
// confession so user totals can be rebuilt from the ledger alone, and it is
// never serialized to clients.
type TipRecord struct {
	ID           string    `dynamodbav:"id"`
	SubjectID    string    `dynamodbav:"subject_id"`
	PayerAddress string    `dynamodbav:"payer_address"`
	OwnerAddress string    `dynamodbav:"owner_address"`
	AmountMicro  int64     `dynamodbav:"amount_micro"`
	Reference    string    `dynamodbav:"reference"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// Confession carries its own tip aggregates so feed and leaderboard reads
// never touch the ledger. OwnerAddress stays internal on every surface.
type Confession struct {
	ID             string    `dynamodbav:"id"`
	OwnerAddress   string    `dynamodbav:"owner_address"`
	Content        string    `dynamodbav:"content"`
	Category       string    `dynamodbav:"category"`
	Flagged        bool      `dynamodbav:"flagged"`
	TotalTipsMicro int64     `dynamodbav:"total_tips_micro"`
	TipCount       int64     `dynamodbav:"tip_count"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	GSI1PK         string    `dynamodbav:"gsi1pk"`
}

// UserStats is the per-address aggregate row, created on first touch.
type UserStats struct {
	Address                string    `dynamodbav:"address"`
	TotalTipsGivenMicro    int64     `dynamodbav:"total_tips_given_micro"`
	TotalTipsReceivedMicro int64     `dynamodbav:"total_tips_received_micro"`
	ReferralCode           string    `dynamodbav:"referral_code"`
	CreatedAt              time.Time `dynamodbav:"created_at"`
}

var (
	addressRe   = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	referenceRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// NormalizeAddress lowercases a hex address so stored keys and equality
// checks are case-insensitive.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// ValidAddress reports whether s looks like a 20-byte hex address.
func ValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// ValidReference reports whether s looks like a 32-byte transaction hash.
func ValidReference(s string) bool {
	return referenceRe.MatchString(s)
}

// SameAddress compares two hex addresses ignoring case.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// FormatMicro renders a micro amount as a fixed six-decimal string,
// e.g. 50000 -> "0.050000".
func FormatMicro(m int64) string {
	if m < 0 {
		return "-" + FormatMicro(-m)
	}
	return fmt.Sprintf("%d.%06d", m/1_000_000, m%1_000_000)
}

// NewReferralCode returns a short shareable code derived from a fresh UUID.
func NewReferralCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
