// Package verification decides whether a submitted product may go live.
package verification

import (
	"strings"

	"lapak/internal/models"

	"github.com/shopspring/decimal"
)

const (
	VerifiedMessage = "Your product has been verified and is now live!"
	RejectedMessage = "Your product verification failed. Please check the requirements."
)

var (
	MinPrice = decimal.NewFromInt(500)
	MaxPrice = decimal.NewFromInt(1_000_000_000)
)

// Input is the snapshot of a product the rules are applied to.
type Input struct {
	Name          string
	Description   string
	ImageURL      string
	Price         decimal.Decimal
	CategoryCount int64
	TagCount      int64
}

// Result is the outcome of an evaluation.
type Result struct {
	Status  models.VerificationStatus
	Message string
}

// Evaluate applies the verification rules. It has no side effects.
func Evaluate(in Input) Result {
	if passes(in) {
		return Result{Status: models.StatusVerified, Message: VerifiedMessage}
	}
	return Result{Status: models.StatusRejected, Message: RejectedMessage}
}

func passes(in Input) bool {
	return strings.TrimSpace(in.Name) != "" &&
		strings.TrimSpace(in.Description) != "" &&
		strings.TrimSpace(in.ImageURL) != "" &&
		in.CategoryCount >= 1 &&
		in.TagCount >= 1 &&
		in.Price.GreaterThanOrEqual(MinPrice) &&
		in.Price.LessThanOrEqual(MaxPrice)
}
