package verification_test

import (
	"testing"

	"lapak/internal/models"
	"lapak/internal/verification"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validInput() verification.Input {
	return verification.Input{
		Name:          "x",
		Description:   "y",
		ImageURL:      "/i.png",
		Price:         decimal.NewFromInt(500),
		CategoryCount: 1,
		TagCount:      1,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *verification.Input)
		want   models.VerificationStatus
	}{
		{"all rules met at lower price bound", func(in *verification.Input) {}, models.StatusVerified},
		{"upper price bound", func(in *verification.Input) { in.Price = decimal.NewFromInt(1_000_000_000) }, models.StatusVerified},
		{"fractional price inside band", func(in *verification.Input) { in.Price = decimal.RequireFromString("500.01") }, models.StatusVerified},
		{"price just below band", func(in *verification.Input) { in.Price = decimal.NewFromInt(499) }, models.StatusRejected},
		{"price fraction below band", func(in *verification.Input) { in.Price = decimal.RequireFromString("499.99") }, models.StatusRejected},
		{"price above band", func(in *verification.Input) { in.Price = decimal.NewFromInt(1_000_000_001) }, models.StatusRejected},
		{"no categories", func(in *verification.Input) { in.CategoryCount = 0 }, models.StatusRejected},
		{"no tags", func(in *verification.Input) { in.TagCount = 0 }, models.StatusRejected},
		{"blank name", func(in *verification.Input) { in.Name = "   " }, models.StatusRejected},
		{"blank description", func(in *verification.Input) { in.Description = "\t\n" }, models.StatusRejected},
		{"empty image", func(in *verification.Input) { in.ImageURL = "" }, models.StatusRejected},
		{"several links", func(in *verification.Input) { in.CategoryCount, in.TagCount = 3, 5 }, models.StatusVerified},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.modify(&in)
			got := verification.Evaluate(in)
			assert.Equal(t, tc.want, got.Status)
			if tc.want == models.StatusVerified {
				assert.Equal(t, verification.VerifiedMessage, got.Message)
			} else {
				assert.Equal(t, verification.RejectedMessage, got.Message)
			}
		})
	}
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	in := validInput()
	first := verification.Evaluate(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, verification.Evaluate(in))
	}
}
