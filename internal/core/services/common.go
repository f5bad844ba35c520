package services

import (
	"fmt"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// validateAmount checks the contract shared by every money-bearing write:
// amounts are strictly positive fixed-point decimals with at most two
// fractional digits.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount must have at most two fractional digits, got %s", apperrors.ErrValidation, amount)
	}
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
