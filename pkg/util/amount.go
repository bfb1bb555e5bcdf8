package util

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// weiPerBNB is 1e18.
var weiPerBNB = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// ParseBNB converts a decimal coin amount like "0.125" to wei.
func ParseBNB(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("empty amount")
	}
	parsed, ok := new(big.Rat).SetString(amount)
	if !ok || parsed.Sign() <= 0 {
		return nil, fmt.Errorf("invalid amount: %v", amount)
	}
	wei := new(big.Rat).Mul(parsed, new(big.Rat).SetInt(weiPerBNB))
	if !wei.IsInt() {
		return nil, fmt.Errorf("amount %v has more than 18 decimal places", amount)
	}
	return wei.Num(), nil
}

// FormatBNB renders wei as a decimal coin amount without trailing zeros.
func FormatBNB(wei *big.Int) string {
	value := new(big.Rat).SetFrac(wei, weiPerBNB)
	out := value.FloatString(18)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}

// ParseSats converts a satoshi amount string to an int64.
func ParseSats(amount string) (int64, error) {
	sats, err := strconv.ParseInt(strings.TrimSpace(amount), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid satoshi amount: %v", amount)
	}
	if sats <= 0 {
		return 0, fmt.Errorf("satoshi amount must be positive: %v", amount)
	}
	return sats, nil
}
