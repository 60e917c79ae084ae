package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency memformat angka ke format Rupiah, mis. 18000 -> "Rp 18.000,00".
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	integerPart = strings.TrimPrefix(integerPart, "-")

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := "Rp " + strings.Join(groups, ".") + "," + decimalPart
	if negative {
		result = "-" + result
	}
	return result
}
