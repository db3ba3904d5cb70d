package utils

import (
	"fmt"
	"strconv"
)

// FormatRupiah memformat angka ke format mata uang Rupiah dengan
// pemisah ribuan. Contoh: 12500 -> "Rp 12.500".
func FormatRupiah(amount int) string {
	if amount < 0 {
		return "-" + FormatRupiah(-amount)
	}

	s := strconv.Itoa(amount)

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, '.')
		}
		result = append(result, digit)
	}

	return fmt.Sprintf("Rp %s", result)
}
