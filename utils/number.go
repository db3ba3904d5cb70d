package utils

import (
	"strconv"
	"strings"
)

// CleanNumber membersihkan sel angka dari file Excel menjadi integer.
// "Rp 12.500" -> 12500, "-" / "" / teks tanpa digit -> 0.
// Fungsi ini total: input apapun selalu menghasilkan integer yang valid.
func CleanNumber(val string) int {
	strVal := strings.TrimSpace(val)
	if strVal == "" || strVal == "-" {
		return 0
	}

	var b strings.Builder
	for _, r := range strVal {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
