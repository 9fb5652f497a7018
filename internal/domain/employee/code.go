package employee

import (
	"fmt"
	"regexp"
	"strconv"
)

var generatedCodeRegex = regexp.MustCompile(`^EMP(\d+)$`)

// NextEmployeeCode returns the next auto-generated employee code: the highest
// numeric suffix among existing EMP-prefixed codes plus one, zero-padded to
// three digits. EMP001 when no generated codes exist yet. Codes that don't
// match the EMP prefix are ignored.
func NextEmployeeCode(existing []string) string {
	max := 0
	for _, code := range existing {
		m := generatedCodeRegex.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("EMP%03d", max+1)
}
