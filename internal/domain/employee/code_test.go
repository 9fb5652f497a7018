package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextEmployeeCode(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty table", nil, "EMP001"},
		{"sequential", []string{"EMP001", "EMP002", "EMP003"}, "EMP004"},
		{"gaps do not get reused", []string{"EMP001", "EMP007"}, "EMP008"},
		{"unordered input", []string{"EMP010", "EMP002"}, "EMP011"},
		{"foreign codes ignored", []string{"CTR001", "XYZ999", "EMP005"}, "EMP006"},
		{"only foreign codes", []string{"CTR001", "XYZ999"}, "EMP001"},
		{"wide suffix", []string{"EMP000123"}, "EMP124"},
		{"padding stops at three digits", []string{"EMP999"}, "EMP1000"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NextEmployeeCode(c.existing))
		})
	}
}
