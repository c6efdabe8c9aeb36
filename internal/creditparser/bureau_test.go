package creditparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"creditscan/internal/creditparser"
	"creditscan/internal/domain"
)

func TestDetectBureau(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Bureau
	}{
		{"experian", "Experian credit report. Contact Experian.", domain.BureauExperian},
		{"most mentions win", "Equifax Equifax and TransUnion", domain.BureauEquifax},
		{"spaced transunion", "TRANS UNION LLC", domain.BureauTransUnion},
		{"tie goes to precedence order", "Equifax and Experian and TransUnion", domain.BureauTransUnion},
		{"none", "a credit report", domain.BureauUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, creditparser.DetectBureau(tt.text))
		})
	}
}

func TestParseBureau(t *testing.T) {
	assert.Equal(t, domain.BureauTransUnion, domain.ParseBureau("Trans Union"))
	assert.Equal(t, domain.BureauExperian, domain.ParseBureau("EXP"))
	assert.Equal(t, domain.BureauEquifax, domain.ParseBureau(" equifax "))
	assert.Equal(t, domain.BureauUnknown, domain.ParseBureau("innovis"))
	assert.Equal(t, domain.BureauUnknown, domain.ParseBureau(""))
}
