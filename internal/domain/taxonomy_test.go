package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		subCategory string
		want        bool
	}{
		{name: "known pair", category: "Hardware", subCategory: "Printer", want: true},
		{name: "other is valid everywhere", category: "Network", subCategory: "Other", want: true},
		{name: "empty sub-category accepted", category: "Software", subCategory: "", want: true},
		{name: "sub-category from wrong category", category: "Hardware", subCategory: "VPN", want: false},
		{name: "unknown category", category: "Facilities", subCategory: "Other", want: false},
		{name: "empty category", category: "", subCategory: "", want: false},
		{name: "case sensitive", category: "hardware", subCategory: "Printer", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCategory(tt.category, tt.subCategory))
		})
	}
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(TicketPriorityLow))
	assert.True(t, ValidPriority(TicketPriorityMedium))
	assert.True(t, ValidPriority(TicketPriorityHigh))
	assert.False(t, ValidPriority("Critical"))
	assert.False(t, ValidPriority(""))
	assert.False(t, ValidPriority("low"))
}

func TestTicketPatchEmpty(t *testing.T) {
	assert.True(t, TicketPatch{}.Empty())

	remarks := "updated"
	assert.False(t, TicketPatch{Remarks: &remarks}.Empty())

	cleared := ""
	assert.False(t, TicketPatch{StartTime: &cleared}.Empty())
}
