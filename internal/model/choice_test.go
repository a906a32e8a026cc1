package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBranchSegment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"TQS-123", "TQS-123"},
		{"Fix the login page", "Fix-the-login-page"},
		{"  tabs\tand  spaces ", "tabs-and-spaces"},
		{"Ünïcode & symbols: (v2)", "ncode--symbols-v2"},
		{"../../etc", "etc"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeBranchSegment(tt.in), tt.in)
	}
}

func TestBranchName(t *testing.T) {
	tests := []struct {
		name  string
		sel   Selection
		style BranchStyle
		want  string
	}{
		{
			name:  "bare key",
			sel:   Selection{Value: "TQS-123", Summary: "Summary A"},
			style: BranchStyleKey,
			want:  "TQS-123",
		},
		{
			name:  "descriptive",
			sel:   Selection{Value: "TQS-123", Summary: "Summary A"},
			style: BranchStyleDescriptive,
			want:  "TQS-123-Summary-A",
		},
		{
			name:  "descriptive without summary",
			sel:   Selection{Value: "TQS-123"},
			style: BranchStyleDescriptive,
			want:  "TQS-123",
		},
		{
			name:  "category prefix",
			sel:   Selection{Value: "TQS-123", Summary: "Summary A", Category: CategoryFeature},
			style: BranchStyleDescriptive,
			want:  "feature/TQS-123-Summary-A",
		},
		{
			name:  "nothing usable",
			sel:   Selection{Value: "???", Summary: "Summary", Category: CategoryTest},
			style: BranchStyleDescriptive,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BranchName(tt.sel, tt.style))
		})
	}
}
