package model

import "testing"

func TestValidClaimStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ClaimStatusPending, true},
		{ClaimStatusApproved, true},
		{ClaimStatusRejected, true},
		{"", false},
		{"open", false},
		{"PENDING", false},
	}

	for _, tt := range tests {
		if got := ValidClaimStatus(tt.status); got != tt.expected {
			t.Errorf("ValidClaimStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidItemStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ItemStatusLost, true},
		{ItemStatusClaimed, true},
		{"", false},
		{"found", false},
	}

	for _, tt := range tests {
		if got := ValidItemStatus(tt.status); got != tt.expected {
			t.Errorf("ValidItemStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
