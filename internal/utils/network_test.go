package utils

import (
	"testing"
)

func TestIsIPv4Addr(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"192.168.1.1", true},
		{"10.0.0.0", true},
		{"256.1.1.1", false},
		{"::1", false},
		{"example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsIPv4Addr(tt.value); got != tt.want {
				t.Errorf("Expected IsIPv4Addr(%q)=%v, got %v", tt.value, tt.want, got)
			}
		})
	}
}

func TestIsIPv6Addr(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"::1", true},
		{"fe80::1", true},
		{"192.168.1.1", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsIPv6Addr(tt.value); got != tt.want {
				t.Errorf("Expected IsIPv6Addr(%q)=%v, got %v", tt.value, tt.want, got)
			}
		})
	}
}

func TestIsIPv4CIDR(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"192.168.1.0/24", true},
		{"10.0.0.0/8", true},
		{"192.168.1.1", false},
		{"fe80::/64", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsIPv4CIDR(tt.value); got != tt.want {
				t.Errorf("Expected IsIPv4CIDR(%q)=%v, got %v", tt.value, tt.want, got)
			}
		})
	}
}

func TestExpandCIDR(t *testing.T) {
	ips, err := ExpandCIDR("192.168.1.0/30")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// /30 has 4 addresses; network and broadcast are dropped.
	want := []string{"192.168.1.1", "192.168.1.2"}
	if len(ips) != len(want) {
		t.Fatalf("Expected %d addresses, got %d: %v", len(want), len(ips), ips)
	}
	for i := range want {
		if ips[i] != want[i] {
			t.Errorf("Expected ips[%d]=%q, got %q", i, want[i], ips[i])
		}
	}

	if _, err := ExpandCIDR("not-a-cidr"); err == nil {
		t.Error("Expected error for invalid CIDR")
	}
}

func TestIsFQDN(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"host.example.com", true},
		{"example.com", true},
		{"localhost", false},
		{"192.168.1.1", false},
		{"has space.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsFQDN(tt.value); got != tt.want {
				t.Errorf("Expected IsFQDN(%q)=%v, got %v", tt.value, tt.want, got)
			}
		})
	}
}
