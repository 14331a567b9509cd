package links

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if strings.ContainsAny(id, "=+/") {
			t.Fatalf("id %q is not unpadded URL-safe base64", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateGroupLink(t *testing.T) {
	cases := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"valid", "https://t.me/yourgroupname", false},
		{"valid with path", "https://t.me/joinchat/AbCdEf", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"wrong host", "https://example.com/group", true},
		{"http scheme", "http://t.me/group", true},
		{"prefix only", "https://t.me/", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGroupLink(tc.link)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.link)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.link, err)
			}
			if err != nil {
				apiErr, ok := err.(APIError)
				if !ok {
					t.Fatalf("expected APIError, got %T", err)
				}
				if apiErr.Code != ErrValidationInvalidLink {
					t.Fatalf("unexpected code %q", apiErr.Code)
				}
			}
		})
	}
}

func TestAPIErrorError(t *testing.T) {
	if got := (APIError{Code: "X", Message: "boom"}).Error(); got != "X: boom" {
		t.Fatalf("unexpected error string %q", got)
	}
	if got := (APIError{Code: "X"}).Error(); got != "X" {
		t.Fatalf("unexpected error string %q", got)
	}
}
