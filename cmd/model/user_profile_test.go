package model

import (
	"strings"
	"testing"
)

func strptr(s string) *string { return &s }

func TestProfileApply(t *testing.T) {
	p := NewUserProfile(42)

	if err := p.Apply(ProfileUpdate{DisplayName: strptr("  Neo  "), Bio: strptr("hi"), SteamUrl: strptr(" https://steamcommunity.com/id/neo ")}); err != nil {
		t.Fatal(err)
	}
	if p.DisplayName != "Neo" || p.Bio != "hi" || p.SteamUrl != "https://steamcommunity.com/id/neo" {
		t.Errorf("fields not applied/trimmed: %+v", p)
	}

	t.Run("NilLeavesFieldAlone", func(t *testing.T) {
		if err := p.Apply(ProfileUpdate{Bio: strptr("new bio")}); err != nil {
			t.Fatal(err)
		}
		if p.DisplayName != "Neo" {
			t.Error("nil field must stay untouched")
		}
	})

	t.Run("OversizeRejected", func(t *testing.T) {
		if err := p.Apply(ProfileUpdate{DisplayName: strptr(strings.Repeat("x", 51))}); err == nil {
			t.Error("oversize display name must be rejected")
		}
		if err := p.Apply(ProfileUpdate{Bio: strptr(strings.Repeat("x", 501))}); err == nil {
			t.Error("oversize bio must be rejected")
		}
	})
}
