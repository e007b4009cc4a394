package cursor

import (
	"encoding/base64"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Position{
		{CreatedAt: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC), Id: 1},
		{CreatedAt: time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC), Id: 9223372036854775807},
		{CreatedAt: time.Unix(0, 0).UTC(), Id: 0},
		{CreatedAt: time.Date(2030, 12, 31, 23, 59, 59, 999999999, time.UTC), Id: -5},
	}
	for _, want := range cases {
		token := Encode(want)
		got, ok := Decode(token)
		if !ok {
			t.Fatalf("Decode(%q) failed for %+v", token, want)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) || got.Id != want.Id {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestEncodeNormalizesZone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	pos := Position{CreatedAt: time.Date(2024, 6, 1, 20, 0, 0, 0, loc), Id: 7}
	got, ok := Decode(Encode(pos))
	if !ok {
		t.Fatal("decode failed")
	}
	if !got.CreatedAt.Equal(pos.CreatedAt) {
		t.Errorf("zone not normalized: got %v, want instant %v", got.CreatedAt, pos.CreatedAt)
	}
}

func TestDecodeIsTotal(t *testing.T) {
	bad := []string{
		"",
		"not base64!!",
		base64.RawURLEncoding.EncodeToString([]byte("no separator here")),
		base64.RawURLEncoding.EncodeToString([]byte("a\x1fb\x1fc")),
		base64.RawURLEncoding.EncodeToString([]byte("not-a-time\x1f42")),
		base64.RawURLEncoding.EncodeToString([]byte("2024-03-01T12:30:45Z\x1fnot-an-id")),
		base64.RawURLEncoding.EncodeToString([]byte("\x1f")),
	}
	for _, token := range bad {
		if _, ok := Decode(token); ok {
			t.Errorf("Decode(%q) = ok, want failure", token)
		}
	}
}

func TestBeforeOrdering(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := Position{CreatedAt: base.Add(time.Second), Id: 1}
	older := Position{CreatedAt: base, Id: 99}

	if !newer.Before(older) {
		t.Error("newer row should sort before older row")
	}
	if older.Before(newer) {
		t.Error("older row must not sort before newer row")
	}

	t.Run("IdTieBreak", func(t *testing.T) {
		hi := Position{CreatedAt: base, Id: 10}
		lo := Position{CreatedAt: base, Id: 3}
		if !hi.Before(lo) {
			t.Error("higher id should sort first on equal timestamps")
		}
		if lo.Before(hi) {
			t.Error("lower id must not sort first on equal timestamps")
		}
	})
}
