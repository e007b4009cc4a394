package cursor

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// Position is a keyset pagination key: creation time first, id breaks ties.
// Feeds are sorted by (created_at DESC, id DESC), so a page boundary stays
// reproducible even when several rows share a timestamp.
type Position struct {
	CreatedAt time.Time
	Id        int64
}

// sep cannot appear in an RFC3339 timestamp or a base-10 integer, so the
// encoded pair always splits back into exactly two fields.
const sep = "\x1f"

// Encode renders pos as an opaque URL-safe token. The timestamp is
// normalized to UTC so tokens round-trip regardless of the server zone.
func Encode(pos Position) string {
	raw := pos.CreatedAt.UTC().Format(time.RFC3339Nano) + sep + strconv.FormatInt(pos.Id, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode. It is total: any malformed
// input (bad base64, wrong field count, unparseable timestamp or id)
// yields ok=false instead of an error, since tokens arrive straight from
// the client.
func Decode(token string) (Position, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Position{}, false
	}
	parts := strings.Split(string(raw), sep)
	if len(parts) != 2 {
		return Position{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return Position{}, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Position{}, false
	}
	return Position{CreatedAt: ts, Id: id}, true
}

// Before reports whether p sorts strictly before other in feed order
// (newer first, higher id first on equal timestamps).
func (p Position) Before(other Position) bool {
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.After(other.CreatedAt)
	}
	return p.Id > other.Id
}
