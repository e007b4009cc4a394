package constants

import "time"

const (
	// MaxCommentLength is the rune limit applied after trimming; longer
	// content is truncated, not rejected.
	MaxCommentLength = 2000

	MaxDisplayNameLength = 50
	MaxBioLength         = 500

	// DeletedCommentPlaceholder replaces the content of a soft-deleted
	// comment. The row and its replies stay where they are.
	DeletedCommentPlaceholder = "[comment deleted]"

	DefaultPageSize = 20
	MaxPageSize     = 100

	// Transaction retry bounds for the top-level execution strategy.
	TxMaxAttempts  = 3
	TxRetryBackoff = 50 * time.Millisecond

	UploadURLExpiry   = 15 * time.Minute
	PlaybackURLExpiry = 30 * time.Minute
)

// Video visibility values as persisted.
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
)
