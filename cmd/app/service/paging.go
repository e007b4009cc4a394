package service

import (
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/cursor"
)

// clampLimit mirrors the storage layer's page clamp. Cursor presence is
// decided against the limit the query actually ran with, so an oversized
// request still chains to the next page instead of ending early.
func clampLimit(limit int) int {
	if limit <= 0 || limit > constants.MaxPageSize {
		return constants.DefaultPageSize
	}
	return limit
}

// decodeCursor treats any malformed token as "start from the top" rather
// than failing the whole query; tokens come straight from clients.
func decodeCursor(token string) *cursor.Position {
	if token == "" {
		return nil
	}
	pos, ok := cursor.Decode(token)
	if !ok {
		return nil
	}
	return &pos
}

// nextVideoCursor points at the last row of a full page; a short page is
// the last one. A boundary that does not advance past the requested
// position is dropped, otherwise a client replaying it would loop.
func nextVideoCursor(videos []*model.Video, limit int, prev *cursor.Position) string {
	if len(videos) < limit {
		return ""
	}
	last := videos[len(videos)-1]
	next := cursor.Position{CreatedAt: last.CreatedAt, Id: last.VideoId}
	if prev != nil && !prev.Before(next) {
		return ""
	}
	return cursor.Encode(next)
}

func nextCommentCursor(comments []*model.Comment, limit int, prev *cursor.Position) string {
	if len(comments) < limit {
		return ""
	}
	last := comments[len(comments)-1]
	next := cursor.Position{CreatedAt: last.CreatedAt, Id: last.CommentId}
	if prev != nil && !prev.Before(next) {
		return ""
	}
	return cursor.Encode(next)
}
