package service

import "cliphive.com/cmd/model"

// Command and query names double as the bus registration keys. Every
// mutation below runs under the transaction middleware; queries do not.

type PublishVideoCommand struct {
	UserId      int64
	VideoId     int64 // from StartUpload; 0 lets the handler allocate one
	Title       string
	Description string
	Visibility  string
	VideoUrl    string
	CoverUrl    string
	ObjectKey   string
}

func (*PublishVideoCommand) CommandName() string { return "PublishVideo" }

type UpdateVideoCommand struct {
	UserId      int64
	VideoId     int64
	Title       *string
	Description *string
	Visibility  *string
}

func (*UpdateVideoCommand) CommandName() string { return "UpdateVideo" }

type SoftDeleteVideoCommand struct {
	UserId  int64
	VideoId int64
}

func (*SoftDeleteVideoCommand) CommandName() string { return "SoftDeleteVideo" }

type AddCommentCommand struct {
	UserId   int64
	VideoId  int64
	ParentId int64 // 0 for a top-level comment
	Content  string
}

func (*AddCommentCommand) CommandName() string { return "AddComment" }

type SoftDeleteCommentCommand struct {
	UserId    int64
	CommentId int64
}

func (*SoftDeleteCommentCommand) CommandName() string { return "SoftDeleteComment" }

type LikeVideoCommand struct {
	UserId  int64
	VideoId int64
}

func (*LikeVideoCommand) CommandName() string { return "LikeVideo" }

type UnlikeVideoCommand struct {
	UserId  int64
	VideoId int64
}

func (*UnlikeVideoCommand) CommandName() string { return "UnlikeVideo" }

type RecordViewCommand struct {
	VideoId int64
	Views   int64 // aggregated count from the view consumer, min 1
}

func (*RecordViewCommand) CommandName() string { return "RecordView" }

type UpdateUserProfileCommand struct {
	UserId int64
	Update model.ProfileUpdate
}

func (*UpdateUserProfileCommand) CommandName() string { return "UpdateUserProfile" }

// CreateUserProfileCommand is normally dispatched nested from
// UpdateUserProfile when the row does not exist yet.
type CreateUserProfileCommand struct {
	UserId int64
}

func (*CreateUserProfileCommand) CommandName() string { return "CreateUserProfile" }

type GetVideoQuery struct {
	VideoId  int64
	CallerId int64 // 0 = anonymous
}

func (*GetVideoQuery) QueryName() string { return "GetVideo" }

type ListFeedQuery struct {
	Cursor string
	Limit  int
}

func (*ListFeedQuery) QueryName() string { return "ListFeed" }

type ListUserVideosQuery struct {
	UserId   int64
	CallerId int64
	Cursor   string
	Limit    int
}

func (*ListUserVideosQuery) QueryName() string { return "ListUserVideos" }

type ListCommentsQuery struct {
	VideoId  int64
	ParentId int64 // 0 = top-level comments
	CallerId int64
	Cursor   string
	Limit    int
}

func (*ListCommentsQuery) QueryName() string { return "ListComments" }

type GetUserProfileQuery struct {
	UserId int64
}

func (*GetUserProfileQuery) QueryName() string { return "GetUserProfile" }

type GetLikeStatusQuery struct {
	UserId  int64
	VideoId int64
}

func (*GetLikeStatusQuery) QueryName() string { return "GetLikeStatus" }
