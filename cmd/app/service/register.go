package service

import "cliphive.com/pkg/bus"

// RegisterAll binds every use case to the bus. Handler names must match
// the CommandName/QueryName of the request types in commands.go. The
// service instances are the caller's; the registered handlers and the
// App fields are the same objects.
func RegisterAll(b *bus.Bus, videos *VideoService, interactions *InteractionService, profiles *ProfileService) {
	b.RegisterCommand((&PublishVideoCommand{}).CommandName(), videos.PublishVideo)
	b.RegisterCommand((&UpdateVideoCommand{}).CommandName(), videos.UpdateVideo)
	b.RegisterCommand((&SoftDeleteVideoCommand{}).CommandName(), videos.SoftDeleteVideo)
	b.RegisterCommand((&AddCommentCommand{}).CommandName(), interactions.AddComment)
	b.RegisterCommand((&SoftDeleteCommentCommand{}).CommandName(), interactions.SoftDeleteComment)
	b.RegisterCommand((&LikeVideoCommand{}).CommandName(), interactions.LikeVideo)
	b.RegisterCommand((&UnlikeVideoCommand{}).CommandName(), interactions.UnlikeVideo)
	b.RegisterCommand((&RecordViewCommand{}).CommandName(), interactions.RecordView)
	b.RegisterCommand((&UpdateUserProfileCommand{}).CommandName(), profiles.UpdateUserProfile)
	b.RegisterCommand((&CreateUserProfileCommand{}).CommandName(), profiles.CreateUserProfile)

	b.RegisterQuery((&GetVideoQuery{}).QueryName(), videos.GetVideo)
	b.RegisterQuery((&ListFeedQuery{}).QueryName(), videos.ListFeed)
	b.RegisterQuery((&ListUserVideosQuery{}).QueryName(), videos.ListUserVideos)
	b.RegisterQuery((&ListCommentsQuery{}).QueryName(), interactions.ListComments)
	b.RegisterQuery((&GetUserProfileQuery{}).QueryName(), profiles.GetUserProfile)
	b.RegisterQuery((&GetLikeStatusQuery{}).QueryName(), interactions.GetLikeStatus)
}
