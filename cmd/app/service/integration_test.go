package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// These tests run the full bus + transaction middleware + handlers against
// a real MySQL. Point CLIPHIVE_TEST_MYSQL_DSN at a disposable database to
// enable them.
func setupIntegration(t *testing.T) *App {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}
	dsn := os.Getenv("CLIPHIVE_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("CLIPHIVE_TEST_MYSQL_DSN not set; skipping integration test")
	}

	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&model.Video{}, &model.Comment{}, &model.VideoLike{}, &model.UserProfile{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, table := range []string{"video_likes", "comments", "user_profiles", "videos"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("cleanup of %s failed: %v", table, err)
		}
	}
	db.DB = gdb
	return NewApp(nil)
}

func publishTestVideo(t *testing.T, app *App, userId int64) *model.Video {
	t.Helper()
	res, err := app.Bus.Dispatch(context.Background(), &PublishVideoCommand{
		UserId:     userId,
		Title:      "integration test video",
		Visibility: constants.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("PublishVideo failed: %v", err)
	}
	return res.(*model.Video)
}

func reloadVideo(t *testing.T, videoId int64) *model.Video {
	t.Helper()
	video, err := db.GetVideoById(context.Background(), videoId)
	if err != nil {
		t.Fatalf("reload video failed: %v", err)
	}
	return video
}

func TestCommentLifecycleScenario(t *testing.T) {
	app := setupIntegration(t)
	ctx := context.Background()
	video := publishTestVideo(t, app, 100)

	if video.CommentCount != 0 {
		t.Fatalf("fresh video CommentCount = %d, want 0", video.CommentCount)
	}

	resA, err := app.Bus.Dispatch(ctx, &AddCommentCommand{UserId: 101, VideoId: video.VideoId, Content: "first!"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	commentA := resA.(*model.Comment)
	if got := reloadVideo(t, video.VideoId).CommentCount; got != 1 {
		t.Errorf("CommentCount after first comment = %d, want 1", got)
	}

	resB, err := app.Bus.Dispatch(ctx, &AddCommentCommand{UserId: 102, VideoId: video.VideoId, ParentId: commentA.CommentId, Content: "a reply"})
	if err != nil {
		t.Fatalf("AddComment reply failed: %v", err)
	}
	commentB := resB.(*model.Comment)
	if got := reloadVideo(t, video.VideoId).CommentCount; got != 2 {
		t.Errorf("CommentCount after reply = %d, want 2", got)
	}

	if _, err := app.Bus.Dispatch(ctx, &SoftDeleteCommentCommand{UserId: 101, CommentId: commentA.CommentId}); err != nil {
		t.Fatalf("SoftDeleteComment failed: %v", err)
	}
	if got := reloadVideo(t, video.VideoId).CommentCount; got != 1 {
		t.Errorf("CommentCount after delete = %d, want 1", got)
	}

	gotA, err := db.GetCommentById(ctx, commentA.CommentId)
	if err != nil {
		t.Fatal(err)
	}
	if gotA.Content != constants.DeletedCommentPlaceholder || !gotA.IsDeleted {
		t.Errorf("deleted comment state = %+v", gotA)
	}
	gotB, err := db.GetCommentById(ctx, commentB.CommentId)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.IsDeleted || gotB.Content != "a reply" || gotB.ParentId != commentA.CommentId {
		t.Errorf("reply must survive parent deletion unchanged: %+v", gotB)
	}

	t.Run("RepeatedDeleteDoesNotDecrementAgain", func(t *testing.T) {
		if _, err := app.Bus.Dispatch(ctx, &SoftDeleteCommentCommand{UserId: 101, CommentId: commentA.CommentId}); err != nil {
			t.Fatalf("second delete failed: %v", err)
		}
		if got := reloadVideo(t, video.VideoId).CommentCount; got != 1 {
			t.Errorf("CommentCount after repeated delete = %d, want 1", got)
		}
	})

	t.Run("TotalCountMatchesLiveRows", func(t *testing.T) {
		res, err := app.Bus.Ask(ctx, &ListCommentsQuery{VideoId: video.VideoId})
		if err != nil {
			t.Fatalf("ListComments failed: %v", err)
		}
		page := res.(*CommentPage)
		if page.TotalCount != 1 {
			t.Errorf("TotalCount = %d, want 1 (one live comment after the delete)", page.TotalCount)
		}
	})

	t.Run("RejectCrossVideoReply", func(t *testing.T) {
		other := publishTestVideo(t, app, 100)
		_, err := app.Bus.Dispatch(ctx, &AddCommentCommand{UserId: 103, VideoId: other.VideoId, ParentId: commentB.CommentId, Content: "wrong thread"})
		if err == nil {
			t.Fatal("cross-video reply must be rejected")
		}
	})
}

func TestConcurrentCommenters(t *testing.T) {
	app := setupIntegration(t)
	video := publishTestVideo(t, app, 200)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = app.Bus.Dispatch(context.Background(), &AddCommentCommand{
				UserId:  int64(300 + n),
				VideoId: video.VideoId,
				Content: fmt.Sprintf("concurrent comment %d", n),
			})
		}(i)
	}
	wg.Wait()

	for n, err := range errs {
		if err != nil {
			t.Fatalf("commenter %d failed: %v", n, err)
		}
	}
	if got := reloadVideo(t, video.VideoId).CommentCount; got != 2 {
		t.Errorf("CommentCount after concurrent adds = %d, want exactly 2", got)
	}
}

func TestNestedDispatchRollsBackTogether(t *testing.T) {
	app := setupIntegration(t)
	ctx := context.Background()
	userId := int64(400)

	// The oversize name fails validation after the nested CreateUserProfile
	// already inserted; the rollback must take the nested insert with it.
	tooLong := strings.Repeat("x", constants.MaxDisplayNameLength+1)
	_, err := app.Bus.Dispatch(ctx, &UpdateUserProfileCommand{
		UserId: userId,
		Update: model.ProfileUpdate{DisplayName: &tooLong},
	})
	if err == nil {
		t.Fatal("oversize display name must fail the command")
	}

	if _, err := db.GetUserProfile(ctx, userId); err == nil {
		t.Error("nested profile insert must be rolled back with the outer command")
	}

	t.Run("LazyCreateCommits", func(t *testing.T) {
		name := "valid name"
		res, err := app.Bus.Dispatch(ctx, &UpdateUserProfileCommand{
			UserId: userId,
			Update: model.ProfileUpdate{DisplayName: &name},
		})
		if err != nil {
			t.Fatalf("UpdateUserProfile failed: %v", err)
		}
		if res.(*model.UserProfile).DisplayName != "valid name" {
			t.Errorf("profile = %+v", res)
		}
		if _, err := db.GetUserProfile(ctx, userId); err != nil {
			t.Errorf("profile must exist after commit: %v", err)
		}
	})
}

func TestDuplicateLikeIsConflict(t *testing.T) {
	app := setupIntegration(t)
	ctx := context.Background()
	video := publishTestVideo(t, app, 500)

	if _, err := app.Bus.Dispatch(ctx, &LikeVideoCommand{UserId: 501, VideoId: video.VideoId}); err != nil {
		t.Fatalf("first like failed: %v", err)
	}

	_, err := app.Bus.Dispatch(ctx, &LikeVideoCommand{UserId: 501, VideoId: video.VideoId})
	if !errno.IsConflict(err) {
		t.Errorf("second like must be a conflict, got %v", err)
	}

	count, err := db.GetVideoLikeCount(ctx, video.VideoId)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("like row count = %d, want 1", count)
	}
	if got := reloadVideo(t, video.VideoId).LikeCount; got != 1 {
		t.Errorf("LikeCount = %d, want 1", got)
	}

	t.Run("UnlikeThenGone", func(t *testing.T) {
		if _, err := app.Bus.Dispatch(ctx, &UnlikeVideoCommand{UserId: 501, VideoId: video.VideoId}); err != nil {
			t.Fatalf("unlike failed: %v", err)
		}
		_, err := app.Bus.Dispatch(ctx, &UnlikeVideoCommand{UserId: 501, VideoId: video.VideoId})
		if !errno.IsNotFound(err) {
			t.Errorf("second unlike must be not-found, got %v", err)
		}
	})
}

func TestFeedPagination(t *testing.T) {
	app := setupIntegration(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		publishTestVideo(t, app, 600)
	}

	res, err := app.Bus.Ask(ctx, &ListFeedQuery{Limit: 2})
	if err != nil {
		t.Fatalf("ListFeed failed: %v", err)
	}
	page1 := res.(*VideoPage)
	if len(page1.Videos) != 2 || page1.NextCursor == "" {
		t.Fatalf("page1 = %d videos, cursor %q", len(page1.Videos), page1.NextCursor)
	}

	res, err = app.Bus.Ask(ctx, &ListFeedQuery{Limit: 2, Cursor: page1.NextCursor})
	if err != nil {
		t.Fatalf("ListFeed page 2 failed: %v", err)
	}
	page2 := res.(*VideoPage)
	for _, v1 := range page1.Videos {
		for _, v2 := range page2.Videos {
			if v1.VideoId == v2.VideoId {
				t.Errorf("video %d appeared on both pages", v1.VideoId)
			}
		}
	}
}

// An oversized limit is clamped by the storage layer; the page boundary
// must chain on the clamped size instead of silently ending with rows
// remaining.
func TestFeedPaginationOversizedLimit(t *testing.T) {
	app := setupIntegration(t)
	ctx := context.Background()
	for i := 0; i < constants.MaxPageSize/4; i++ {
		publishTestVideo(t, app, 700)
	}

	res, err := app.Bus.Ask(ctx, &ListFeedQuery{Limit: constants.MaxPageSize + 50})
	if err != nil {
		t.Fatalf("ListFeed failed: %v", err)
	}
	page1 := res.(*VideoPage)
	if len(page1.Videos) != constants.DefaultPageSize {
		t.Fatalf("page1 = %d videos, want clamped %d", len(page1.Videos), constants.DefaultPageSize)
	}
	if page1.NextCursor == "" {
		t.Fatal("full clamped page must carry a next cursor")
	}

	res, err = app.Bus.Ask(ctx, &ListFeedQuery{Limit: constants.MaxPageSize + 50, Cursor: page1.NextCursor})
	if err != nil {
		t.Fatalf("ListFeed page 2 failed: %v", err)
	}
	page2 := res.(*VideoPage)
	if got := len(page1.Videos) + len(page2.Videos); got != constants.MaxPageSize/4 {
		t.Errorf("pages cover %d videos, want all %d", got, constants.MaxPageSize/4)
	}
}

// Cancelling the context after the transaction began must still unwind
// every pending write, and the handler's error stays primary.
func TestCancellationAfterBeginRollsBack(t *testing.T) {
	setupIntegration(t)
	userId := int64(910)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mw := db.TransactionMiddleware(db.NewRetryStrategy())
	handler := mw(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
		if err := db.CreateUserProfile(ctx, model.NewUserProfile(userId)); err != nil {
			return nil, err
		}
		cancel()
		return nil, ctx.Err()
	})

	_, err := handler(ctx, &CreateUserProfileCommand{UserId: userId})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	if _, err := db.GetUserProfile(context.Background(), userId); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("profile row survived a canceled transaction: err=%v", err)
	}
}
