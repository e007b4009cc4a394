package oss

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"cliphive.com/config"
	"cliphive.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const (
	BucketVideos = "videos"
	BucketCovers = "covers"
)

var minioClient *minio.Client

// Ready reports whether Init has run; callers that treat presigned URLs as
// optional check it instead of panicking on a nil client.
func Ready() bool {
	return minioClient != nil
}

// Init connects the MinIO client and makes sure the buckets exist.
func Init() error {
	c := config.ConfigInfo.Minio
	var err error
	minioClient, err = minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKeyID, c.SecretAccessKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return errors.Wrapf(err, "minio client init failed")
	}

	for _, bucket := range []string{BucketVideos, BucketCovers} {
		exists, err := minioClient.BucketExists(context.Background(), bucket)
		if err != nil {
			return errors.Wrapf(err, "check bucket %s failed", bucket)
		}
		if !exists {
			if err := minioClient.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
				return errors.Wrapf(err, "create bucket %s failed", bucket)
			}
			hlog.Infof("created bucket %s", bucket)
		}
	}
	return nil
}

// UploadSlot is what the upload collaborator hands the client: a presigned
// PUT target plus the object key and final public URL the publish command
// stores. The strings are opaque to everything downstream.
type UploadSlot struct {
	ObjectKey string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

// NewVideoUploadSlot issues a presigned PUT for one video object. The
// object key is namespaced by uploader so keys never collide across users.
func NewVideoUploadSlot(ctx context.Context, userId, videoId int64) (*UploadSlot, error) {
	objectKey := fmt.Sprintf("user_%d/video_%d/video.mp4", userId, videoId)
	return newSlot(ctx, BucketVideos, objectKey)
}

// NewCoverUploadSlot issues a presigned PUT for a video's cover image.
func NewCoverUploadSlot(ctx context.Context, userId, videoId int64) (*UploadSlot, error) {
	objectKey := fmt.Sprintf("user_%d/video_%d/cover.jpg", userId, videoId)
	return newSlot(ctx, BucketCovers, objectKey)
}

func newSlot(ctx context.Context, bucket, objectKey string) (*UploadSlot, error) {
	uploadURL, err := minioClient.PresignedPutObject(ctx, bucket, objectKey, constants.UploadURLExpiry)
	if err != nil {
		return nil, errors.Wrapf(err, "presign put failed, bucket=%s object=%s", bucket, objectKey)
	}
	return &UploadSlot{
		ObjectKey: objectKey,
		UploadURL: uploadURL.String(),
		PublicURL: fmt.Sprintf("%s/%s/%s", config.ConfigInfo.Minio.PublicBaseURL, bucket, objectKey),
		ExpiresAt: time.Now().Add(constants.UploadURLExpiry),
	}, nil
}

// PlaybackURL presigns a GET for a stored video object.
func PlaybackURL(ctx context.Context, objectKey string) (string, error) {
	u, err := minioClient.PresignedGetObject(ctx, BucketVideos, objectKey, constants.PlaybackURLExpiry, url.Values{})
	if err != nil {
		return "", errors.Wrapf(err, "presign get failed, object=%s", objectKey)
	}
	return u.String(), nil
}

// RemoveVideoObjects drops the stored media of a soft-deleted video. The
// database row stays; only the bytes go away.
func RemoveVideoObjects(ctx context.Context, userId, videoId int64) {
	keys := map[string]string{
		BucketVideos: fmt.Sprintf("user_%d/video_%d/video.mp4", userId, videoId),
		BucketCovers: fmt.Sprintf("user_%d/video_%d/cover.jpg", userId, videoId),
	}
	for bucket, key := range keys {
		if err := minioClient.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
			hlog.Warnf("failed to remove %s/%s: %v", bucket, key, err)
		}
	}
}
