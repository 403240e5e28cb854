package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"github.com/mokemoke0821/aoba-meal-app-sub000/config"
)

// UploadBackup pushes an exported backup document to the configured
// OSS bucket and returns its public URL. Object keys are prefixed by
// year/month with a uuid so repeated exports never collide.
func UploadBackup(filename string, data []byte) (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.OSSEndpoint == "" || cfg.OSSBucketName == "" {
		return "", fmt.Errorf("object storage is not configured")
	}

	client, err := oss.New(
		cfg.OSSEndpoint,
		cfg.OSSAccessKeyID,
		cfg.OSSAccessKeySecret,
		oss.Timeout(60, 120),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create OSS client: %v", err)
	}

	bucket, err := client.Bucket(cfg.OSSBucketName)
	if err != nil {
		return "", fmt.Errorf("failed to get bucket: %v", err)
	}

	now := time.Now()
	objectKey := fmt.Sprintf("backups/%d/%02d/%s_%s",
		now.Year(), now.Month(), uuid.New().String(), filename)

	if err := bucket.PutObject(objectKey, bytes.NewReader(data)); err != nil {
		// Backups are small; one retry covers transient network errors.
		if err = bucket.PutObject(objectKey, bytes.NewReader(data)); err != nil {
			return "", fmt.Errorf("upload failed after retry: %v", err)
		}
	}

	endpoint := cfg.OSSEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "https://" + endpoint
	}
	parts := strings.SplitN(endpoint, "://", 2)
	return fmt.Sprintf("%s://%s.%s/%s", parts[0], cfg.OSSBucketName, parts[1], objectKey), nil
}
