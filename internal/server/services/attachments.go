package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/logging"
	sc "github.com/dmitrijs2005/taskio/internal/server/config"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// AttachmentService stores files attached to tasks in S3-compatible storage.
// Clients upload and download directly through presigned URLs; the server
// only keeps metadata.
type AttachmentService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewAttachmentService(db *sqlx.DB, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("module", "attachments"),
	}
}

// GetRandomStorageKey returns a fresh object key partitioned by date.
func GetRandomStorageKey() string {
	d := timeNow()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *AttachmentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// RequestUpload registers a pending attachment on the owner's task and
// returns a presigned PUT URL for its content.
func (s *AttachmentService) RequestUpload(ctx context.Context, ownerID, taskID, fileName string) (*models.UploadTicket, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}
	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, common.Validationf("file name is required")
	}

	if _, err := s.repomanager.Tasks(s.db).Get(ctx, ownerID, taskID); err != nil {
		return nil, hideTask(ctx, s.logger, "request upload", err)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, hide(ctx, s.logger, "presign client", err)
	}

	key := GetRandomStorageKey()
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, hide(ctx, s.logger, "presign put", err)
	}

	a, err := s.repomanager.Attachments(s.db).Create(ctx, &models.Attachment{
		TaskID:       taskID,
		UserID:       ownerID,
		FileName:     fileName,
		StorageKey:   key,
		UploadStatus: models.UploadPending,
	})
	if err != nil {
		return nil, hide(ctx, s.logger, "create attachment", err)
	}

	return &models.UploadTicket{AttachmentID: a.ID, URL: req.URL}, nil
}

// MarkUploaded flags the attachment as completely uploaded.
func (s *AttachmentService) MarkUploaded(ctx context.Context, ownerID, attachmentID string) error {
	if err := validateOwner(ownerID); err != nil {
		return err
	}
	if _, err := uuid.Parse(attachmentID); err != nil {
		return common.Validationf("malformed attachment id %q", attachmentID)
	}
	if err := s.repomanager.Attachments(s.db).MarkUploaded(ctx, ownerID, attachmentID); err != nil {
		return hideTask(ctx, s.logger, "mark uploaded", err)
	}
	return nil
}

// ErrUploadPending is returned when a download is requested before the
// content has been uploaded.
var ErrUploadPending = fmt.Errorf("%w: upload not completed", common.ErrValidation)

// DownloadURL returns a presigned GET URL for a completed attachment.
func (s *AttachmentService) DownloadURL(ctx context.Context, ownerID, attachmentID string) (string, error) {
	if err := validateOwner(ownerID); err != nil {
		return "", err
	}
	if _, err := uuid.Parse(attachmentID); err != nil {
		return "", common.Validationf("malformed attachment id %q", attachmentID)
	}

	a, err := s.repomanager.Attachments(s.db).Get(ctx, ownerID, attachmentID)
	if err != nil {
		return "", hideTask(ctx, s.logger, "get attachment", err)
	}
	if a.UploadStatus != models.UploadCompleted {
		return "", ErrUploadPending
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", hide(ctx, s.logger, "presign client", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(a.StorageKey),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", hide(ctx, s.logger, "presign get", err)
	}
	return req.URL, nil
}

// ListAttachments returns the attachments of the owner's task.
func (s *AttachmentService) ListAttachments(ctx context.Context, ownerID, taskID string) ([]*models.Attachment, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Tasks(s.db).Get(ctx, ownerID, taskID); err != nil {
		return nil, hideTask(ctx, s.logger, "list attachments", err)
	}
	list, err := s.repomanager.Attachments(s.db).ListForTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, hide(ctx, s.logger, "list attachments", err)
	}
	if list == nil {
		list = []*models.Attachment{}
	}
	return list, nil
}
