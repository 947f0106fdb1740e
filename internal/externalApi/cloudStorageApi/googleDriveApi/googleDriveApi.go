package googleDriveApi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"time"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	downloadLinkTemplate = "https://drive.google.com/file/d/%s/view"
	reportsQuery         = "name contains 'portfolio_' and trashed = false"
)

type GoogleDriveApi struct {
	srv *drive.Service
	ttl time.Duration
}

func New(ctx context.Context, cfg *config.Config) *GoogleDriveApi {
	srv, err := drive.NewService(ctx, option.WithCredentialsFile(cfg.GoogleDrive.CredentialsFile))
	if err != nil {
		slog.Error("failed on drive.NewService")
		panic(err)
	}
	return &GoogleDriveApi{srv: srv, ttl: cfg.GoogleDrive.FileTTL}
}

// UploadFile uploads a report and makes it readable by anyone with the link.
func (a *GoogleDriveApi) UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "GoogleDriveApi.UploadFile"

	slog.Debug("UploadFile start", slog.String("rqID", rqID), slog.String("op", op), slog.String("filename", filename))

	fileMeta := &drive.File{
		Name:     filename,
		MimeType: mime.TypeByExtension(filepath.Ext(filename)),
	}

	uploadedFile, err := a.srv.Files.
		Create(fileMeta).
		Media(reader). // chunked upload, network errors are retried by the client
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("failed on uploading file to google drive", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	perm := &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}

	_, err = a.srv.Permissions.Create(uploadedFile.Id, perm).Context(ctx).Do()
	if err != nil {
		slog.Error("failed on creating permission to uploaded file in google drive", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	slog.Debug("UploadFile completed", slog.String("rqID", rqID), slog.String("op", op), slog.String("fileID", uploadedFile.Id))

	return fmt.Sprintf(downloadLinkTemplate, uploadedFile.Id), nil
}

// DeleteOldFiles deletes uploaded reports older than the configured retention.
func (a *GoogleDriveApi) DeleteOldFiles(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "GoogleDriveApi.DeleteOldFiles"

	slog.Debug("DeleteOldFiles start", slog.String("rqID", rqID), slog.String("op", op))

	deadline := time.Now().Add(-a.ttl)
	totalFiles, deletedFiles := 0, 0

	err := a.srv.Files.List().
		Q(reportsQuery).
		Fields("nextPageToken, files(id, name, createdTime)").
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				totalFiles++
				if !expired(f.CreatedTime, deadline) {
					continue
				}
				if err := a.srv.Files.Delete(f.Id).Context(ctx).Do(); err != nil {
					slog.Error(
						"failed delete file",
						slog.String("rqID", rqID),
						slog.String("op", op),
						slog.String("err", err.Error()),
						slog.String("fileID", f.Id),
					)
					continue
				}
				deletedFiles++
			}
			return nil
		})
	if err != nil {
		slog.Error("failed on listing files", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	slog.Info("delete old files done", slog.String("rqID", rqID), slog.Int("deletedFiles", deletedFiles), slog.Int("remainingFiles", totalFiles-deletedFiles))

	return nil
}

func expired(createdTime string, deadline time.Time) bool {
	created, err := time.Parse(time.RFC3339, createdTime)
	if err != nil {
		slog.Warn("failed parse file createdTime", slog.String("createdTime", createdTime))
		return false
	}
	return created.Before(deadline)
}
