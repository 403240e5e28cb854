package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/backup"
	"github.com/mokemoke0821/aoba-meal-app-sub000/pkg/logger"
)

// ExportBackup snapshots the current collections into one JSON
// document, stamps the backup config's last-run time and, when
// enabled, pushes a copy to object storage. The upload is best-effort:
// a failure is logged and the local export still succeeds.
func ExportBackup() ([]byte, string, error) {
	now := time.Now()
	data, filename, err := backup.Export(AppState.Users(), AppState.Records(), AppState.Menu(), now)
	if err != nil {
		return nil, "", err
	}

	cfg := AppState.BackupConfig()
	cfg.LastRun = now.Format(time.RFC3339)
	AppState.SetBackupConfig(cfg)

	if cfg.UploadEnabled {
		if url, err := UploadBackup(filename, data); err != nil {
			logger.Log.Warn("バックアップのアップロードに失敗しました", zap.Error(err))
		} else {
			logger.Log.Info("バックアップをアップロードしました", zap.String("url", url))
		}
	}

	return data, filename, nil
}

// RestoreBackup validates the uploaded document and, only if valid,
// replaces the persisted collections wholesale and reloads the state
// container. Any parse failure leaves both the store and the
// in-memory state untouched.
func RestoreBackup(data []byte) error {
	payload, err := backup.Parse(data)
	if err != nil {
		return err
	}
	if err := backup.Restore(AppStore, payload); err != nil {
		return err
	}
	return AppState.Reload()
}
