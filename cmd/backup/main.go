package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"storefront/storage"
)

// BackupConfig nutzt dieselben DB_*-Variablen wie der Server.
type BackupConfig struct {
	DBHost          string `envconfig:"DB_HOST" required:"true"`
	DBPort          int    `envconfig:"DB_PORT" default:"5432"`
	DBUser          string `envconfig:"DB_USER" required:"true"`
	DBPassword      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName          string `envconfig:"DB_NAME" required:"true"`
	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" required:"true"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starting backup")

	_ = godotenv.Load()
	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// 1. Datenbank-Dump erstellen
	dumpData, err := createDump(ctx, cfg)
	if err != nil {
		logging.Fatal("Database dump failed", zap.Error(err))
	}

	// 2. S3-Client erstellen
	s3Client, err := storage.NewS3Client(ctx, storage.S3Settings{
		Endpoint:  cfg.BackupEndpoint,
		Region:    cfg.BackupRegion,
		AccessKey: cfg.BackupAccessKey,
		SecretKey: cfg.BackupSecretKey,
	})
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}

	// 3. Backup nach S3 hochladen
	fileName := backupFileName(time.Now())
	if err := storage.UploadFile(ctx, s3Client, cfg.BackupBucket, fileName, dumpData); err != nil {
		logging.Fatal("Backup upload failed", zap.Error(err))
	}
	logging.Info("Backup uploaded", zap.String("bucket", cfg.BackupBucket), zap.String("key", fileName), zap.Int("bytes", len(dumpData)))

	// 4. Alte Backups rotieren
	deleted, err := storage.RotateObjects(ctx, s3Client, cfg.BackupBucket, cfg.KeepBackups)
	if err != nil {
		logging.Fatal("Backup rotation failed", zap.Strings("deleted", deleted), zap.Error(err))
	}
	logging.Info("Backup finished", zap.Strings("rotated", deleted))
}

func backupFileName(now time.Time) string {
	return fmt.Sprintf("storefront-%s.sql.gz", now.UTC().Format("2006-01-02T15-04-05Z"))
}

func createDump(ctx context.Context, cfg BackupConfig) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", cfg.DBHost,
		"-p", fmt.Sprint(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-w", // Passwort wird über PGPASSWORD bereitgestellt
	)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := io.Copy(gzipWriter, stdout); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("pg_dump: %w", err)
	}

	return buf.Bytes(), nil
}
