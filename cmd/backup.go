package main

import (
	"errors"

	"github.com/Triaksa-Space/cookie-notice/domain/options"
	"github.com/Triaksa-Space/cookie-notice/utils"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the saved notice settings to S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.BackupS3Bucket == "" {
			return errors.New("BACKUP_S3_BUCKET must be set")
		}
		ctx := cmd.Context()

		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		client, err := utils.CreateS3Client(ctx, cfg.AWSRegion)
		if err != nil {
			return err
		}
		key, err := options.NewBackup(client, cfg.BackupS3Bucket, cfg.BackupS3Prefix).Run(ctx, newRepository(b))
		if err != nil {
			return err
		}
		cmd.Println("s3://" + cfg.BackupS3Bucket + "/" + key)
		return nil
	},
}
