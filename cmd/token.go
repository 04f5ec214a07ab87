package main

import (
	"time"

	"github.com/Triaksa-Space/cookie-notice/middleware"
	"github.com/Triaksa-Space/cookie-notice/utils"
	"github.com/spf13/cobra"
)

var (
	tokenUserID int64
	tokenRoleID int64
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:     "token",
	Short:   "Issue an access token for the admin settings",
	Example: `cookie-notice token --user 1 --role 0 --ttl 24h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		signed, err := utils.GenerateJWT(cfg.JWTSecret, tokenUserID, tokenRoleID, tokenTTL)
		if err != nil {
			return err
		}
		cmd.Println(signed)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Int64VarP(&tokenUserID, "user", "u", 1, "User id")
	tokenCmd.Flags().Int64VarP(&tokenRoleID, "role", "r", middleware.RoleSuperAdmin, "Role id (0 super admin, 2 admin, 1 user)")
	tokenCmd.Flags().DurationVarP(&tokenTTL, "ttl", "t", 24*time.Hour, "Token lifetime")
}
