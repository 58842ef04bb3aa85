package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"github.com/theprojectseo/internal/db"
)

var userFlags struct {
	password string
	dbPath   string
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create an admin account or reset its password",
	Long: `Create an admin account with a bcrypt-hashed password. Running it again
for an existing username resets the password.

Examples:
  theprojectseo user create admin --password 's3cret'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.DatabasePath
		if userFlags.dbPath != "" {
			path = userFlags.dbPath
		}
		conn, err := db.Open(path, gormlogger.Silent)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(conn) }()

		created, err := db.SetPassword(conn, args[0], userFlags.password)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "%s user %s\n", okStyle.Render("created"), args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s password for %s\n", okStyle.Render("updated"), args[0])
		}
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&userFlags.password, "password", "p", "", "account password")
	userCreateCmd.Flags().StringVar(&userFlags.dbPath, "db", "", "sqlite database path (default from DATABASE_PATH)")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
