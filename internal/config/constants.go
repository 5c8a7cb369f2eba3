package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./fretlog.db"

	// DefaultBackupDir is the default directory for snapshot backups
	DefaultBackupDir = "./backups"
)
