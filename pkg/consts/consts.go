package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the configuration file looked up in the working directory
	DefaultConfigFile = ".sqlign.yaml"

	// DefaultClickHouseVersion is the server image used when verifying statements in Docker
	DefaultClickHouseVersion = "25.7"

	// SQLExtension is the file extension picked up when formatting directories
	SQLExtension = ".sql"
)
