package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/pseudomuto/sqlign/pkg/format"
	"github.com/pseudomuto/sqlign/pkg/verify"
	"gopkg.in/yaml.v3"
)

type (
	// Format controls the layout produced by the formatter.
	Format struct {
		// TerminatorOnOwnLine places each statement's ";" on a line of its own
		// instead of appending it to the last clause.
		TerminatorOnOwnLine bool `yaml:"terminator_on_own_line"`

		// CompactPunctuation drops the join space after "(" and function names
		// and before ")" and ",". Defaults to true.
		CompactPunctuation bool `yaml:"compact_punctuation"`
	}

	// Verify configures the optional ClickHouse round trip used by `sqlign check`.
	Verify struct {
		// DSN of a running server, e.g. clickhouse://default:@localhost:9000/default
		DSN string `yaml:"dsn,omitempty"`

		// Version is the ClickHouse image tag used when starting a container
		Version string `yaml:"version,omitempty"`

		// TLS client certificate settings for the DSN connection
		CertFile string `yaml:"cert_file,omitempty"`
		KeyFile  string `yaml:"key_file,omitempty"`
		CAFile   string `yaml:"ca_file,omitempty"`
	}

	// Config represents the sqlign configuration file.
	Config struct {
		// Format contains layout options
		Format Format `yaml:"format"`

		// Verify contains server verification settings
		Verify Verify `yaml:"verify"`
	}
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Format: Format{
			TerminatorOnOwnLine: format.Defaults.TerminatorOnOwnLine,
			CompactPunctuation:  format.Defaults.CompactPunctuation,
		},
		Verify: Verify{Version: consts.DefaultClickHouseVersion},
	}
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// Fields missing from the document keep their defaults, so a file that only
// sets terminator_on_own_line still formats with compact punctuation.
//
// Example:
//
//	yamlData := `
//	format:
//	  terminator_on_own_line: true
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	formatter := format.New(cfg.FormatterOptions())
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal sqlign config")
	}

	if cfg.Verify.Version == "" {
		cfg.Verify.Version = consts.DefaultClickHouseVersion
	}

	return cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// FormatterOptions converts the format section into formatter options.
func (c *Config) FormatterOptions() format.FormatterOptions {
	return format.FormatterOptions{
		TerminatorOnOwnLine: c.Format.TerminatorOnOwnLine,
		CompactPunctuation:  c.Format.CompactPunctuation,
	}
}

// ClientOptions returns the connection settings for the given DSN using the
// TLS files from the verify section.
func (c *Config) ClientOptions(dsn string) verify.ClientOptions {
	return verify.ClientOptions{
		DSN:      dsn,
		CertFile: c.Verify.CertFile,
		KeyFile:  c.Verify.KeyFile,
		CAFile:   c.Verify.CAFile,
	}
}
