package config

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/m-mizutani/gasession/internal"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = internal.Logger

const (
	defaultRegion          = "ap-northeast-1"
	defaultFormat          = adaptor.FormatJSON
	defaultSessionKeyIndex = 5
	defaultUserAgentIndex  = 30
)

// S3Location is bucket and prefix of input or output objects.
type S3Location struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// Object converts S3Location to S3Object as a prefix.
func (x S3Location) Object() models.S3Object {
	return models.NewS3Object(x.Region, x.Bucket, x.Prefix)
}

// AthenaConfig is settings to add partitions of output tables.
type AthenaConfig struct {
	Region   string `yaml:"region"`
	Database string `yaml:"database"`
	Output   string `yaml:"output"`
}

// VisitorConfig is settings of full visitor ID resolution. Hashing is
// disabled if CredentialsFile is empty.
type VisitorConfig struct {
	Region          string `yaml:"region"`
	TableName       string `yaml:"table_name"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Config is settings of a batch run.
type Config struct {
	Source      S3Location    `yaml:"source"`
	Destination S3Location    `yaml:"destination"`
	Athena      AthenaConfig  `yaml:"athena"`
	Visitor     VisitorConfig `yaml:"visitor"`

	NotifyQueueURL string `yaml:"notify_queue_url"`

	// Filter is jq expression to select hits. Empty means default filter.
	Filter  string `yaml:"filter"`
	Format  string `yaml:"format"`
	Workers int    `yaml:"workers"`

	SkipBots        bool `yaml:"skip_bots"`
	SessionKeyIndex int  `yaml:"session_key_index"`
	UserAgentIndex  int  `yaml:"user_agent_index"`
}

// Load reads YAML config file. ${VAR} in the file is replaced with environment
// variable before parsing.
func Load(filePath string) (*Config, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to read config file: %s", filePath)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to load config file: %s", filePath)
	}

	logger.WithField("path", filePath).Debug("Loaded config")
	return cfg, nil
}

// Parse decodes YAML config and applies default values.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, errors.Wrap(err, "Fail to parse config")
	}

	cfg.setDefault()
	return &cfg, nil
}

func (x *Config) setDefault() {
	for _, region := range []*string{&x.Source.Region, &x.Destination.Region, &x.Athena.Region, &x.Visitor.Region} {
		if *region == "" {
			*region = defaultRegion
		}
	}

	if x.Format == "" {
		x.Format = defaultFormat
	}
	if x.SessionKeyIndex <= 0 {
		x.SessionKeyIndex = defaultSessionKeyIndex
	}
	if x.UserAgentIndex <= 0 {
		x.UserAgentIndex = defaultUserAgentIndex
	}
}

// Validate checks required settings.
func (x *Config) Validate() error {
	if x.Source.Bucket == "" {
		return errors.New("source.bucket is required")
	}
	if x.Destination.Bucket == "" {
		return errors.New("destination.bucket is required")
	}
	if x.Athena.Database != "" && !strings.HasPrefix(x.Athena.Output, "s3://") {
		return errors.New("athena.output must be s3:// path if athena.database is set")
	}
	if _, _, err := adaptor.LookupFormat(x.Format); err != nil {
		return err
	}

	return nil
}
