package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// POS endpoints
	Directory struct {
		BaseURL        string        `env:"BASE_URL" envDefault:"http://localhost/pos-endpoint"`
		ListPath       string        `env:"LIST_PATH" envDefault:"/getEmployees.php"`
		UpdatePath     string        `env:"UPDATE_PATH" envDefault:"/updateEmployee.php"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
		ExportDir      string        `env:"EXPORT_DIR" envDefault:"."`
		PolicyFile     string        `env:"POLICY_FILE"`
		LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
		LogFile        string        `env:"LOG_FILE"`
	} `envPrefix:"DIRECTORY_"`

	// Session, normally handed over by the login flow
	Session struct {
		Token       string `env:"TOKEN"`
		Role        string `env:"ROLE"`
		EmployeeTag string `env:"EMPLOYEE_TAG"`
		UserName    string `env:"USERNAME"`
	} `envPrefix:"DIRECTORY_"`

	// SFTP delivery of exported files
	SFTP struct {
		Host                  string `env:"HOST"`
		Port                  int    `env:"PORT" envDefault:"22"`
		User                  string `env:"USER"`
		Pass                  string `env:"PASS"`
		Dir                   string `env:"DIR" envDefault:"/outbound"`
		KnownHosts            string `env:"KNOWN_HOSTS"`
		InsecureIgnoreHostKey bool   `env:"INSECURE_IGNORE_HOSTKEY" envDefault:"true"`
	} `envPrefix:"SFTP_"`

	// S3 delivery of exported files
	S3 struct {
		Bucket    string `env:"BUCKET"`
		Region    string `env:"REGION" envDefault:"us-east-1"`
		Endpoint  string `env:"ENDPOINT"`
		Prefix    string `env:"PREFIX"`
		PathStyle bool   `env:"PATH_STYLE" envDefault:"false"`
		AccessKey string `env:"ACCESS_KEY_ID"`
		SecretKey string `env:"SECRET_ACCESS_KEY"`
	} `envPrefix:"S3_"`

	// Local stand-in for the POS endpoints
	Stub struct {
		Addr     string `env:"ADDR" envDefault:":8080"`
		SeedFile string `env:"SEED_FILE"`
	} `envPrefix:"STUB_"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// first error only, keeps the log line readable
			return Config{}, fmt.Errorf("config: %w", aggErr.Errors[0])
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
