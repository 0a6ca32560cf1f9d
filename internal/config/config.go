// Package config wires viper-backed configuration: flags override
// environment variables (GITPULSE_*), which override the config file,
// which overrides the defaults registered here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved configuration consumed by the CLI.
type Config struct {
	DBPath      string
	Workers     int
	RepoWorkers int
	TaskTimeout time.Duration
	BranchCap   int
	MaxDepth    int
	ExcludeDirs []string
	Author      string

	GeminiAPIKey string
	GeminiModel  string
}

// Init reads configuration. An explicit cfgFile wins; otherwise
// .gitpulse.yaml is searched in the current directory and $HOME. A
// missing config file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gitpulse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("GITPULSE")
	// Hyphenated keys map to underscored env vars:
	// repo-workers <- GITPULSE_REPO_WORKERS.
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db", DefaultDBPath())
	viper.SetDefault("workers", 5)
	viper.SetDefault("repo-workers", 2)
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("branch-cap", 5000)
	viper.SetDefault("depth", 3)
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("author", "")
	viper.SetDefault("gemini-api-key", "")
	viper.SetDefault("gemini-model", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load materializes the resolved configuration.
func Load() *Config {
	return &Config{
		DBPath:       viper.GetString("db"),
		Workers:      viper.GetInt("workers"),
		RepoWorkers:  viper.GetInt("repo-workers"),
		TaskTimeout:  viper.GetDuration("timeout"),
		BranchCap:    viper.GetInt("branch-cap"),
		MaxDepth:     viper.GetInt("depth"),
		ExcludeDirs:  viper.GetStringSlice("exclude"),
		Author:       viper.GetString("author"),
		GeminiAPIKey: viper.GetString("gemini-api-key"),
		GeminiModel:  viper.GetString("gemini-model"),
	}
}

// DefaultDBPath is where the database lives when nothing else is
// configured.
func DefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gitpulse", "gitpulse.db")
	}
	return filepath.Join(homeDir, ".gitpulse", "gitpulse.db")
}
