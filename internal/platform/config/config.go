// Package config loads service configuration from an optional config file
// and VITASENSE_-prefixed environment variables, with working defaults so
// the server runs with no configuration at all.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Policy carries the refinement thresholds. They are exposed as
// configuration because they are policy constants, but the defaults are
// the contract and should not be changed without a stated reason.
type Policy struct {
	BMIThreshold   float64
	SleepThreshold float64
}

// Config is the full service configuration.
type Config struct {
	Addr        string // HTTP listen address
	ArtifactDir string // directory holding the trained artifact JSON files
	DBPath      string // assessment history database; empty keeps history in memory
	Watch       bool   // reload the artifact when its files change on disk
	Policy      Policy
}

// Load reads ./config.yaml if present, then overlays environment variables
// (VITASENSE_ADDR, VITASENSE_ARTIFACT_DIR, VITASENSE_POLICY_BMI_THRESHOLD, ...).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("artifact_dir", "./models")
	v.SetDefault("db_path", "./data/assessments.db")
	v.SetDefault("watch", true)
	v.SetDefault("policy.bmi_threshold", 30.0)
	v.SetDefault("policy.sleep_threshold", 8.0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VITASENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return Config{
		Addr:        v.GetString("addr"),
		ArtifactDir: v.GetString("artifact_dir"),
		DBPath:      v.GetString("db_path"),
		Watch:       v.GetBool("watch"),
		Policy: Policy{
			BMIThreshold:   v.GetFloat64("policy.bmi_threshold"),
			SleepThreshold: v.GetFloat64("policy.sleep_threshold"),
		},
	}, nil
}
