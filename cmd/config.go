package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundlepacks/constants"
)

// Configuration keys, also used as flag names
const (
	keyConfig       = "config"
	keyVerbose      = "verbose"
	keyManifest     = "manifest"
	keyGroups       = "groups"
	keyOutputKey    = "output-key"
	keyDefaultPacks = "default-packs"
	keyTopic        = "topic"
	keyTimeout      = "timeout-seconds"
	keyDryRun       = "dry-run"
)

// CommandConfig holds the configuration shared by the grouping commands
type CommandConfig struct {
	ManifestPath string
	GroupCount   int
	OutputKey    string
	DefaultPacks string
	Topic        string
	Timeout      time.Duration
	DryRun       bool
	Verbose      bool
}

// ParseCommandConfig layers defaults, an optional config file, environment
// variables and flags, in increasing order of precedence.
func ParseCommandConfig(cmd *cobra.Command) (*CommandConfig, error) {
	v := viper.New()

	v.SetDefault(keyManifest, constants.DefaultManifestPath)
	v.SetDefault(keyGroups, constants.DefaultGroupCount)
	v.SetDefault(keyOutputKey, constants.DefaultOutputKey)
	v.SetDefault(keyDefaultPacks, constants.DefaultBundlePacks)
	v.SetDefault(keyTimeout, constants.DefaultPublishTimeoutSeconds)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyDefaultPacks, constants.EnvDefaultBundlePacks); err != nil {
		return nil, err
	}

	for _, key := range []string{keyVerbose, keyManifest, keyGroups, keyOutputKey, keyDefaultPacks, keyTopic, keyTimeout, keyDryRun} {
		flag := cmd.Flags().Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}

	if path, _ := cmd.Flags().GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	defaultPacks := v.GetString(keyDefaultPacks)
	if defaultPacks == "" {
		defaultPacks = constants.DefaultBundlePacks
	}

	outputKey := v.GetString(keyOutputKey)
	if outputKey == "" {
		outputKey = constants.DefaultOutputKey
	}

	return &CommandConfig{
		ManifestPath: v.GetString(keyManifest),
		GroupCount:   v.GetInt(keyGroups),
		OutputKey:    outputKey,
		DefaultPacks: defaultPacks,
		Topic:        v.GetString(keyTopic),
		Timeout:      time.Duration(v.GetInt(keyTimeout)) * time.Second,
		DryRun:       v.GetBool(keyDryRun),
		Verbose:      v.GetBool(keyVerbose),
	}, nil
}

// FallbackConfig is used when the configuration itself cannot be loaded. It
// only honours DEFAULT_BUNDLE_PACKS.
func FallbackConfig() *CommandConfig {
	defaultPacks := os.Getenv(constants.EnvDefaultBundlePacks)
	if defaultPacks == "" {
		defaultPacks = constants.DefaultBundlePacks
	}
	return &CommandConfig{
		ManifestPath: constants.DefaultManifestPath,
		GroupCount:   constants.DefaultGroupCount,
		OutputKey:    constants.DefaultOutputKey,
		DefaultPacks: defaultPacks,
		Timeout:      constants.DefaultPublishTimeout,
	}
}

// AddGroupingFlags adds the flags every grouping command accepts
func AddGroupingFlags(cmd *cobra.Command) {
	cmd.Flags().String(keyManifest, constants.DefaultManifestPath, "Path to the bundle packing manifest")
	cmd.Flags().Int(keyGroups, constants.DefaultGroupCount, "Number of groups to split the packs into")
	cmd.Flags().String(keyDefaultPacks, "", "Grouping used when the manifest cannot be processed (env "+constants.EnvDefaultBundlePacks+")")
}

// AddOutputFlags adds the flags controlling the key=value output line
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String(keyOutputKey, constants.DefaultOutputKey, "Key of the emitted key=value line")
}
