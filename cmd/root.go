package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/tutor-features/internal/filtering"
	"github.com/spigell/tutor-features/internal/profile"
)

const (
	app       = "tutor-features"
	envPrefix = "TUTOR_FEATURES"
)

// configKeys can also be set through the environment, see envName.
var configKeys = []string{
	"roster",
	"exclude-file",
	"output",
	"skip-filters",
	"filters.competencies",
	"filters.align-competencies",
	"filters.tutor-types",
	"filters.drop-invalid-schedules",
}

type Config struct {
	Rosters     []string       `mapstructure:"roster"`
	ExcludeFile string         `mapstructure:"exclude-file"`
	Output      string         `mapstructure:"output"`
	SkipFilters []string       `mapstructure:"skip-filters"`
	Filters     *FiltersConfig `mapstructure:"filters"`
}

type FiltersConfig struct {
	Competencies         []string `mapstructure:"competencies"`
	AlignCompetencies    bool     `mapstructure:"align-competencies"`
	TutorTypes           []string `mapstructure:"tutor-types"`
	DropInvalidSchedules bool     `mapstructure:"drop-invalid-schedules"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "tutor-features turns learner and tutor profiles into numeric feature vectors",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for _, key := range configKeys {
		if err := viper.BindEnv(key, envName(key)); err != nil {
			log.Fatalf("binding %s environment variable: %v", envName(key), err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is tutor-features.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only extract reads the config file.
	if extractCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Without an explicit --config every setting may come from flags.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

// decodeConfig accepts list keys both as YAML lists and as comma-separated strings.
func decodeConfig(settings map[string]any) (*Config, error) {
	config := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToSliceHookFunc(",")),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, err
	}

	config.Rosters = trimAll(config.Rosters)
	config.SkipFilters = trimAll(config.SkipFilters)
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}
	config.Filters.Competencies = trimAll(config.Filters.Competencies)
	config.Filters.TutorTypes = trimAll(config.Filters.TutorTypes)

	return config, nil
}

func (c *Config) filteringConfig() *filtering.Config {
	cfg := &filtering.Config{ExcludeFile: c.ExcludeFile}
	if c.Filters == nil {
		return cfg
	}

	cfg.Competencies = c.Filters.Competencies
	cfg.AlignCompetencies = c.Filters.AlignCompetencies
	cfg.DropInvalidSchedules = c.Filters.DropInvalidSchedules
	for _, t := range c.Filters.TutorTypes {
		cfg.TutorTypes = append(cfg.TutorTypes, profile.TutorType(t))
	}
	return cfg
}

// envName maps a config key to its variable, e.g. filters.tutor-types to
// TUTOR_FEATURES_FILTERS_TUTOR_TYPES.
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func trimAll(values []string) []string {
	var result []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
