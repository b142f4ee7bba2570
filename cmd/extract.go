package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/tutor-features/internal/filtering"
	"github.com/spigell/tutor-features/internal/logger"
	"github.com/spigell/tutor-features/internal/profile"
	"github.com/spigell/tutor-features/internal/roster"
)

const (
	PromptPrintVectors        = "Print vectors"
	PromptReportByTutorType   = "Report by tutor type"
	PromptInspectProfile      = "Inspect a profile"
	PromptVectorsToFile       = "Dump vectors to file"
	PromptAppendToExcludeFile = "Append all profiles to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"

	vectorLogLength = 120
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrintVectors, PromptReportByTutorType, PromptInspectProfile, PromptVectorsToFile, PromptAppendToExcludeFile, PromptExit},
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Load profiles, apply filters and extract feature vectors",
	Run: func(cmd *cobra.Command, _ []string) {
		extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringSliceP("roster", "r", nil, "roster JSON file with learners and tutors (repeatable)")
	extractCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do, dump vectors and exit")
	extractCmd.Flags().StringP("exclude-file", "e", "", "special file with profiles to exclude. Default is unset.")
	extractCmd.Flags().StringP("output", "o", "", "file for the vector dump. Default is a temporary file.")
	extractCmd.Flags().StringSlice("skip-filter", nil, "filter step to skip (repeatable)")

	viper.BindPFlag("roster", extractCmd.Flags().Lookup("roster"))
	viper.BindPFlag("exclude-file", extractCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("output", extractCmd.Flags().Lookup("output"))
	viper.BindPFlag("skip-filters", extractCmd.Flags().Lookup("skip-filter"))
}

// extract is the main command for the cli.
func extract(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the tutor-features", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if len(config.Rosters) == 0 {
		logger.Fatal("at least one roster file is required",
			zap.String("hint", "pass --roster or set the 'roster' key in the configuration file"),
		)
	}

	r, err := roster.LoadAll(ctx, config.Rosters)
	if err != nil {
		logger.Fatal("loading rosters", zap.Error(err))
	}

	logger.Info("loaded profiles",
		zap.Int("learners", len(r.Learners)),
		zap.Int("tutors", len(r.Tutors)),
	)

	steps, err := prepareFilters(config)
	if err != nil {
		logger.Fatal("preparing filters", zap.Error(err),
			zap.Strings("known filters", filterNames(steps)),
		)
	}

	r, err = filtering.Run(ctx, config.filteringConfig(), filtering.Deps{Logger: logger}, steps, r)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if r.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no profiles left after filters"))
		return
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		if err := dumpVectors(logger, r.Extract(), config.Output); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current list of profiles", zap.Int("count", r.Len()))

		if err := handleAction(action, logger, config, r); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// prepareFilters returns the default steps with the configured ones disabled.
// The steps are returned even on error so callers can list the known names.
func prepareFilters(config *Config) ([]filtering.Filter, error) {
	steps := filtering.Default()
	for _, name := range config.SkipFilters {
		if err := filtering.DisableByName(steps, name, "skipped by configuration"); err != nil {
			return steps, err
		}
	}
	return steps, nil
}

func filterNames(steps []filtering.Filter) []string {
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.Name())
	}
	return names
}

func handleAction(action string, logger *zap.Logger, config *Config, r *roster.Roster) error {
	switch action {
	case PromptPrintVectors:
		for _, v := range r.Extract().Items {
			logVector(logger, v)
		}
		return nil
	case PromptReportByTutorType:
		pretty, _ := json.MarshalIndent(r.ReportByKind(), "", "  ")
		logger.Info(string(pretty), zap.Int("profiles count", r.Len()))
		return nil
	case PromptInspectProfile:
		return inspect(logger, r)
	case PromptVectorsToFile:
		return dumpVectors(logger, r.Extract(), config.Output)
	case PromptAppendToExcludeFile:
		if err := appendToExcludeFile(logger, config.ExcludeFile, r); err != nil {
			return err
		}
		if r.Len() == 0 {
			logger.Info("exiting", zap.String("reason", "all profiles excluded"))
			return errExit
		}
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func logVector(l *zap.Logger, v *roster.Vector) {
	logger.WithProfile(l, string(v.Kind), v.ID).Info("feature vector",
		zap.Int("dimensions", len(v.Features)),
		zap.String("features", logger.FormatVector(v.Features, vectorLogLength)),
	)
}

func inspect(l *zap.Logger, r *roster.Roster) error {
	for {
		profiles := r.Profiles()

		items := make([]string, 0, len(profiles)+1)
		for _, p := range profiles {
			items = append(items, fmt.Sprintf("%s %s / %d features", p.ID(), p.Kind(), profile.FeatureLen(p)))
		}

		profilePrompt := promptui.Select{
			Label: "Choose a profile and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, _, err := profilePrompt.Run()
		if err != nil {
			return err
		}

		if idx == len(profiles) {
			return nil
		}

		p, tutorType, ok := profileAt(r, idx)
		if !ok {
			return fmt.Errorf("there is no profile at position %d", idx)
		}
		logProfile(l, p, tutorType)
	}
}

// profileAt resolves a position in r.Profiles(). tutorType is empty for learners.
func profileAt(r *roster.Roster, idx int) (*profile.Profile, profile.TutorType, bool) {
	if idx < 0 || idx >= r.Len() {
		return nil, "", false
	}
	if idx < len(r.Learners) {
		return &r.Learners[idx].Profile, "", true
	}
	t := r.Tutors[idx-len(r.Learners)]
	return &t.Profile, t.Type, true
}

func logProfile(l *zap.Logger, p *profile.Profile, tutorType profile.TutorType) {
	issues := make([]string, 0)
	for _, issue := range p.Availability.Issues() {
		issues = append(issues, issue.String())
	}

	fields := []zap.Field{
		zap.Strings("competencies", profile.CompetencyNames(p.Competencies)),
		zap.Strings("competency_filter", p.CompetencyFilter),
		zap.Any("style", p.Style),
		zap.Any("personality", p.Personality),
		zap.Int("ratings", len(p.Ratings)),
		zap.Strings("schedule_issues", issues),
		zap.Float64s("features", p.ExtractFeatures()),
	}
	if tutorType != "" {
		fields = append(fields, zap.String("tutor_type", string(tutorType)))
	}

	logger.WithProfile(l, string(p.Kind()), p.ID()).Info("profile", fields...)
}

func dumpVectors(logger *zap.Logger, vectors *roster.Vectors, output string) error {
	if dims := vectors.Dimensions(); len(dims) > 1 {
		logger.Warn("dumping vectors of different lengths", zap.Ints("dimensions", dims))
	}

	if output != "" {
		if err := vectors.ToFile(output); err != nil {
			return fmt.Errorf("dump vectors to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", output), zap.Int("count", vectors.Len()))
		return nil
	}

	filename, err := vectors.DumpToTmpFile()
	if err != nil {
		return fmt.Errorf("dump vectors to file: %w", err)
	}
	logger.Info("dumping result to file", zap.String("filename", filename), zap.Int("count", vectors.Len()))
	return nil
}

func appendToExcludeFile(logger *zap.Logger, excludeFile string, r *roster.Roster) error {
	if excludeFile == "" {
		logger.Warn("exclude file is not configured", zap.String("hint", "pass --exclude-file or set 'exclude-file'"))
		return nil
	}

	excluded, err := roster.GetExcludedFromFile(excludeFile)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &roster.ExcludedProfiles{}, nil
	}
	if err != nil {
		return err
	}

	excluded.Append(r.ToExcluded())

	if err = excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile))

	r.Exclude(excluded.Refs())
	return nil
}
