package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/tutor-features/internal/assessment"
	"github.com/spigell/tutor-features/internal/logger"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Derive learning style and personality from questionnaire answers",
	Run: func(cmd *cobra.Command, _ []string) {
		assess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringP("answers", "a", "", "JSON file with BFI and VARK answers")
	assessCmd.MarkFlagRequired("answers")
}

func assess(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	path, _ := cmd.Flags().GetString("answers")

	answers, err := assessment.LoadAnswers(path)
	if err != nil {
		logger.Fatal("loading answers", zap.Error(err))
	}

	logger.Debug("scoring answers",
		zap.Int("bfi", len(answers.BFI)),
		zap.Int("vark", len(answers.VARK)),
	)

	pretty, err := json.MarshalIndent(answers.Score(), "", "  ")
	if err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}

	fmt.Println(string(pretty))
}
