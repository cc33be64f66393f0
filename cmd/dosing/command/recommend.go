package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tidepool-org/dosing/api"
	"github.com/tidepool-org/dosing/dosing"
	"github.com/tidepool-org/dosing/snapshot"
)

var snapshotPath string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Evaluate a snapshot",
	Long:  "The recommend command evaluates a JSON snapshot file and prints the recommendation",
}

var recommendTempBasalCmd = &cobra.Command{
	Use:   "temp-basal",
	Short: "Recommend a temp basal",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(recommendTempBasal) },
}

var recommendBolusCmd = &cobra.Command{
	Use:   "bolus",
	Short: "Recommend a bolus",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(recommendBolus) },
}

var recommendMicrobolusCmd = &cobra.Command{
	Use:   "microbolus",
	Short: "Recommend a microbolus with its low temp",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(recommendMicrobolus) },
}

func recommendTempBasal(calculator *dosing.Calculator, logger *zap.SugaredLogger) error {
	s, err := loadSnapshot(snapshot.KindTempBasal)
	if err != nil {
		return err
	}
	in, err := s.TempBasalInput()
	if err != nil {
		return err
	}

	logger.Debugw("evaluating temp basal", "date", s.Date, "predictions", len(s.Predictions))
	return printJSON(api.TempBasalResponse{
		Recommendation: api.NewTempBasal(calculator.RecommendedTempBasal(in)),
	})
}

func recommendBolus(calculator *dosing.Calculator, logger *zap.SugaredLogger) error {
	s, err := loadSnapshot(snapshot.KindBolus)
	if err != nil {
		return err
	}
	in, err := s.BolusInput()
	if err != nil {
		return err
	}

	logger.Debugw("evaluating bolus", "date", s.Date, "predictions", len(s.Predictions))
	return printJSON(api.BolusResponse{
		Recommendation: api.NewBolus(calculator.RecommendedBolus(in), api.NegotiateLanguage(os.Getenv("LANG"))),
	})
}

func recommendMicrobolus(calculator *dosing.Calculator, logger *zap.SugaredLogger) error {
	s, err := loadSnapshot(snapshot.KindMicrobolus)
	if err != nil {
		return err
	}
	in, err := s.MicrobolusRequest()
	if err != nil {
		return err
	}

	logger.Debugw("evaluating microbolus", "date", s.Date, "predictions", len(s.Predictions))
	return printJSON(api.NewMicrobolusResponse(calculator.RecommendedSuperMicrobolus(in), api.NegotiateLanguage(os.Getenv("LANG"))))
}

// loadSnapshot reads the snapshot from --snapshot, or stdin when it is "-".
func loadSnapshot(kind snapshot.Kind) (snapshot.Snapshot, error) {
	var data []byte
	var err error
	if snapshotPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(snapshotPath)
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("unable to read snapshot: %w", err)
	}

	return api.DecodeSnapshot(kind, data)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	recommendCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "", "Path to the snapshot JSON file, or - for stdin")
	_ = recommendCmd.MarkPersistentFlagRequired("snapshot")

	recommendCmd.AddCommand(recommendTempBasalCmd)
	recommendCmd.AddCommand(recommendBolusCmd)
	recommendCmd.AddCommand(recommendMicrobolusCmd)
	rootCmd.AddCommand(recommendCmd)
}
