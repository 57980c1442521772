package cmd

import (
	"sandscan/config"
	"sandscan/db"
	"sandscan/detect"
	"sandscan/ingest"
	"sandscan/logger"
	"sandscan/tokens"
	"sandscan/utils"

	"github.com/spf13/cobra"
)

var (
	detectFile   string
	detectStrict bool
	detectStore  bool
)

var detectCmd = cobra.Command{
	Use:   "detect",
	Short: "Run heuristic sandwich detection over a swap record file",
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("detect")

		txs, err := ingest.LoadSwaps(detectFile)
		if err != nil {
			logger.DetectLogger.Error("Failed to load swap records", "file", detectFile, "err", err)
			return
		}
		logger.DetectLogger.Info("Loaded swap records", "file", detectFile, "num_txs", len(txs))

		detector, err := newDetector(detectStrict)
		if err != nil {
			logger.DetectLogger.Error("Failed to build detector", "err", err)
			return
		}

		res := detector.DetectByHeuristics(txs)
		for _, a := range res.Attacks {
			logger.DetectLogger.Info("Sandwich attack",
				"block", a.FrontRun.BlockNumber,
				"front", a.FrontRun.TxHash,
				"victim", a.Victim.TxHash,
				"back", a.BackRun.TxHash,
				"attacker", a.FrontRun.FromAddress,
				"confidence", utils.FloatRound(a.Confidence, 4),
				"profitable", a.Flags.Profitable,
				"profit_usd", utils.FloatRound(a.Flags.ProfitUSD, 2))
		}
		for _, s := range res.Skips {
			logger.DetectLogger.Info("Skipped", "block", s.Block, "reason", s.Err)
		}
		logger.DetectLogger.Info("Detection done", "num_attacks", len(res.Attacks), "num_skips", len(res.Skips))

		if detectStore {
			storeAttacks(res)
		}
	},
}

// newDetector builds a detector from the configured equivalence table, or
// the default taxonomy when config carries none.
func newDetector(strict bool) (*detect.Detector, error) {
	resolver := tokens.DefaultResolver()
	if groups := config.EquivalenceGroups(); groups != nil {
		var err error
		resolver, err = tokens.NewResolver(groups)
		if err != nil {
			return nil, err
		}
	}

	policy := detect.DefaultPolicy()
	if strict {
		policy = detect.StrictPolicy()
	}
	return detect.New(policy, resolver), nil
}

func storeAttacks(res *detect.Result) {
	ch, err := db.NewClickhouse()
	if err != nil {
		logger.DetectLogger.Error("Failed to connect to database", "err", err)
		return
	}
	defer ch.Close()

	if err := ch.EnsureDatabaseExists(); err != nil {
		logger.DetectLogger.Error("Failed to ensure database", "err", err)
		return
	}
	if err := ch.CreateTables(); err != nil {
		logger.DetectLogger.Error("Failed to create tables", "err", err)
		return
	}
	if err := ch.InsertAttacks(res.Attacks); err != nil {
		logger.DetectLogger.Error("Failed to insert attacks", "err", err)
		return
	}
	logger.DetectLogger.Info("Stored attacks", "num_attacks", len(res.Attacks))
}

func init() {
	detectCmd.Flags().StringVarP(&detectFile, "file", "f", "", "CSV file of swap records")
	detectCmd.Flags().BoolVar(&detectStrict, "strict", false, "literal token matching and single-pool alignment")
	detectCmd.Flags().BoolVar(&detectStore, "store", false, "store findings in ClickHouse")
	_ = detectCmd.MarkFlagRequired("file")
	RootCmd.AddCommand(&detectCmd)
}
