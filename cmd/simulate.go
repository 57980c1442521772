package cmd

import (
	"sandscan/config"
	"sandscan/db"
	"sandscan/ingest"
	"sandscan/logger"
	"sandscan/utils"

	"github.com/spf13/cobra"
)

var (
	simFile  string
	simPools string
	simStore bool
)

var simulateCmd = cobra.Command{
	Use:   "simulate",
	Short: "Verify sandwich attacks by replaying pool state",
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogs("simulate")

		txs, err := ingest.LoadSwaps(simFile)
		if err != nil {
			logger.DetectLogger.Error("Failed to load swap records", "file", simFile, "err", err)
			return
		}
		pools, err := ingest.LoadPools(simPools)
		if err != nil {
			logger.DetectLogger.Error("Failed to load pool reserves", "file", simPools, "err", err)
			return
		}
		logger.DetectLogger.Info("Loaded input", "num_txs", len(txs), "num_pools", len(pools))

		detector, err := newDetector(false)
		if err != nil {
			logger.DetectLogger.Error("Failed to build detector", "err", err)
			return
		}

		res := detector.DetectBySimulation(pools, txs)
		for _, a := range res.Attacks {
			logger.DetectLogger.Info("Confirmed sandwich attack",
				"block", a.FrontRun.BlockNumber,
				"front", a.FrontRun.TxHash,
				"victim", a.Victim.TxHash,
				"back", a.BackRun.TxHash,
				"victim_loss_pct", utils.FloatRound(a.VictimLossPct, 4))
			if a.VictimLossPct > config.SANITY_MAX_VICTIM_LOSS_PCT {
				logger.DetectLogger.Warn("Victim loss above sanity ceiling, check supplied reserves",
					"block", a.FrontRun.BlockNumber, "victim_loss_pct", a.VictimLossPct)
			}
		}
		for _, s := range res.Skips {
			logger.DetectLogger.Info("Skipped", "block", s.Block, "front", s.FrontHash, "victim", s.VictimHash, "reason", s.Err)
		}
		logger.DetectLogger.Info("Simulation done", "num_attacks", len(res.Attacks), "num_skips", len(res.Skips))

		if simStore {
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
			if err := ch.InsertSimAttacks(res.Attacks); err != nil {
				logger.DetectLogger.Error("Failed to insert attacks", "err", err)
				return
			}
			logger.DetectLogger.Info("Stored attacks", "num_attacks", len(res.Attacks))
		}
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simFile, "file", "f", "", "CSV file of swap records")
	simulateCmd.Flags().StringVarP(&simPools, "pools", "p", "", "CSV file of initial pool reserves")
	simulateCmd.Flags().BoolVar(&simStore, "store", false, "store findings in ClickHouse")
	_ = simulateCmd.MarkFlagRequired("file")
	_ = simulateCmd.MarkFlagRequired("pools")
	RootCmd.AddCommand(&simulateCmd)
}
