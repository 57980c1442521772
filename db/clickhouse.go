package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/spf13/viper"

	"sandscan/config"
	"sandscan/logger"
	"sandscan/types"
)

type ClickhouseDB struct {
	conn driver.Conn
}

func NewClickhouse() (Database, error) {
	opts := &clickhouse.Options{
		Addr: []string{viper.GetString("CLICKHOUSE_ADDR")},
		Auth: clickhouse.Auth{
			Database: viper.GetString("CLICKHOUSE_DATABASE"),
			Username: viper.GetString("CLICKHOUSE_USERNAME"),
			Password: viper.GetString("CLICKHOUSE_PASSWORD"),
		},
		DialTimeout:  config.DefaultDialTimeout,
		Compression:  &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
		MaxOpenConns: config.DefaultMaxConns,
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	return &ClickhouseDB{conn: conn}, nil
}

// Database interface implementation
func (d *ClickhouseDB) Close() error {
	return d.conn.Close()
}

func (d *ClickhouseDB) EnsureDatabaseExists() error {
	query := `CREATE DATABASE IF NOT EXISTS sandscan`
	if err := d.conn.Exec(context.Background(), query); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}
	logger.GlobalLogger.Info("Database ensured to exist", "database", "sandscan")
	return nil
}

func (d *ClickhouseDB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sandscan.attacks
		(
			blockNumber UInt64,
			timestamp DateTime,

			frontHash String,
			victimHash String,
			backHash String,
			attacker String,
			victim String,

			frontPool String,
			backPool String,
			tokenIn String,
			tokenOut String,

			confidence Float64,
			frontGasHigher Bool,
			backGasLower Bool,
			frontContract Bool,
			backContract Bool,
			profitable Bool,
			proportional Bool,
			profitUsd Float64,
			priceImpact Float64
		)
		ENGINE = MergeTree
		ORDER BY (blockNumber, frontHash, victimHash, backHash)
		SETTINGS index_granularity = 8192`,

		`CREATE TABLE IF NOT EXISTS sandscan.sim_attacks
		(
			blockNumber UInt64,
			timestamp DateTime,

			frontHash String,
			victimHash String,
			backHash String,
			attacker String,
			victim String,

			pool String,
			victimLossPct Float64
		)
		ENGINE = MergeTree
		ORDER BY (blockNumber, frontHash, victimHash, backHash)
		SETTINGS index_granularity = 8192`,
	}

	for _, q := range queries {
		if err := d.conn.Exec(context.Background(), q); err != nil {
			return err
		}
		logger.GlobalLogger.Info("Check or create table in DB", "query", q)
	}
	return nil
}

func (d *ClickhouseDB) DropTables() error {
	for _, t := range []string{"attacks", "sim_attacks"} {
		q := fmt.Sprintf("DROP TABLE IF EXISTS sandscan.%s", t)
		if err := d.conn.Exec(context.Background(), q); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", t, err)
		}
		logger.GlobalLogger.Info("Dropped table", "table", t)
	}
	return nil
}

// attackRow flattens a heuristic finding for AppendStruct.
type attackRow struct {
	BlockNumber uint64    `ch:"blockNumber"`
	Timestamp   time.Time `ch:"timestamp"`

	FrontHash  string `ch:"frontHash"`
	VictimHash string `ch:"victimHash"`
	BackHash   string `ch:"backHash"`
	Attacker   string `ch:"attacker"`
	Victim     string `ch:"victim"`

	FrontPool string `ch:"frontPool"`
	BackPool  string `ch:"backPool"`
	TokenIn   string `ch:"tokenIn"`
	TokenOut  string `ch:"tokenOut"`

	Confidence     float64 `ch:"confidence"`
	FrontGasHigher bool    `ch:"frontGasHigher"`
	BackGasLower   bool    `ch:"backGasLower"`
	FrontContract  bool    `ch:"frontContract"`
	BackContract   bool    `ch:"backContract"`
	Profitable     bool    `ch:"profitable"`
	Proportional   bool    `ch:"proportional"`
	ProfitUSD      float64 `ch:"profitUsd"`
	PriceImpact    float64 `ch:"priceImpact"`
}

type simAttackRow struct {
	BlockNumber uint64    `ch:"blockNumber"`
	Timestamp   time.Time `ch:"timestamp"`

	FrontHash  string `ch:"frontHash"`
	VictimHash string `ch:"victimHash"`
	BackHash   string `ch:"backHash"`
	Attacker   string `ch:"attacker"`
	Victim     string `ch:"victim"`

	Pool          string  `ch:"pool"`
	VictimLossPct float64 `ch:"victimLossPct"`
}

func (d *ClickhouseDB) InsertAttacks(attacks []*types.SandwichAttack) error {
	if len(attacks) == 0 {
		return nil
	}
	batch, err := d.conn.PrepareBatch(context.Background(), "INSERT INTO sandscan.attacks")
	if err != nil {
		return err
	}
	for _, a := range attacks {
		row := &attackRow{
			BlockNumber:    a.FrontRun.BlockNumber,
			Timestamp:      a.FrontRun.Timestamp,
			FrontHash:      a.FrontRun.TxHash,
			VictimHash:     a.Victim.TxHash,
			BackHash:       a.BackRun.TxHash,
			Attacker:       a.FrontRun.FromAddress,
			Victim:         a.Victim.FromAddress,
			FrontPool:      a.FrontRun.PoolAddress,
			BackPool:       a.BackRun.PoolAddress,
			TokenIn:        a.FrontRun.TokenIn,
			TokenOut:       a.FrontRun.TokenOut,
			Confidence:     a.Confidence,
			FrontGasHigher: a.Flags.FrontGasHigher,
			BackGasLower:   a.Flags.BackGasLower,
			FrontContract:  a.Flags.FrontContract,
			BackContract:   a.Flags.BackContract,
			Profitable:     a.Flags.Profitable,
			Proportional:   a.Flags.Proportional,
			ProfitUSD:      a.Flags.ProfitUSD,
			PriceImpact:    a.Flags.PriceImpact,
		}
		if err := batch.AppendStruct(row); err != nil {
			return err
		}
	}
	return batch.Send()
}

func (d *ClickhouseDB) InsertSimAttacks(attacks []*types.SandwichAttackBySimulation) error {
	if len(attacks) == 0 {
		return nil
	}
	batch, err := d.conn.PrepareBatch(context.Background(), "INSERT INTO sandscan.sim_attacks")
	if err != nil {
		return err
	}
	for _, a := range attacks {
		row := &simAttackRow{
			BlockNumber:   a.FrontRun.BlockNumber,
			Timestamp:     a.FrontRun.Timestamp,
			FrontHash:     a.FrontRun.TxHash,
			VictimHash:    a.Victim.TxHash,
			BackHash:      a.BackRun.TxHash,
			Attacker:      a.FrontRun.FromAddress,
			Victim:        a.Victim.FromAddress,
			Pool:          a.Victim.PoolAddress,
			VictimLossPct: a.VictimLossPct,
		}
		if err := batch.AppendStruct(row); err != nil {
			return err
		}
	}
	return batch.Send()
}
