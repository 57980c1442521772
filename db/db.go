package db

import (
	"sandscan/types"
)

type Database interface {
	Close() error
	EnsureDatabaseExists() error
	CreateTables() error
	DropTables() error

	InsertAttacks(attacks []*types.SandwichAttack) error
	InsertSimAttacks(attacks []*types.SandwichAttackBySimulation) error
}
