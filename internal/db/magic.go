package magic

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MagicDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewMagicDB(logger *zap.Logger) (db *MagicDB, err error) {
	// config
	purl := os.Getenv("MAGIC_DB")
	if purl == "" {
		return nil, fmt.Errorf("env MAGIC_DB is not set")
	}
	port := os.Getenv("MAGIC_DB_PORT")
	if port == "" {
		return nil, fmt.Errorf("env MAGIC_DB_PORT is not set")
	}
	user := os.Getenv("MAGIC_DB_USER")
	if user == "" {
		return nil, fmt.Errorf("env MAGIC_DB_USER is not set")
	}
	password := os.Getenv("MAGIC_DB_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("env MAGIC_DB_PASSWORD is not set")
	}
	database := os.Getenv("MAGIC_DB_BASE")
	if database == "" {
		return nil, fmt.Errorf("env MAGIC_DB_BASE is not set")
	}
	dsn := "postgres://" + user + ":" + password + "@" + purl + ":" + port + "/" + database

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	err = pool.Ping(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &MagicDB{pool, logger}, nil
}

func (p *MagicDB) Close() {
	p.pool.Close()
}

func (p *MagicDB) sqlError(err error, sql string, args []any) error {
	p.logger.Error("SQL error",
		zap.Error(err),
		zap.String("query", sql),
		zap.Any("args", args),
	)
	return err
}
