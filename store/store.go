// Package store keeps simulation runs and their yearly summaries in SQLite or
// PostgreSQL.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/household"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // register sqlite driver
)

type dialect string

const (
	sqliteDialect dialect = "sqlite"
	postgres      dialect = "postgres"
)

// dialectOf returns the dialect and the database/sql driver of a DSN:
// postgres:// URLs go to PostgreSQL, anything else is a SQLite file path.
func dialectOf(dsn string) (dialect, string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres, "pgx"
	}
	return sqliteDialect, "sqlite"
}

// Store persists simulation runs.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
}

// Open opens or creates the store at dsn and migrates its schema. The logger
// can be nil.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d, driver := dialectOf(dsn)
	source := dsn
	if d == sqliteDialect {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		source = dsn + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)"
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	if err := runMigrations(db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug("store opened", zap.String("dialect", string(d)))
	return &Store{db: db, dialect: d, logger: logger}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RunInfo describes a stored run.
type RunInfo struct {
	ID      int64
	Name    string
	Created time.Time
	Years   int
}

// Run is a stored run receiving the summaries of a simulation. It is a
// household.Sink.
type Run struct {
	ctx   context.Context
	store *Store
	id    int64
}

// NewRun records a new run of a scenario. Summaries appended to the run are
// written with ctx.
func (s *Store) NewRun(ctx context.Context, name string, sc household.Scenario) (*Run, error) {
	var buf bytes.Buffer
	if err := sc.Encode(&buf, household.YAML); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	var id int64
	err := s.db.QueryRowContext(ctx,
		s.rebind(`INSERT INTO runs (name, scenario, created_at) VALUES (?, ?, ?) RETURNING id`),
		name, buf.String(), now,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("creating run %q: %w", name, err)
	}
	s.logger.Info("run created", zap.Int64("run", id), zap.String("name", name))
	return &Run{ctx: ctx, store: s, id: id}, nil
}

// ID returns the run identifier.
func (r *Run) ID() int64 { return r.id }

// Append stores a yearly summary.
func (r *Run) Append(y household.YearSummary) error {
	_, err := r.store.db.ExecContext(r.ctx, r.store.rebind(`INSERT INTO years
		(run_id, year, salary, income, net_income, taxes_withheld, tax_return,
		 capital_gains_tax, retirement, giving, asset_savings, assets, asset_value,
		 cumulative_giving, cumulative_spending)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		r.id, y.Year,
		y.Salary.Decimal(), y.Income.Decimal(), y.NetIncome.Decimal(),
		y.TaxesWithheld.Decimal(), y.TaxReturn.Decimal(), y.CapitalGainsTax.Decimal(),
		y.Retirement.Decimal(), y.Giving.Decimal(), y.AssetSavings.Decimal(),
		y.Assets, y.AssetValue.Decimal(),
		y.CumulativeGiving.Decimal(), y.CumulativeSpending.Decimal(),
	)
	if err != nil {
		return fmt.Errorf("storing year %d of run %d: %w", y.Year, r.id, err)
	}
	return nil
}

// Runs lists the stored runs, latest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id, r.name, r.created_at, COUNT(y.year)
		FROM runs r LEFT JOIN years y ON y.run_id = r.id
		GROUP BY r.id, r.name, r.created_at
		ORDER BY r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created string
		)
		if err := rows.Scan(&info.ID, &info.Name, &created, &info.Years); err != nil {
			return nil, err
		}
		if info.Created, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("run %d: invalid creation time %q: %w", info.ID, created, err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Scenario returns the scenario of a stored run.
func (s *Store) Scenario(ctx context.Context, id int64) (household.Scenario, error) {
	var text string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT scenario FROM runs WHERE id = ?`), id).Scan(&text)
	if err != nil {
		return household.Scenario{}, fmt.Errorf("run %d: %w", id, err)
	}
	return household.ParseScenario(strings.NewReader(text), household.YAML)
}

// Summaries returns the yearly summaries of a run, in year order.
func (s *Store) Summaries(ctx context.Context, id int64) ([]household.YearSummary, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT year, salary, income, net_income,
		taxes_withheld, tax_return, capital_gains_tax, retirement, giving,
		asset_savings, assets, asset_value, cumulative_giving, cumulative_spending
		FROM years WHERE run_id = ? ORDER BY year`), id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var summaries []household.YearSummary
	for rows.Next() {
		var (
			y      household.YearSummary
			values [12]decimal.Decimal
		)
		err := rows.Scan(&y.Year,
			&values[0], &values[1], &values[2], &values[3], &values[4], &values[5],
			&values[6], &values[7], &values[8], &y.Assets, &values[9], &values[10], &values[11],
		)
		if err != nil {
			return nil, fmt.Errorf("reading run %d: %w", id, err)
		}
		money := func(i int) household.Money { return household.M(values[i], "") }
		y.Salary, y.Income, y.NetIncome = money(0), money(1), money(2)
		y.TaxesWithheld, y.TaxReturn, y.CapitalGainsTax = money(3), money(4), money(5)
		y.Retirement, y.Giving, y.AssetSavings = money(6), money(7), money(8)
		y.AssetValue, y.CumulativeGiving, y.CumulativeSpending = money(9), money(10), money(11)
		summaries = append(summaries, y)
	}
	return summaries, rows.Err()
}
