package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// schema is applied inside every snapshot transaction
const schema = `CREATE TABLE IF NOT EXISTS accounts (
	client_id  integer PRIMARY KEY,
	available  numeric NOT NULL,
	held       numeric NOT NULL,
	total      numeric NOT NULL,
	locked     boolean NOT NULL,
	run_id     text NOT NULL,
	updated_at timestamptz NOT NULL
)`

// SnapshotStore writes the final account states of a run to Postgres.
// The engine itself never reads from it.
type SnapshotStore struct {
	db  *sql.DB
	now func() time.Time // stamps updated_at
}

// Open prepares a pq connection pool. No connection is made until the
// first query.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

// NewSnapshotStore wraps db; it does not query it
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{
		db:  db,
		now: time.Now,
	}
}

func (p *SnapshotStore) Name() string { return "postgres" }

func (p *SnapshotStore) saveAccount(ctx context.Context, dbTx *sql.Tx, runID string, account models.Account, at time.Time) error {
	const query = `INSERT INTO accounts (client_id, available, held, total, locked, run_id, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (client_id) DO UPDATE SET
		available = EXCLUDED.available,
		held = EXCLUDED.held,
		total = EXCLUDED.total,
		locked = EXCLUDED.locked,
		run_id = EXCLUDED.run_id,
		updated_at = EXCLUDED.updated_at`

	_, err := dbTx.ExecContext(ctx, query,
		int(account.ClientID),
		account.Available,
		account.Held,
		account.Total(),
		account.Locked,
		runID,
		at,
	)
	return err
}

// WriteSnapshot creates the accounts table if needed and upserts every
// account, all in a single database transaction
func (p *SnapshotStore) WriteSnapshot(ctx context.Context, runID string, accounts []models.Account) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// roll back on any failure below
	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	if _, err = dbTx.ExecContext(ctx, schema); err != nil {
		return err
	}

	at := p.now().UTC()
	for _, account := range accounts {
		if err = p.saveAccount(ctx, dbTx, runID, account, at); err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

// GetAccounts reads back the stored snapshot ordered by client id
func (p *SnapshotStore) GetAccounts(ctx context.Context) ([]models.Account, error) {
	const query = `SELECT client_id, available, held, locked FROM accounts ORDER BY client_id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var (
			clientID int
			account  models.Account
		)
		if err := rows.Scan(&clientID, &account.Available, &account.Held, &account.Locked); err != nil {
			return nil, err
		}
		account.ClientID = uint16(clientID)
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

var _ interfaces.SnapshotSink = (*SnapshotStore)(nil)
