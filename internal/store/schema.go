package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    user                 TEXT NOT NULL,
    seq                  INTEGER NOT NULL,
    tx_date              TEXT NOT NULL,
    amount               TEXT NOT NULL,
    description          TEXT NOT NULL,
    category             TEXT,
    forecast             INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user, seq)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    user                 TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    user                 TEXT NOT NULL,
    started_at           TEXT NOT NULL,
    start_date           TEXT NOT NULL,
    window_days          INTEGER NOT NULL,
    start_balance        TEXT NOT NULL,
    target_balance       TEXT NOT NULL,
    final_balance        TEXT NOT NULL,
    alert_days           INTEGER NOT NULL,
    transfer_count       INTEGER NOT NULL,
    transfer_total       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(user, tx_date);
CREATE INDEX IF NOT EXISTS idx_runs_user ON runs(user, started_at);
`
