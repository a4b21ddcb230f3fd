package archive

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    source               TEXT NOT NULL,
    source_sha256        TEXT,
    generated_at         TEXT NOT NULL,
    total_items          INTEGER NOT NULL,
    total_2025           REAL NOT NULL,
    total_2026           REAL NOT NULL,
    totals_match         INTEGER NOT NULL,
    all_prefixes_mapped  INTEGER NOT NULL,
    archived_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_blocks (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    block                TEXT NOT NULL,
    name                 TEXT NOT NULL,
    plan_2025            REAL NOT NULL,
    plan_2026            REAL NOT NULL,
    item_count           INTEGER NOT NULL,
    PRIMARY KEY (run_id, block)
);

CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at);
`
