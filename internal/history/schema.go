package history

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

-- One row per extraction run, single-file and batch alike.
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    input_path TEXT NOT NULL,
    output_path TEXT,
    template TEXT NOT NULL,
    model TEXT NOT NULL,
    format TEXT NOT NULL,
    status TEXT NOT NULL,
    extractions INTEGER DEFAULT 0,
    text_method TEXT,
    error TEXT,
    started_at TIMESTAMP NOT NULL,
    duration_ms INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_template ON runs(template);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
