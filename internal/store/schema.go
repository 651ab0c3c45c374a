package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS calculations (
    id                   TEXT PRIMARY KEY,
    kind                 TEXT NOT NULL,
    summary              TEXT NOT NULL,
    input_json           TEXT NOT NULL,
    result_json          TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at);
CREATE INDEX IF NOT EXISTS idx_calculations_kind ON calculations(kind);
`
