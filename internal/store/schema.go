package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS shifts (
    source_file          TEXT NOT NULL,
    shift_id             TEXT NOT NULL,
    date                 TEXT NOT NULL,
    slot                 INTEGER NOT NULL,
    start_time           TEXT,
    end_time             TEXT,
    final_product        REAL NOT NULL,
    operating_hours      REAL,
    max_flow_rate        REAL,
    stops_frequency      INTEGER,
    efficiency           REAL,
    downtime             REAL,
    quality_rate         REAL,
    ore_flowrate         REAL,
    startup_time         REAL,
    ester_consumption    REAL,
    amin_consumption     REAL,
    acid_consumption     REAL,
    floculant_consumption REAL,
    received_phosphate   REAL,
    waste_tonnes         REAL,
    responsible          TEXT,
    notes                TEXT,
    PRIMARY KEY (source_file, shift_id)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parse_errors         INTEGER NOT NULL DEFAULT 0,
    parsed_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);
CREATE INDEX IF NOT EXISTS idx_shifts_responsible ON shifts(responsible);
`
