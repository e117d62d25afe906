package archive

// schemaReports is compatible with both SQLite and PostgreSQL, following
// the same dialect-neutral style as osprey's schema.go.
const schemaReports = `
CREATE TABLE IF NOT EXISTS reports (
    run_id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    total_accounts_analyzed INTEGER NOT NULL,
    suspicious_accounts_flagged INTEGER NOT NULL,
    fraud_rings_detected INTEGER NOT NULL,
    processing_time_seconds REAL NOT NULL,
    report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

// AllSchemas returns every schema statement in order.
func AllSchemas() []string {
	return []string{schemaReports}
}
