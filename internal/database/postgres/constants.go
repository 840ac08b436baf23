package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeCheckViolation is the PostgreSQL error code for check constraint violations
	PgErrorCodeCheckViolation = "23514"
)
