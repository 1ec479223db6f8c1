package repositories

import "github.com/Masterminds/squirrel"

// psql is the shared statement builder configured for PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
