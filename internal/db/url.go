package db

import (
	"errors"
	"strings"
)

// Driver identifica el gateway a usar según DATABASE_URL.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// ParseURL resuelve el driver y el DSN que recibe ese driver.
//
//	postgres://... | postgresql://...  -> pgx, URL sin cambios
//	sqlite://<path>                    -> GORM/SQLite, <path>
//	file:<path>                        -> GORM/SQLite, URL sin cambios
func ParseURL(databaseURL string) (Driver, string, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	lower := strings.ToLower(databaseURL)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(lower, "sqlite://"):
		dsn := databaseURL[len("sqlite://"):]
		if dsn == "" {
			return "", "", errors.New("sqlite url without path")
		}
		return DriverSQLite, dsn, nil
	case strings.HasPrefix(lower, "file:"):
		return DriverSQLite, databaseURL, nil
	default:
		// No incluimos la URL: puede traer credenciales.
		return "", "", errors.New("unsupported database url scheme")
	}
}
