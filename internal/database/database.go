package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"historicmap/internal/types"

	_ "github.com/sijms/go-ora/v2"
)

// dsn builds a properly encoded connection string for Oracle Autonomous Database
func dsn(username, password, host, port, service string, walletLocation string) string {
	if walletLocation != "" {
		// Use wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			url.PathEscape(username), url.PathEscape(password), host, port, service, url.PathEscape(walletLocation))
	}

	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(username, password), // escapes automatically
		Host:     host + ":" + port,
		Path:     "/" + service, // keep full service name
		RawQuery: "ssl=true",    // ADB requires TCPS
	}).String()
}

// DBConfig holds database connection configuration
type DBConfig struct {
	Host           string
	Port           string
	Service        string
	Username       string
	Password       string
	WalletLocation string

	RecordsTable string
	ErasTable    string
}

// Database holds the database connection and configuration
type Database struct {
	db     *sql.DB
	config DBConfig
}

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_$#]*(\.[A-Za-z][A-Za-z0-9_$#]*)?$`)

// validTable guards table names that are spliced into SQL text.
func validTable(name string) error {
	if !identRe.MatchString(name) {
		return eris.Errorf("database: invalid table name %q", name)
	}
	return nil
}

// NewDatabase opens and pings an Oracle connection.
func NewDatabase(ctx context.Context, config DBConfig) (*Database, error) {
	for _, t := range []string{config.RecordsTable, config.ErasTable} {
		if err := validTable(t); err != nil {
			return nil, err
		}
	}

	connStr := dsn(config.Username, config.Password, config.Host, config.Port, config.Service, config.WalletLocation)

	zap.L().Info("connecting to oracle",
		zap.String("host", config.Host),
		zap.String("service", config.Service),
		zap.Bool("wallet", config.WalletLocation != ""),
	)

	db, err := sql.Open("oracle", connStr)
	if err != nil {
		return nil, eris.Wrap(err, "database: open connection")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "database: ping")
	}

	return &Database{
		db:     db,
		config: config,
	}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// recordRow mirrors one row of the records table; text columns may be NULL.
type recordRow struct {
	Title       sql.NullString
	Year        sql.NullString
	Era         sql.NullString
	Description sql.NullString
	Image       sql.NullString
	Icon        sql.NullString
	MarkerColor sql.NullString
	Latitude    float64
	Longitude   float64
}

func (r recordRow) record() types.PropertyRecord {
	return types.PropertyRecord{
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Title:       strings.TrimSpace(r.Title.String),
		Year:        strings.TrimSpace(r.Year.String),
		Era:         strings.TrimSpace(r.Era.String),
		Description: strings.TrimSpace(r.Description.String),
		Image:       strings.TrimSpace(r.Image.String),
		Icon:        strings.TrimSpace(r.Icon.String),
		MarkerColor: strings.TrimSpace(r.MarkerColor.String),
	}
}

func recordsQuery(table string) string {
	return `
		SELECT
			TITLE, BUILD_YEAR, ERA, DESCRIPTION, IMAGE_URL, ICON, MARKER_COLOR,
			LATITUDE, LONGITUDE
		FROM ` + table + `
		ORDER BY SORT_ORDER, TITLE`
}

func erasQuery(table string) string {
	return `
		SELECT ERA_KEY, COLOR, LABEL
		FROM ` + table + `
		ORDER BY SORT_ORDER, ERA_KEY`
}

// QueryRecords returns every property record in display order.
func (d *Database) QueryRecords(ctx context.Context) ([]types.PropertyRecord, error) {
	rows, err := d.db.QueryContext(ctx, recordsQuery(d.config.RecordsTable))
	if err != nil {
		return nil, eris.Wrap(err, "database: query records")
	}
	defer rows.Close()

	var records []types.PropertyRecord
	for rows.Next() {
		var r recordRow
		err := rows.Scan(
			&r.Title, &r.Year, &r.Era, &r.Description, &r.Image, &r.Icon, &r.MarkerColor,
			&r.Latitude, &r.Longitude,
		)
		if err != nil {
			return nil, eris.Wrap(err, "database: scan record")
		}
		records = append(records, r.record())
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "database: iterate records")
	}

	return records, nil
}

// QueryEraStyles returns the era styles in display order.
func (d *Database) QueryEraStyles(ctx context.Context) (types.EraStyles, error) {
	rows, err := d.db.QueryContext(ctx, erasQuery(d.config.ErasTable))
	if err != nil {
		return nil, eris.Wrap(err, "database: query era styles")
	}
	defer rows.Close()

	var styles types.EraStyles
	for rows.Next() {
		var key, color, label sql.NullString
		if err := rows.Scan(&key, &color, &label); err != nil {
			return nil, eris.Wrap(err, "database: scan era style")
		}
		styles = append(styles, types.EraStyle{
			Key:   strings.TrimSpace(key.String),
			Color: strings.TrimSpace(color.String),
			Label: strings.TrimSpace(label.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "database: iterate era styles")
	}

	return styles, nil
}

// LoadDatabaseConfig loads connection settings from the environment, reading
// a .env file first. Variables already set in the environment win.
func LoadDatabaseConfig(recordsTable, erasTable string) DBConfig {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("database: could not read .env", zap.Error(err))
	}

	return DBConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvOrDefault("DB_PORT", "1521"),
		Service:        getEnvOrDefault("DB_SERVICE", "XE"),
		Username:       getEnvOrDefault("DB_USERNAME", ""),
		Password:       getEnvOrDefault("DB_PASSWORD", ""),
		WalletLocation: getEnvOrDefault("DB_WALLET_LOCATION", ""),
		RecordsTable:   recordsTable,
		ErasTable:      erasTable,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
