package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/partner-ledger/internal/config"
	"github.com/dvloznov/partner-ledger/internal/infra/postgres"
	"github.com/dvloznov/partner-ledger/internal/logger"
)

// Migration represents a single migration file
type Migration struct {
	Version  int
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// AppliedMigration represents a migration that has already been applied
type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
	Checksum  string
	AppliedBy string
}

// target names the dataset migrations run against.
type target struct {
	projectID string
	datasetID string
	appliedBy string
}

// migrationPattern matches migration files: 0001_name.sql
var migrationPattern = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Invalid configuration")
	}

	var (
		backend       = flag.String("backend", cfg.StoreBackend, "Store backend to prepare: bigquery or postgres")
		projectID     = flag.String("project", cfg.GoogleCloudProject, "GCP project ID (bigquery)")
		datasetID     = flag.String("dataset", cfg.BigQueryDataset, "BigQuery dataset ID")
		dsn           = flag.String("dsn", cfg.DatabaseDSN, "Postgres DSN (postgres)")
		appliedBy     = flag.String("applied-by", "migrate-cli", "Name of the tool applying migrations")
		migrationsDir = flag.String("migrations", "migrations/bigquery", "Path to migrations directory")
	)
	flag.Parse()

	log := logger.WithComponent("migrate")
	ctx := logger.WithContext(context.Background(), log)

	switch *backend {
	case config.BackendPostgres:
		if err := migratePostgres(ctx, *dsn); err != nil {
			log.Fatal().Err(err).Msg("Postgres migration failed")
		}
	case config.BackendBigQuery:
		if *projectID == "" {
			log.Fatal().Msg("Error: -project flag is required. Please specify your GCP project ID.")
		}
		t := target{projectID: *projectID, datasetID: *datasetID, appliedBy: *appliedBy}
		if err := migrateBigQuery(ctx, log, t, *migrationsDir); err != nil {
			log.Fatal().Err(err).Msg("BigQuery migration failed")
		}
	default:
		log.Fatal().Str("backend", *backend).Msg("Nothing to migrate: use -backend bigquery or -backend postgres")
	}
}

func migratePostgres(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("-dsn or DB_DSN is required")
	}
	s, err := postgres.Open(dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info().Msg("Postgres schema is up to date")
	return nil
}

func migrateBigQuery(ctx context.Context, log zerolog.Logger, t target, dir string) error {
	// Create BigQuery client
	client, err := bigquery.NewClient(ctx, t.projectID)
	if err != nil {
		return fmt.Errorf("create BigQuery client: %w", err)
	}
	defer client.Close()

	log.Info().Str("project", t.projectID).Str("dataset", t.datasetID).Msg("Connected to BigQuery")

	// Ensure schema_migrations table exists
	if err := ensureSchemaMigrationsTable(ctx, client, t); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	// Read migration files
	migrations, err := readMigrations(log, resolveDir(dir), t)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	log.Info().Int("count", len(migrations)).Msg("Found migration files")

	// Get applied migrations
	appliedMigrations, err := getAppliedMigrations(ctx, client, t)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}
	log.Info().Int("count", len(appliedMigrations)).Msg("Found already applied migrations")

	pending := pendingMigrations(migrations, appliedMigrations)
	for _, migration := range pending {
		label := fmt.Sprintf("%04d_%s", migration.Version, migration.Name)
		log.Info().Str("migration", label).Msg("Running migration")

		if err := runQuery(ctx, client, migration.SQL, nil); err != nil {
			return fmt.Errorf("execute migration %s: %w", label, err)
		}
		if err := recordMigration(ctx, client, t, migration); err != nil {
			return fmt.Errorf("record migration %s: %w", label, err)
		}
		log.Info().Str("migration", label).Msg("Migration applied")
	}

	if len(pending) == 0 {
		log.Info().Msg("No new migrations to apply. Database is up to date.")
	} else {
		log.Info().Int("applied", len(pending)).Msg("Migrations applied")
	}
	return nil
}

// resolveDir also looks two levels up, in case we're in cmd/migrate.
func resolveDir(dir string) string {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return filepath.Join("..", "..", dir)
	}
	return dir
}

// pendingMigrations returns the migrations not yet applied, in version order.
func pendingMigrations(all []Migration, applied []AppliedMigration) []Migration {
	appliedVersions := make(map[int]bool, len(applied))
	for _, am := range applied {
		appliedVersions[am.Version] = true
	}

	var pending []Migration
	for _, m := range all {
		if !appliedVersions[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

// parseMigrationFilename splits 0001_name.sql into version and name.
func parseMigrationFilename(filename string) (int, string, bool) {
	matches := migrationPattern.FindStringSubmatch(filename)
	if matches == nil {
		return 0, "", false
	}
	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, "", false
	}
	return version, matches[2], true
}

// readMigrations reads all migration files from dir
func readMigrations(log zerolog.Logger, dir string, t target) ([]Migration, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		version, name, ok := parseMigrationFilename(file.Name())
		if !ok {
			log.Warn().Str("file", file.Name()).Msg("Skipping file with invalid format")
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", file.Name(), err)
		}

		// Replace placeholders with actual project and dataset
		sql := string(content)
		sql = strings.ReplaceAll(sql, "{{PROJECT_ID}}", t.projectID)
		sql = strings.ReplaceAll(sql, "{{DATASET_ID}}", t.datasetID)

		// Checksum covers the file before replacements so the same migration
		// matches across projects.
		checksum := fmt.Sprintf("%x", sha256.Sum256(content))

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			Filename: file.Name(),
			SQL:      sql,
			Checksum: checksum,
		})
	}

	// Sort by version
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// ensureSchemaMigrationsTable creates the schema_migrations table if it doesn't exist
func ensureSchemaMigrationsTable(ctx context.Context, client *bigquery.Client, t target) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS `+"`%s.%s.schema_migrations`"+` (
			version       INT64 NOT NULL,
			name          STRING NOT NULL,
			applied_at    TIMESTAMP NOT NULL,
			checksum      STRING,
			applied_by    STRING
		)
	`, t.projectID, t.datasetID)
	return runQuery(ctx, client, sql, nil)
}

// getAppliedMigrations retrieves the list of already applied migrations
func getAppliedMigrations(ctx context.Context, client *bigquery.Client, t target) ([]AppliedMigration, error) {
	sql := fmt.Sprintf(`
		SELECT version, name, applied_at, checksum, applied_by
		FROM `+"`%s.%s.schema_migrations`"+`
		ORDER BY version ASC
	`, t.projectID, t.datasetID)

	it, err := client.Query(sql).Read(ctx)
	if err != nil {
		// If table doesn't exist yet, return empty list
		if strings.Contains(err.Error(), "Not found") {
			return []AppliedMigration{}, nil
		}
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}

	var applied []AppliedMigration
	for {
		var row struct {
			Version   int64
			Name      string
			AppliedAt time.Time
			Checksum  bigquery.NullString
			AppliedBy bigquery.NullString
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating results: %w", err)
		}

		am := AppliedMigration{
			Version:   int(row.Version),
			Name:      row.Name,
			AppliedAt: row.AppliedAt,
		}
		if row.Checksum.Valid {
			am.Checksum = row.Checksum.StringVal
		}
		if row.AppliedBy.Valid {
			am.AppliedBy = row.AppliedBy.StringVal
		}
		applied = append(applied, am)
	}

	return applied, nil
}

// recordMigration records a successfully applied migration in schema_migrations
func recordMigration(ctx context.Context, client *bigquery.Client, t target, migration Migration) error {
	sql := fmt.Sprintf(`
		INSERT INTO `+"`%s.%s.schema_migrations`"+`
		(version, name, applied_at, checksum, applied_by)
		VALUES (@version, @name, CURRENT_TIMESTAMP(), @checksum, @applied_by)
	`, t.projectID, t.datasetID)

	return runQuery(ctx, client, sql, []bigquery.QueryParameter{
		{Name: "version", Value: migration.Version},
		{Name: "name", Value: migration.Name},
		{Name: "checksum", Value: migration.Checksum},
		{Name: "applied_by", Value: t.appliedBy},
	})
}

// runQuery runs a statement and waits for it to finish.
func runQuery(ctx context.Context, client *bigquery.Client, sql string, params []bigquery.QueryParameter) error {
	query := client.Query(sql)
	query.Parameters = params

	job, err := query.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}

	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
