package gorm

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/config"
)

// postgresDB runs the catalog schema on a throwaway postgres container
type postgresDB struct {
	db *gorm.DB
}

func startPostgres(t *testing.T) *postgresDB {
	t.Helper()
	ctx := context.Background()

	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "catalog",
				"POSTGRES_PASSWORD": "catalog",
				"POSTGRES_DB":       "catalog",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("cannot start postgres container: %v", err)
	}
	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(termCtx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Database.Host = host
	cfg.Database.Port = port.Int()
	cfg.Database.User = "catalog"
	cfg.Database.Password = "catalog"
	cfg.Database.Name = "catalog"

	db, cleanup, err := NewDB(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return &postgresDB{db: db}
}

// fresh empties every catalog table
func (p *postgresDB) fresh(t *testing.T) *gorm.DB {
	tables := make([]string, 0, len(Models()))
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: p.db}
		require.NoError(t, stmt.Parse(model))
		tables = append(tables, stmt.Schema.Table)
	}

	sql := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", "))
	require.NoError(t, p.db.Exec(sql).Error)
	return p.db
}

func TestVideoGatewaySuite_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pg := startPostgres(t)
	suite.Run(t, &VideoGatewayTestSuite{newDB: pg.fresh})
}
