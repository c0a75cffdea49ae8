package postgres

import (
	"testing"

	"role-match/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func TestDSN_QuotesValues(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "rolematch",
		DBPassword: `it's a \secret`,
		DBName:     "rolematch",
		DBSSLMode:  "disable",
	}

	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	require.NoError(t, err)
	require.Equal(t, "db", pcfg.ConnConfig.Host)
	require.Equal(t, uint16(5432), pcfg.ConnConfig.Port)
	require.Equal(t, `it's a \secret`, pcfg.ConnConfig.Password)
	require.Equal(t, "rolematch", pcfg.ConnConfig.Database)
}
