package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.interno", Port: 5433, User: "precios", Password: "p@ss", DBName: "precios",
		SSLMode: "disable", MaxConns: 7, QueryTimeout: 3 * time.Second,
	}
	pc, err := PoolConfig(cfg)
	require.NoError(t, err)

	// el host se usa tal cual, sin reescribirlo a una IP
	assert.Equal(t, "db.interno", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, 3*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@pg.example.com:6543/otra?sslmode=disable",
		Host:        "ignorado", Port: 5432,
	}
	pc, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "pg.example.com", pc.ConnConfig.Host)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
