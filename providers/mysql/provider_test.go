package mysql

import (
	"testing"
	"time"

	"github.com/Konsultn-Engineering/sqlview/connector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverConfig(t *testing.T) {
	c, err := DriverConfig(connector.Config{
		Host:           "db.local",
		Database:       "db_school",
		Username:       "app",
		Password:       "secret",
		ConnectTimeout: 5 * time.Second,
		Params:         map[string]string{"charset": "utf8mb4"},
	})
	require.NoError(t, err)
	assert.Equal(t, "db.local:3306", c.Addr)
	assert.True(t, c.ParseTime)

	dsn := c.FormatDSN()
	assert.Contains(t, dsn, "app:secret@tcp(db.local:3306)/db_school?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")
	assert.Contains(t, dsn, "charset=utf8mb4")

	_, err = DSN(connector.Config{Database: "db_school"})
	assert.ErrorIs(t, err, connector.ErrInvalidConfig)
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, connector.Drivers(), "mysql")
	assert.Equal(t, "mysql", (&Provider{}).Dialect().Name())
}
