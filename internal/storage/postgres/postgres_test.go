package postgres

import (
	"os"
	"strconv"
	"testing"
	"time"

	"maCentral/internal/config"
	"maCentral/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the database named by TEST_DB_HOST and friends,
// skipping when none is configured.
func openTestDB(t *testing.T) *Storage {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}

	port := 5432
	if raw := os.Getenv("TEST_DB_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		require.NoError(t, err)
		port = p
	}

	storage, err := InitDB(&config.Database{
		Host:     host,
		Port:     port,
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   os.Getenv("TEST_DB_NAME"),
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return storage
}

func TestSaveAndGetScans(t *testing.T) {
	storage := openTestDB(t)

	eventID := time.Now().UnixNano()
	at := time.Now().UTC().Truncate(time.Millisecond)

	t.Cleanup(func() {
		_, _ = storage.DB.Exec(`DELETE FROM scans WHERE event_id = $1`, eventID)
	})

	first, err := storage.SaveScan(models.ScanRecord{
		EventID:   eventID,
		Payload:   "100200",
		Outcome:   models.ScanValid,
		CreatedAt: at,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := storage.SaveScan(models.ScanRecord{
		EventID:   eventID,
		Payload:   "100201",
		Outcome:   models.ScanInvalid,
		Detail:    "invalid ticket",
		CreatedAt: at.Add(time.Second),
	})
	require.NoError(t, err)

	scans, err := storage.GetScans(eventID, 10)
	require.NoError(t, err)
	require.Len(t, scans, 2)

	assert.Equal(t, second, scans[0].ID)
	assert.Equal(t, "invalid ticket", scans[0].Detail)
	assert.Equal(t, first, scans[1].ID)
	assert.True(t, at.Equal(scans[1].CreatedAt))

	scans, err = storage.GetScans(eventID, 1)
	require.NoError(t, err)
	assert.Len(t, scans, 1)
}

func TestGetScansUnknownEvent(t *testing.T) {
	storage := openTestDB(t)

	scans, err := storage.GetScans(-1, 10)
	require.NoError(t, err)
	assert.Empty(t, scans)
}
