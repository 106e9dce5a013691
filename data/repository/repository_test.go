package repository

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data"
	_ "github.com/ncobase/taskapi/data/sqlite"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/structs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

// newTestRepository opens a fresh in-memory SQLite store with the schema
// applied.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Data{Database: &config.Database{Master: &config.DBNode{
		Driver:         "sqlite3",
		Source:         fmt.Sprintf("file:repo_%d?mode=memory&cache=shared&_fk=1", dbSeq.Add(1)),
		MaxOpenConn:    1,
		AcquireTimeout: 5 * time.Second,
	}}}
	log := logger.NewWithWriter(io.Discard, logrus.ErrorLevel)

	d, cleanup, err := data.New(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, d.Migrate(ctx))

	return New(d, log)
}

// stepClock makes timeNow advance one second per call.
func stepClock(t *testing.T) {
	t.Helper()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	var n atomic.Int64
	prev := timeNow
	timeNow = func() time.Time {
		return start.Add(time.Duration(n.Add(1)) * time.Second)
	}
	t.Cleanup(func() { timeNow = prev })
}

// frozenClock makes every timestamp identical.
func frozenClock(t *testing.T) {
	t.Helper()
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

func createUser(t *testing.T, r *Repository, email string) *structs.User {
	t.Helper()
	u, err := r.User.Create(context.Background(), &structs.User{Name: "n", Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	return u
}
