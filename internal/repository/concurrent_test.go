package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ListsDuringWrites mirrors the dashboard: client and
// session lists are loaded concurrently while sessions are being written.
func TestConcurrentAccess_ListsDuringWrites(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	clients := NewSQLiteClientRepo(database)
	sessions := NewSQLiteSessionRepo(database)

	acme := testutil.NewTestClient("Acme", testutil.WithAvailableHours(40))
	require.NoError(t, clients.Create(ctx, acme))

	const writes = 20
	var wg sync.WaitGroup
	errs := make(chan error, writes+40)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			s := testutil.NewTestSession(acme, 0.5, testutil.WithProject(fmt.Sprintf("P-%d", i%3)))
			if err := sessions.Create(ctx, s); err != nil {
				errs <- fmt.Errorf("write %d: %w", i, err)
			}
		}
	}()

	for r := 0; r < 20; r++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := clients.ListByOwner(ctx, testutil.TestOwnerID); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			list, err := sessions.ListByOwner(ctx, testutil.TestOwnerID)
			if err != nil {
				errs <- err
				return
			}
			if len(list) > writes {
				errs <- fmt.Errorf("read %d sessions, more than written", len(list))
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	final, err := sessions.ListByOwner(ctx, testutil.TestOwnerID)
	require.NoError(t, err)
	assert.Len(t, final, writes)
}
