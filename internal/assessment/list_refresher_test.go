package assessment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
)

func TestListRefresherRefreshesUnconditionally(t *testing.T) {
	var fetches atomic.Int32
	updates := make(chan []api.Claim, 16)

	fetch := func(ctx context.Context) ([]api.Claim, error) {
		fetches.Add(1)
		return []api.Claim{{Status: "in_review"}}, nil
	}
	refresher := NewListRefresher(fetch, func(claims []api.Claim) {
		updates <- claims
	}, zap.NewNop(), 10*time.Millisecond)

	refresher.Start(context.Background())
	defer refresher.Stop()

	// Immediate fetch plus at least two ticks.
	deadline := time.After(2 * time.Second)
	received := 0
	for received < 3 {
		select {
		case claims := <-updates:
			require.Len(t, claims, 1)
			received++
		case <-deadline:
			t.Fatalf("expected 3 refreshes, got %d", received)
		}
	}
	assert.GreaterOrEqual(t, fetches.Load(), int32(3))
}

func TestListRefresherStopMutesLateResults(t *testing.T) {
	release := make(chan struct{})
	var delivered atomic.Int32

	fetch := func(ctx context.Context) ([]api.Claim, error) {
		<-release
		return []api.Claim{{}}, nil
	}
	refresher := NewListRefresher(fetch, func([]api.Claim) {
		delivered.Add(1)
	}, zap.NewNop(), time.Hour)

	refresher.Start(context.Background())
	refresher.Stop()
	close(release)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), delivered.Load(), "fetch settling after Stop is discarded")
}

func TestListRefresherErrorKeepsSchedule(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	got := make(chan []api.Claim, 1)

	fetch := func(ctx context.Context) ([]api.Claim, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return nil, errors.New("gateway timeout")
		}
		return []api.Claim{{Status: "submitted"}}, nil
	}
	refresher := NewListRefresher(fetch, func(claims []api.Claim) {
		select {
		case got <- claims:
		default:
		}
	}, zap.NewNop(), 10*time.Millisecond)

	refresher.Start(context.Background())
	defer refresher.Stop()

	select {
	case claims := <-got:
		assert.Equal(t, "submitted", claims[0].Status)
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not recover from fetch error")
	}
}

func TestListRefresherStartTwiceIsNoop(t *testing.T) {
	var fetches atomic.Int32
	fetch := func(ctx context.Context) ([]api.Claim, error) {
		fetches.Add(1)
		return nil, nil
	}
	refresher := NewListRefresher(fetch, func([]api.Claim) {}, zap.NewNop(), time.Hour)

	ctx := context.Background()
	refresher.Start(ctx)
	refresher.Start(ctx)
	defer refresher.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fetches.Load())
}
