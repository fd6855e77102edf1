package rate

import (
	"container/list"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var (
	client1 = "10.0.0.1"
	client2 = "10.0.0.2"
)

func TestLimiterPerID_AllowN(t *testing.T) {
	tests := []struct {
		steps []testStep
	}{
		{
			steps: []testStep{
				{client1, 1, true},
				{client1, 1, true},
				{client1, 1, false},
			},
		},
		{
			steps: []testStep{
				{client1, 1, true},
				{client2, 1, true},
				{client1, 1, true},
				{client1, 1, false},
				{client2, 1, true},
			},
		},
		{
			steps: []testStep{
				{client1, 2, true},
				{client1, 1, false},
			},
		},
		{
			steps: []testStep{
				{client1, 3, false},
				{client1, 3, false},
			},
		},
	}
	for i, test := range tests {
		lpi := newTestLimiter()
		for j, step := range test.steps {
			res := lpi.AllowN(step.id, step.n)
			require.Equal(t, step.exp, res, "Test %v/%v", i, j)
			lpi.t.(*testTimer).tick()
		}
	}
}

func TestLimiterPerID_whitelist(t *testing.T) {
	lpi := newTestLimiter()
	lpi.c.exempt[client1] = struct{}{}
	for i := 0; i < 10; i++ {
		require.True(t, lpi.AllowN(client1, 1))
	}
	require.Zero(t, lpi.evictList.Len())
}

func TestLimiterPerID_maintain(t *testing.T) {
	lpi := newTestLimiter()
	lpi.c.capacity = 0
	lpi.AllowN(client1, 2)
	lpi.t.(*testTimer).tick()
	lpi.AllowN(client2, 2)
	lpi.t.(*testTimer).tick()

	lpi.maintain()
	require.Equal(t, 1, lpi.evictList.Len())
	require.Len(t, lpi.items, 1)
	_, ok := lpi.items[client2]
	require.True(t, ok)

	lpi.t.(*testTimer).tick()
	lpi.maintain()
	require.Zero(t, lpi.evictList.Len())
	require.Empty(t, lpi.items)
}

func TestLimiterPerID_maintain_largeCap(t *testing.T) {
	lpi := newTestLimiter()
	lpi.c.capacity = 10
	lpi.AllowN(client1, 2)
	lpi.t.(*testTimer).tick()
	lpi.AllowN(client2, 2)
	lpi.t.(*testTimer).tick()
	lpi.maintain()

	require.Equal(t, 2, lpi.evictList.Len())
	require.Len(t, lpi.items, 2)
}

func TestLimiterPerID_maintain_largeMinDur(t *testing.T) {
	lpi := newTestLimiter()
	lpi.c.idleTTL = 5 * time.Second
	lpi.AllowN(client1, 2)
	lpi.t.(*testTimer).tick()
	lpi.AllowN(client2, 2)
	lpi.t.(*testTimer).tick()
	lpi.maintain()

	require.Equal(t, 2, lpi.evictList.Len())
	require.Len(t, lpi.items, 2)
}

func TestNewLimiterPerID_StartStop(t *testing.T) {
	capacity := 5
	l := NewLimiterPerID(rate.Limit(1), 1, &Config{Capacity: &capacity, Whitelist: []string{client2}})
	l.Start()
	defer l.Stop()

	require.True(t, l.AllowN(client1, 1))
	require.False(t, l.AllowN(client1, 1))
	require.True(t, l.AllowN(client2, 100))
	l.Stop()
}

func TestConfig_resolve(t *testing.T) {
	ci := (*Config)(nil).resolve(rate.Limit(2), 4)
	require.Equal(t, defaultCapacity, ci.capacity)
	require.Equal(t, defaultSweepInterval, ci.sweepInterval)
	require.Equal(t, defaultIdleTTL, ci.idleTTL)

	capacity, check := 10, time.Second
	c := &Config{Capacity: &capacity, SweepInterval: &check, Whitelist: []string{client1}}
	ci = c.resolve(rate.Limit(2), 4)
	require.Equal(t, 10, ci.capacity)
	require.Equal(t, time.Second, ci.sweepInterval)
	require.Contains(t, ci.exempt, client1)
}

type testStep struct {
	id  string
	n   int
	exp bool
}

func newTestLimiter() *limiterPerID {
	return &limiterPerID{
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		t:         &testTimer{time.Now()},
		c:         newTestSettings(),
	}
}

func newTestSettings() settings {
	return settings{
		limit:         rate.Every(100 * time.Second),
		burst:         2,
		capacity:      1,
		sweepInterval: time.Second,
		idleTTL:       1 * time.Second,
		exempt:        make(map[string]struct{}),
	}
}

// testTimer will increment 1 sec per call
type testTimer struct {
	c time.Time
}

func (t *testTimer) now() time.Time {
	return t.c
}

func (t *testTimer) tick() {
	t.c = t.c.Add(time.Second)
}

func (t *testTimer) since(t2 time.Time) time.Duration {
	return t.c.Sub(t2)
}

func (t *testTimer) newTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(time.Nanosecond)
}
