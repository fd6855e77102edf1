package rate

import (
	"container/list"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IDLimiter limits the request rate of each client ID independently.
type IDLimiter interface {
	AllowN(id string, n int) bool
	Start()
	Stop()
}

// NewLimiterPerID creates a limiter keeping one token bucket per ID. Buckets
// of IDs inactive for longer than IdleTTL are evicted once the number of
// tracked IDs exceeds Capacity.
func NewLimiterPerID(limit rate.Limit, burst int, c *Config) IDLimiter {
	return &limiterPerID{
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		t:         realTimer{},
		c:         c.resolve(limit, burst),
		closeC:    make(chan struct{}),
	}
}

type limiterPerID struct {
	evictList *list.List
	items     map[string]*list.Element
	t         timer
	c         settings

	lock   sync.Mutex
	once   sync.Once
	closeC chan struct{}
}

type entry struct {
	id       string
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AllowN reports whether n requests of id may happen now.
func (lpi *limiterPerID) AllowN(id string, n int) bool {
	if _, ok := lpi.c.exempt[id]; ok {
		return true
	}
	lpi.lock.Lock()
	defer lpi.lock.Unlock()

	now := lpi.t.now()
	elem, ok := lpi.items[id]
	if !ok {
		elem = lpi.evictList.PushFront(&entry{
			id:      id,
			limiter: rate.NewLimiter(lpi.c.limit, lpi.c.burst),
		})
		lpi.items[id] = elem
	} else {
		lpi.evictList.MoveToFront(elem)
	}
	e := elem.Value.(*entry)
	e.lastSeen = now
	return e.limiter.AllowN(now, n)
}

// Start runs the eviction loop in the background.
func (lpi *limiterPerID) Start() {
	go lpi.maintainLoop()
}

// Stop terminates the eviction loop.
func (lpi *limiterPerID) Stop() {
	lpi.once.Do(func() {
		if lpi.closeC != nil {
			close(lpi.closeC)
		}
	})
}

func (lpi *limiterPerID) maintainLoop() {
	ticker := lpi.t.newTicker(lpi.c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lpi.maintain()
		case <-lpi.closeC:
			return
		}
	}
}

// maintain evicts the least recently seen IDs above capacity which have been
// inactive for longer than idleTTL.
func (lpi *limiterPerID) maintain() {
	lpi.lock.Lock()
	defer lpi.lock.Unlock()

	for lpi.evictList.Len() > lpi.c.capacity {
		elem := lpi.evictList.Back()
		e := elem.Value.(*entry)
		if lpi.t.since(e.lastSeen) <= lpi.c.idleTTL {
			return
		}
		lpi.evictList.Remove(elem)
		delete(lpi.items, e.id)
	}
}

type timer interface {
	now() time.Time
	since(time.Time) time.Duration
	newTicker(time.Duration) *time.Ticker
}

type realTimer struct{}

func (realTimer) now() time.Time                         { return time.Now() }
func (realTimer) since(t time.Time) time.Duration        { return time.Since(t) }
func (realTimer) newTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }
