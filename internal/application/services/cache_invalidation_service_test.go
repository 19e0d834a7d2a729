package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/adapters/cache"
	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
)

// MockEventBus delivers published events to in-process subscribers
type MockEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.DataEvent
	published   []*entities.DataEvent
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{subscribers: make(map[string][]chan *entities.DataEvent)}
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.DataEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	for _, ch := range m.subscribers[channel] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.DataEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.DataEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subscribers[channel] {
		close(ch)
	}
	delete(m.subscribers, channel)
	return nil
}

func (m *MockEventBus) Close() error {
	return nil
}

func (m *MockEventBus) Published() []*entities.DataEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entities.DataEvent(nil), m.published...)
}

func newMiniredisCache(t *testing.T) (*miniredis.Miniredis, providers.CacheProvider) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisAdapter(client)
}

func TestCacheInvalidationService_HandlesEvents(t *testing.T) {
	mr, cacheProvider := newMiniredisCache(t)
	bus := NewMockEventBus()
	svc := services.NewCacheInvalidationService(cacheProvider, bus, nopLogger())
	require.NoError(t, svc.Start())
	defer svc.Stop()

	seed := func() {
		for _, key := range []string{"hospital:h-1", "hospital:h-2", "hospitals:list:a", "http:cache:abc", "feedback:rate:1.2.3.4"} {
			require.NoError(t, mr.Set(key, "x"))
		}
	}

	seed()
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelDataUpdates,
		entities.NewDataEvent(entities.DataEventHospitalRated, "h-1", nil)))
	assert.Eventually(t, func() bool { return !mr.Exists("hospital:h-1") && !mr.Exists("http:cache:abc") }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, mr.Exists("hospital:h-2"))
	assert.False(t, mr.Exists("hospitals:list:a"))
	assert.True(t, mr.Exists("feedback:rate:1.2.3.4"))

	seed()
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelDataUpdates,
		entities.NewDataEvent(entities.DataEventDataImported, "", nil)))
	assert.Eventually(t, func() bool { return !mr.Exists("http:cache:abc") }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, mr.Exists("hospital:h-2"))
	assert.True(t, mr.Exists("feedback:rate:1.2.3.4"))
}

func TestCacheInvalidationService_StopsWhenChannelCloses(t *testing.T) {
	_, cacheProvider := newMiniredisCache(t)
	bus := NewMockEventBus()
	svc := services.NewCacheInvalidationService(cacheProvider, bus, nopLogger())
	require.NoError(t, svc.Start())

	require.NoError(t, bus.Unsubscribe(context.Background(), providers.EventChannelDataUpdates))

	stopped := make(chan struct{})
	go func() {
		svc.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
}
