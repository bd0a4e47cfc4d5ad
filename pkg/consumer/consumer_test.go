package consumer

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/alicebob/miniredis/v2"
	"github.com/railtrack/railtrack/pkg/redis_client"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingConsumer struct {
	payloads chan string
}

func (c *countingConsumer) Consume(batch rmq.Deliveries) {
	for _, payload := range batch.Payloads() {
		c.payloads <- payload
	}
	batch.Ack()
}

func TestRedisConsumerDeliversBatches(t *testing.T) {
	server := miniredis.RunT(t)
	require.NoError(t, redis_client.Use(redis.NewClient(&redis.Options{Addr: server.Addr()})))

	consumer := &countingConsumer{payloads: make(chan string, 10)}
	redisConsumer := RedisConsumer{
		Connection:      redis_client.QueueConnection,
		QueueName:       "test-queue",
		NumberConsumers: 1,
		BatchSize:       5,
		Timeout:         50 * time.Millisecond,
		Consumer:        consumer,
	}
	require.NoError(t, redisConsumer.Setup())
	t.Cleanup(func() { <-redis_client.QueueConnection.StopAllConsuming() })

	queue, err := redis_client.QueueConnection.OpenQueue("test-queue")
	require.NoError(t, err)
	require.NoError(t, queue.Publish("one", "two"))

	var received []string
	timeout := time.After(5 * time.Second)
	for len(received) < 2 {
		select {
		case payload := <-consumer.payloads:
			received = append(received, payload)
		case <-timeout:
			t.Fatalf("only received %v", received)
		}
	}

	assert.ElementsMatch(t, []string{"one", "two"}, received)
}

func TestHealthHandler(t *testing.T) {
	server := miniredis.RunT(t)
	require.NoError(t, redis_client.Use(redis.NewClient(&redis.Options{Addr: server.Addr()})))

	recorder := httptest.NewRecorder()
	NewHealthHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}
