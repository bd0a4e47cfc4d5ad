package redis_client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/railtrack/railtrack/pkg/util"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultDatabase = 0
const queueConnectionTag = "railtrack"

func Connect() error {
	options, err := optionsFromEnvironment(util.GetEnvironmentVariables())
	if err != nil {
		return err
	}

	client := redis.NewClient(options)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", options.Addr, err)
	}

	return Use(client)
}

// Use installs an existing client, opening the queue connection on top of it.
func Use(client *redis.Client) error {
	errChan := make(chan error, 10)
	go func() {
		for err := range errChan {
			log.Error().Err(err).Msg("Queue connection error")
		}
	}()

	queueConnection, err := rmq.OpenConnectionWithRedisClient(queueConnectionTag, client, errChan)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	return nil
}

func optionsFromEnvironment(env map[string]string) (*redis.Options, error) {
	options := &redis.Options{
		Addr: defaultConnectionAddress,
		DB:   defaultDatabase,
	}

	if env["RAILTRACK_REDIS_ADDRESS"] != "" {
		options.Addr = env["RAILTRACK_REDIS_ADDRESS"]
	}

	if env["RAILTRACK_REDIS_PASSWORD"] != "" {
		options.Password = env["RAILTRACK_REDIS_PASSWORD"]
	}

	if env["RAILTRACK_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["RAILTRACK_REDIS_DATABASE"])
		if err != nil {
			return nil, fmt.Errorf("invalid RAILTRACK_REDIS_DATABASE: %w", err)
		}
		options.DB = n
	}

	return options, nil
}
