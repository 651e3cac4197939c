/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"gopkg.in/yaml.v3"
)

// StoreClient is the subset of the DynamoDB API the repository depends on.
// The real SDK client satisfies it, as does any test double.
type StoreClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Config describes the account the repository connects to.
type Config struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	// Endpoint overrides the service endpoint (DynamoDB Local, proxies).
	Endpoint string `yaml:"endpoint,omitempty"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ConfigFromEnv builds a Config from environment variables. Callers that
// keep credentials in a .env file should load it first (godotenv).
func ConfigFromEnv() Config {
	return Config{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	}
}

// Retry policy applied uniformly to every store call: exponential backoff
// from a fixed base delay, capped at a fixed attempt count. The policy is
// handed to the SDK client; the retry loop itself runs inside the SDK.
const (
	retryBaseDelay   = 5 * time.Second
	retryMaxAttempts = 4
)

// exponentialBackoff doubles the delay on every attempt, starting from base.
type exponentialBackoff struct {
	base time.Duration
}

func (b exponentialBackoff) BackoffDelay(attempt int, _ error) (time.Duration, error) {
	return b.base * time.Duration(1<<attempt), nil
}

func newRetryPolicy() aws.Retryer {
	return retry.NewStandard(func(o *retry.StandardOptions) {
		o.MaxAttempts = retryMaxAttempts
		o.MaxBackoff = retryBaseDelay << retryMaxAttempts
		o.Backoff = exponentialBackoff{base: retryBaseDelay}
	})
}

// Connection lazily builds and caches the store client for an account.
// It is safe for concurrent use; the client is read-only once built.
type Connection struct {
	cfg    Config
	once   sync.Once
	client StoreClient
	err    error
}

// NewConnection creates a Connection for the given account descriptor.
// No network call is made until the first repository operation.
func NewConnection(cfg Config) *Connection {
	return &Connection{cfg: cfg}
}

// NewConnectionWithClient wraps an existing store client. Useful for tests
// and for callers that configure the SDK client themselves.
func NewConnectionWithClient(client StoreClient) *Connection {
	return &Connection{client: client}
}

// Client returns the store client, building it on first use.
func (c *Connection) Client(ctx context.Context) (StoreClient, error) {
	c.once.Do(func() {
		if c.client != nil {
			return
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(c.cfg.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(c.cfg.AccessKey, c.cfg.SecretKey, ""),
			),
		)
		if err != nil {
			c.err = fmt.Errorf("failed to load AWS configuration: %w", err)
			return
		}
		c.client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.Retryer = newRetryPolicy()
			if c.cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(c.cfg.Endpoint)
			}
		})
	})
	return c.client, c.err
}
