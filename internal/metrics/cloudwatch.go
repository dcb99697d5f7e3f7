package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	defaultNamespace         = "CodedSwitch/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Recorder is what the service layer reports to
type Recorder interface {
	RecordAPIRequest(endpoint string, statusCode int, duration time.Duration)
	RecordGeneration(kind, genre string, duration time.Duration, fallback bool)
	RecordFallback(kind string)
}

// putMetricDataAPI is the subset of the CloudWatch client we use
type putMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      putMetricDataAPI
	enabled     bool
	environment string
	namespace   string
	pending     sync.WaitGroup
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment, namespace string) (*Client, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}

	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
			namespace:   namespace,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment, namespace: namespace}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return newClientWithAPI(cloudwatch.NewFromConfig(cfg), environment, namespace), nil
}

func newClientWithAPI(api putMetricDataAPI, environment, namespace string) *Client {
	return &Client{
		client:      api,
		enabled:     true,
		environment: environment,
		namespace:   namespace,
	}
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	metricName := "APIRequests"
	if statusCode >= httpStatusServerError {
		metricName = "APIErrors"
	}
	dimensions := m.dimensions("Endpoint", endpoint)

	m.async(func(ctx context.Context) {
		m.put(ctx, metricName, 1, types.StandardUnitCount, dimensions)
		m.put(ctx, "APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
	})
}

// RecordGeneration records a completed progression or code-to-music generation
func (m *Client) RecordGeneration(kind, genre string, duration time.Duration, fallback bool) {
	dimensions := m.dimensions("Kind", kind, "Genre", genre, "Fallback", boolToString(fallback))

	m.async(func(ctx context.Context) {
		m.put(ctx, "Generations", 1, types.StandardUnitCount, dimensions)
		m.put(ctx, "GenerationDuration", float64(duration.Microseconds()), types.StandardUnitMicroseconds, dimensions)
	})
}

// RecordFallback counts inputs the generator replaced with a default
func (m *Client) RecordFallback(kind string) {
	dimensions := m.dimensions("FallbackKind", kind)

	m.async(func(ctx context.Context) {
		m.put(ctx, "GeneratorFallbacks", 1, types.StandardUnitCount, dimensions)
	})
}

// Flush waits for in-flight metric calls
func (m *Client) Flush() {
	m.pending.Wait()
}

func (m *Client) async(fn func(ctx context.Context)) {
	if !m.enabled || m.client == nil {
		return
	}
	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		fn(context.Background())
	}()
}

func (m *Client) put(ctx context.Context, metricName string, value float64, unit types.StandardUnit, dimensions []types.Dimension) {
	if err := m.putMetric(ctx, metricName, value, unit, dimensions); err != nil {
		log.Printf("Failed to record %s metric: %v", metricName, err)
	}
}

// dimensions builds name/value pairs plus the Environment dimension
func (m *Client) dimensions(pairs ...string) []types.Dimension {
	dims := make([]types.Dimension, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		dims = append(dims, types.Dimension{
			Name:  aws.String(pairs[i]),
			Value: aws.String(pairs[i+1]),
		})
	}
	return append(dims, types.Dimension{
		Name:  aws.String("Environment"),
		Value: aws.String(m.environment),
	})
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
