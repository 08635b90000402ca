package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsPublisher pushes invoice render metrics to CloudWatch.
type MetricsPublisher struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	nowFunc    func() time.Time
}

// NewMetricsPublisher returns a MetricsPublisher writing into namespace.
func NewMetricsPublisher(client CloudWatchAPI, namespace string) *MetricsPublisher {
	return &MetricsPublisher{
		CloudWatch: client,
		Namespace:  namespace,
		nowFunc:    time.Now,
	}
}

// PutRenderMetrics records one generated invoice, its render latency and PDF size.
func (m *MetricsPublisher) PutRenderMetrics(ctx context.Context, latency time.Duration, sizeBytes int) error {
	ts := m.nowFunc()
	input := &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("InvoicesGenerated"),
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitCount,
				Value:      sdkaws.Float64(1),
			},
			{
				MetricName: awsString("RenderLatency"),
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitMilliseconds,
				Value:      sdkaws.Float64(float64(latency.Milliseconds())),
			},
			{
				MetricName: awsString("InvoiceSize"),
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitBytes,
				Value:      sdkaws.Float64(float64(sizeBytes)),
			},
		},
	}

	if _, err := m.CloudWatch.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
