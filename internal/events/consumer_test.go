package events

import (
	"context"
	"testing"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsumer_Handle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := NewConsumer(zap.New(core))
	otherType := "order.created"

	resp, err := c.Handle(context.Background(), lambdaevents.SQSEvent{Records: []lambdaevents.SQSMessage{
		{MessageId: "m1", Body: `{"eventId":"e1","tag":"s1@b1","date":"2023-03-15","bytes":10}`},
		{MessageId: "m2", Body: `not json`},
		{MessageId: "m3", Body: `{"tag":"s1@b1"}`},
		{
			MessageId: "m4",
			Body:      `{"eventId":"e4","tag":"s1@b1"}`,
			MessageAttributes: map[string]lambdaevents.SQSMessageAttribute{
				"event_type": {StringValue: &otherType, DataType: "String"},
			},
		},
	}})
	require.NoError(t, err)

	var failed []string
	for _, f := range resp.BatchItemFailures {
		failed = append(failed, f.ItemIdentifier)
	}
	assert.Equal(t, []string{"m2", "m3", "m4"}, failed)

	audit := logs.FilterMessage("invoice generated").All()
	require.Len(t, audit, 1)
	assert.Equal(t, "e1", audit[0].ContextMap()["event_id"])
}
