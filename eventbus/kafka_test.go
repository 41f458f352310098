package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopicPartition(err kafka.Error) kafka.TopicPartition {
	topic := "blog_events"
	tp := kafka.TopicPartition{Topic: &topic, Partition: 0}
	if err.Code() != kafka.ErrNoError {
		tp.Error = err
	}
	return tp
}

func TestAwaitDeliverySuccess(t *testing.T) {
	deliveryChan := make(chan kafka.Event, 1)
	deliveryChan <- &kafka.Message{TopicPartition: testTopicPartition(kafka.Error{})}

	err := awaitDelivery(context.Background(), deliveryChan)
	assert.NoError(t, err)
}

func TestAwaitDeliveryReportsBrokerError(t *testing.T) {
	deliveryChan := make(chan kafka.Event, 1)
	deliveryChan <- &kafka.Message{
		TopicPartition: testTopicPartition(kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false)),
	}

	err := awaitDelivery(context.Background(), deliveryChan)
	assert.ErrorContains(t, err, "deliver event")
}

// A cancelled request must not leave the delivery channel in a state where
// the producer's later report send can block or crash: the channel stays
// open and the pending report is drained.
func TestAwaitDeliveryCancelledContextDrainsLateReport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deliveryChan := make(chan kafka.Event, 1)
	err := awaitDelivery(ctx, deliveryChan)
	require.ErrorIs(t, err, context.Canceled)

	// the late report from the poller still goes through and is consumed
	assert.NotPanics(t, func() {
		deliveryChan <- &kafka.Message{TopicPartition: testTopicPartition(kafka.Error{})}
	})
	assert.Eventually(t, func() bool {
		return len(deliveryChan) == 0
	}, time.Second, 10*time.Millisecond)
}
