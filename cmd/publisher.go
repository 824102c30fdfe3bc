package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"

	"bundlepacks/constants"
	"bundlepacks/logger"
)

// Message represents a message with its data and metadata
type Message struct {
	Data       []byte
	Attributes map[string]string
}

// GroupPublisher defines the interface for sending group messages
type GroupPublisher interface {
	Publish(ctx context.Context, message *Message) (string, error)
	Close() error
}

// PubSubPublisher implements GroupPublisher for Google Cloud Pub/Sub
type PubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topic     string
}

// NewPubSubPublisher creates a publisher for a topic given as
// projects/<project>/topics/<topic>
func NewPubSubPublisher(ctx context.Context, topic string, opts ...option.ClientOption) (*PubSubPublisher, error) {
	topicParts := strings.Split(topic, "/")
	if len(topicParts) != 4 || topicParts[0] != "projects" || topicParts[2] != "topics" {
		return nil, fmt.Errorf("invalid topic resource format: %s", topic)
	}

	client, err := pubsub.NewClient(ctx, topicParts[1], opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic client: %w", err)
	}

	return &PubSubPublisher{
		client:    client,
		publisher: client.Publisher(topic),
		topic:     topic,
	}, nil
}

// Publish publishes a message and waits for the server ID
func (p *PubSubPublisher) Publish(ctx context.Context, message *Message) (string, error) {
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       message.Data,
		Attributes: message.Attributes,
	})
	return result.Get(ctx)
}

// Close cleans up resources
func (p *PubSubPublisher) Close() error {
	p.publisher.Stop()
	return p.client.Close()
}

// GroupMessages builds one message per group of the plan
func GroupMessages(plan *Plan, batchID string) []*Message {
	messages := make([]*Message, 0, len(plan.Groups))
	for i, group := range plan.Groups {
		messages = append(messages, &Message{
			Data: []byte(strings.Join(group, constants.NameSeparator)),
			Attributes: map[string]string{
				constants.AttrBatchID:    batchID,
				constants.AttrGroupIndex: strconv.Itoa(i),
				constants.AttrGroupCount: strconv.Itoa(len(plan.Groups)),
				constants.AttrSource:     plan.Source,
			},
		})
	}
	return messages
}

// PublishGroups sends the plan's groups in order and stops at the first failure.
// It returns the number of groups published. log is expected to carry the
// batch and topic fields already.
func PublishGroups(ctx context.Context, publisher GroupPublisher, plan *Plan, batchID string, log logger.Logger) (int, error) {
	published := 0
	for i, message := range GroupMessages(plan, batchID) {
		id, err := publisher.Publish(ctx, message)
		if err != nil {
			return published, fmt.Errorf("failed to publish group %d: %w", i, err)
		}
		log.Info("Published group",
			logger.Int("groupIndex", i),
			logger.String("messageID", id))
		published++
	}
	return published, nil
}

// BatchInfo describes one publish run
type BatchInfo struct {
	ID      string
	Topic   string
	Timeout time.Duration
}

// PublishBatch publishes the plan with every log entry tagged with the batch
// id and topic, and logs where a failed run stopped.
func PublishBatch(ctx context.Context, publisher GroupPublisher, plan *Plan, batch BatchInfo, log logger.Logger) (int, error) {
	log = log.WithFields(logger.String("batchID", batch.ID), logger.String("topic", batch.Topic))
	log.Debug("Publishing groups",
		logger.Int("groups", len(plan.Groups)),
		logger.Any("timeout", batch.Timeout))

	published, err := PublishGroups(ctx, publisher, plan, batch.ID, log)
	if err != nil {
		log.Error("Publishing stopped", err, logger.Int("published", published))
		return published, err
	}
	return published, nil
}
