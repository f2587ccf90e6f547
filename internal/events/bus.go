// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/metrics"
)

// Metadata keys set on published messages.
const (
	MetadataEventType     = "event_type"
	MetadataCorrelationID = "correlation_id"
)

// Bus carries events from the HTTP handlers to the consumer.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	transport  string
	logger     watermill.LoggerAdapter
}

// NewBus creates the publisher and subscriber for cfg.Transport: "channel"
// (in-process gochannel) or "nats" (JetStream).
func NewBus(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "newsprep-events"
	}

	transport := strings.ToLower(cfg.Transport)
	switch transport {
	case "", "channel":
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger)
		return &Bus{publisher: ch, subscriber: ch, topic: topic, transport: "channel", logger: logger}, nil

	case "nats":
		pub, sub, err := newNATS(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Bus{publisher: pub, subscriber: sub, topic: topic, transport: transport, logger: logger}, nil

	default:
		return nil, fmt.Errorf("unknown events transport %q", cfg.Transport)
	}
}

func newNATS(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	if cfg.NATSURL == "" {
		return nil, nil, errors.New("events.nats_url is required for the nats transport")
	}

	natsOpts := []natsgo.Option{
		natsgo.Name("newsprep"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: true,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create nats publisher: %w", err)
	}

	closeTimeout := cfg.CloseTimeout
	if closeTimeout <= 0 {
		closeTimeout = 10 * time.Second
	}
	subscribers := cfg.SubscribersCount
	if subscribers <= 0 {
		subscribers = 1
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.NATSURL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: subscribers,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     closeTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: true,
			DurablePrefix: cfg.DurableName,
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.DeliverNew(),
				natsgo.AckExplicit(),
			},
		},
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, fmt.Errorf("create nats subscriber: %w", err)
	}
	return pub, sub, nil
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string {
	return b.topic
}

// Transport returns "channel" or "nats".
func (b *Bus) Transport() string {
	return b.transport
}

// Subscriber returns the subscriber side for the router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Publish encodes ev and publishes it. The correlation id of ctx travels in
// the message metadata.
func (b *Bus) Publish(ctx context.Context, ev *Event) error {
	payload, err := ev.Marshal()
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventType, ev.Event)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}
	if b.transport == "nats" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	if err := b.publisher.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	metrics.RecordEventPublished(ev.Event)
	return nil
}

// Close closes the publisher and subscriber.
func (b *Bus) Close() error {
	if b.transport == "channel" {
		// Publisher and subscriber are the same GoChannel.
		return b.publisher.Close()
	}
	return errors.Join(b.publisher.Close(), b.subscriber.Close())
}
