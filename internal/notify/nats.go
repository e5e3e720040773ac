package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/sitenav/internal/config"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// NATSPublisher publishes report events on a JetStream subject and keeps the
// latest report per site in a KV bucket.
type NATSPublisher struct {
	conn     *nats.Conn
	js       jetstream.JetStream
	kv       jetstream.KeyValue
	subject  string
	kvBucket string
}

// NewNATSPublisher connects to NATS and opens (or creates) the KV bucket.
func NewNATSPublisher(ctx context.Context, cfg *config.NotifyConfig) (*NATSPublisher, error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("notify config is required").Build()
	}

	conn, err := nats.Connect(cfg.NATSURL, nats.Name("sitenav"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to connect to NATS").
			WithContext("url", cfg.NATSURL).Build()
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to create JetStream context").Build()
	}

	p := &NATSPublisher{
		conn:     conn,
		js:       js,
		subject:  cfg.Subject,
		kvBucket: cfg.KVBucket,
	}

	if err := p.initStream(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	if err := p.initKVBucket(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("NATS publisher initialized",
		"url", cfg.NATSURL,
		logfields.Subject(cfg.Subject),
		"kv_bucket", cfg.KVBucket)
	return p, nil
}

// initStream makes sure a stream captures the report subject so publishes
// are acknowledged.
func (p *NATSPublisher) initStream(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName(p.kvBucket),
		Description: "sitenav check reports",
		Subjects:    []string{p.subject},
		MaxMsgs:     10000,
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to create report stream").
			WithContext("subject", p.subject).Build()
	}
	return nil
}

func (p *NATSPublisher) initKVBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	kv, err := p.js.KeyValue(ctx, p.kvBucket)
	if err == nil {
		p.kv = kv
		return nil
	}

	kv, err = p.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      p.kvBucket,
		Description: "Latest sitenav report per site",
		History:     1,
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to create KV bucket").
			WithContext("bucket", p.kvBucket).Build()
	}
	p.kv = kv
	slog.Info("Created KV bucket for reports", "bucket", p.kvBucket)
	return nil
}

// Publish stamps event, publishes it and stores it as the site's latest report.
func (p *NATSPublisher) Publish(ctx context.Context, event *ReportEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event.Timestamp = time.Now().UTC()
	data, err := json.Marshal(event)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal report event").Build()
	}

	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to publish report event").
			WithContext("subject", p.subject).Build()
	}
	if _, err := p.kv.Put(ctx, SiteKey(event.Site), data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to store latest report").
			WithContext("bucket", p.kvBucket).Build()
	}

	slog.Debug("Published report event",
		logfields.RunID(event.RunID),
		logfields.Site(event.Site),
		logfields.Subject(p.subject))
	return nil
}

// Latest returns the last report stored for site, or nil when none exists.
func (p *NATSPublisher) Latest(ctx context.Context, site string) (*ReportEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	entry, err := p.kv.Get(ctx, SiteKey(site))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to read latest report").Build()
	}

	var event ReportEvent
	if err := json.Unmarshal(entry.Value(), &event); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to unmarshal report event").Build()
	}
	return &event, nil
}

// Close drains the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		return p.conn.Drain()
	}
	return nil
}

func streamName(bucket string) string {
	return "SITENAV_" + SiteKey(bucket)
}
