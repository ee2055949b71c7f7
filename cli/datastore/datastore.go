package datastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-redis/redis/v8"

	"github.com/oaiiae/contacts-directory/datastores"
)

type StoreOptions struct {
	StoreBackend string `doc:"store contacts in file, sqlite, redis or memory" default:"file"`
	StorePath    string `doc:"path of the contacts file or sqlite database"    default:"contacts.json"`
	StoreKey     string `doc:"key of the contacts blob in sqlite or redis"      default:"contacts"`
	RedisAddr    string `doc:"address of the redis server"                      default:"localhost:6379"`
}

// Open returns the blob selected by options, metered into set.
func Open(options *StoreOptions, set *metrics.Set) (datastores.Blob, error) {
	var blob datastores.Blob
	switch strings.ToLower(options.StoreBackend) {
	case "file":
		blob = datastores.NewBlobFile(options.StorePath)
	case "sqlite":
		var err error
		blob, err = datastores.OpenBlobSQLite(options.StorePath, options.StoreKey)
		if err != nil {
			return nil, err
		}
	case "redis":
		blob = datastores.NewBlobRedis(redis.NewClient(&redis.Options{Addr: options.RedisAddr}), options.StoreKey)
	case "memory":
		blob = datastores.NewBlobInmem(nil)
	default:
		return nil, fmt.Errorf("unknown store backend %q", options.StoreBackend)
	}
	return Metered(blob, strings.ToLower(options.StoreBackend), set), nil
}

// NewContactsStore opens the blob and builds the contacts store on top of it.
func NewContactsStore(options *StoreOptions, set *metrics.Set, logger *slog.Logger) (*datastores.ContactsJSON, datastores.Blob, error) {
	blob, err := Open(options, set)
	if err != nil {
		return nil, nil, err
	}
	return datastores.NewContactsJSON(blob, datastores.WithLogger(logger)), blob, nil
}

type meteredBlob struct {
	datastores.Blob
	read, write, ping metric
}

type metric struct {
	ok, failed *metrics.Counter
	duration   *metrics.PrometheusHistogram
}

func newMetric(set *metrics.Set, backend, op string) metric {
	buckets := metrics.ExponentialBuckets(1e-4, 5, 6) //nolint: mnd // arbitrary
	labels := func(result string) string {
		return `{backend="` + backend + `",op="` + op + `",result="` + result + `"}`
	}
	return metric{
		ok:       set.NewCounter("datastore_ops_total" + labels("ok")),
		failed:   set.NewCounter("datastore_ops_total" + labels("error")),
		duration: set.NewPrometheusHistogramExt(`datastore_op_duration_seconds{backend="`+backend+`",op="`+op+`"}`, buckets),
	}
}

func (m metric) observe(start time.Time, err error) {
	m.duration.UpdateDuration(start)
	if err != nil {
		m.failed.Inc()
	} else {
		m.ok.Inc()
	}
}

// Metered wraps blob so that every call is counted and timed in set.
func Metered(blob datastores.Blob, backend string, set *metrics.Set) datastores.Blob {
	return &meteredBlob{
		Blob:  blob,
		read:  newMetric(set, backend, "read"),
		write: newMetric(set, backend, "write"),
		ping:  newMetric(set, backend, "ping"),
	}
}

func (b *meteredBlob) Read(ctx context.Context) ([]byte, error) {
	start := time.Now()
	data, err := b.Blob.Read(ctx)
	if errors.Is(err, datastores.ErrBlobNotExist) {
		b.read.observe(start, nil)
	} else {
		b.read.observe(start, err)
	}
	return data, err
}

func (b *meteredBlob) Write(ctx context.Context, data []byte) error {
	start := time.Now()
	err := b.Blob.Write(ctx, data)
	b.write.observe(start, err)
	return err
}

func (b *meteredBlob) Ping(ctx context.Context) error {
	start := time.Now()
	err := b.Blob.Ping(ctx)
	b.ping.observe(start, err)
	return err
}
