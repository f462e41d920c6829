// Command filed runs a small instrumented record pipeline: a reader stage
// generates records, a processing stage times itself with the block
// profiler, and a writer stage drains the result. Profiler snapshots are
// periodically archived and lifecycle events are published to Kafka,
// while /debug/* endpoints expose the live profiler state.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/coldstore/filed/internal/archive"
	"github.com/coldstore/filed/internal/channel"
	"github.com/coldstore/filed/internal/clock"
	"github.com/coldstore/filed/internal/config"
	"github.com/coldstore/filed/internal/debugsrv"
	"github.com/coldstore/filed/internal/events"
	"github.com/coldstore/filed/internal/logging"
	"github.com/coldstore/filed/internal/profiler"
	"github.com/coldstore/filed/internal/quantile"
	"github.com/coldstore/filed/internal/report"
)

var release string

var (
	blockRead     = &profiler.BlockIdentity{Name: "read"}
	blockProcess  = &profiler.BlockIdentity{Name: "process"}
	blockCompress = &profiler.BlockIdentity{Name: "compress"}
	blockWrite    = &profiler.BlockIdentity{Name: "write"}
)

type record struct {
	seq     int
	payload []byte
}

func main() {
	logging.Configure(os.Getenv("FILED_LOG_PRETTY") == "true")
	log := logging.Component("main")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Configure(cfg.LogPretty)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     release,
		}); err != nil {
			log.Error().Err(err).Msg("failed to initialize sentry")
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	registry := profiler.NewRegistry(clock.Real{})
	latency := quantile.NewTracker()

	archiveBackend, err := newArchiveBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize archive backend")
	}

	snapProducer, snapConsumer := channel.NewChannel[archive.Snapshot](8)
	archiver := archive.NewArchiver(archiveBackend, snapConsumer)

	var publisher *events.Publisher
	if len(cfg.EventsKafkaBrokers) > 0 {
		publisher = events.NewPublisher(cfg.EventsKafkaBrokers, cfg.EventsKafkaTopic)
		defer publisher.Close()
	}

	srv, err := debugsrv.New(debugsrv.Options{
		Addr:      cfg.DebugListenAddr,
		Registry:  registry,
		Callstack: registry.Callstack(),
		Overview:  registry.Overview(),
		Latency:   latency,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build debug server")
	}

	readP, readC := channel.NewChannel[record](cfg.ChannelCapacity)
	procP, procC := channel.NewChannel[record](cfg.ChannelCapacity)

	go runReader(registry, readP)
	go runProcessor(registry, latency, readC, procP)
	go runWriter(registry, procC)
	go runSnapshotter(ctx, registry, snapProducer, cfg.ArchiveFlushInterval)
	go func() {
		if err := archiver.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("archiver stopped unexpectedly")
		}
	}()
	if publisher != nil {
		go publishQueueSaturation(ctx, publisher, "pipeline.read", readP)
	}

	log.Info().Str("addr", cfg.DebugListenAddr).Msg("starting debug server")
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("debug server stopped with error")
	}
}

func newArchiveBackend(cfg *config.Config) (archive.ObjectHandler, error) {
	switch cfg.ArchiveBackend {
	case "gcs":
		ctx := context.Background()
		client, err := storageNewClient(ctx)
		if err != nil {
			return nil, err
		}
		return &archive.GCSBackend{Bucket: client.Bucket(cfg.ArchiveGCSBucket), Prefix: cfg.ArchiveGCSPrefix}, nil
	default:
		db, err := badgerOpen(cfg.ArchiveBadgerDir)
		if err != nil {
			return nil, err
		}
		return &archive.BadgerBackend{DB: db}, nil
	}
}

func runReader(reg *profiler.Registry, out *channel.Producer[record]) {
	var seq int
	for {
		end := reg.TimedBlock(blockRead)
		seq++
		rec := record{seq: seq, payload: []byte(time.Now().String())}
		end()

		if !out.Emplace(rec) {
			return
		}
	}
}

func runProcessor(reg *profiler.Registry, latency *quantile.Tracker, in *channel.Consumer[record], out *channel.Producer[record]) {
	defer out.Close()
	for {
		rec, ok := in.Get()
		if !ok {
			return
		}
		endProcess := latency.TimedBlock(reg, blockProcess)
		endCompress := reg.TimedBlock(blockCompress)
		rec.payload = append([]byte{}, rec.payload...)
		endCompress()
		endProcess()

		if !out.Emplace(rec) {
			return
		}
	}
}

func runWriter(reg *profiler.Registry, in *channel.Consumer[record]) {
	for {
		_, ok := in.Get()
		if !ok {
			return
		}
		end := reg.TimedBlock(blockWrite)
		end()
	}
}

func runSnapshotter(ctx context.Context, reg *profiler.Registry, out *channel.Producer[archive.Snapshot], interval time.Duration) {
	defer out.Close()
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			snap := archive.Snapshot{
				CapturedAt: now,
				Callstack:  report.Callstack(reg.Callstack(), now, 0, true),
				Collapsed:  report.Collapsed(reg.Callstack(), now, 0),
				Overview:   report.Overview(reg.Overview(), now, 0),
			}
			if !out.Emplace(snap) {
				return
			}
		}
	}
}

func publishQueueSaturation(ctx context.Context, p *events.Publisher, name string, prod *channel.Producer[record]) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if prod.Closed() {
				_ = p.Publish(ctx, events.Event{
					Kind:    events.KindProducerClosed,
					Channel: name,
					At:      time.Now(),
				})
				return
			}
		}
	}
}
