package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pierrec/lz4/v4"
)

// Snapshots archived right after a flush are usually a few hundred bytes
// of plain-text report; LZ4's frame header and block overhead cost more
// than they save below this size, so codecOptions lets a caller skip
// compression for small payloads entirely.
const (
	rawEnvelope byte = 0
	lz4Envelope byte = 1
)

// codecOptions controls how compressedWrite trades write latency for
// storage size. The Archiver picks these based on what kind of object is
// being written, rather than every write paying one hardcoded policy.
type codecOptions struct {
	timeout         time.Duration
	level           lz4.CompressionLevel
	minCompressSize int
}

var defaultCodecOptions = codecOptions{
	timeout:         5 * time.Second,
	level:           lz4.Level9,
	minCompressSize: 256,
}

// compressedWrite JSON-encodes d and writes it to objectName on b, LZ4
// compressing the payload only when it's large enough for compression to
// be worth the framing overhead. The chosen envelope (raw or lz4) is
// recorded in a one-byte header so unmarshalCompressed can read either.
func compressedWrite(ctx context.Context, b ObjectHandler, objectName string, d any, opts codecOptions) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("archive: encoding %s: %w", objectName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	ow, err := b.Put(ctx, objectName)
	if err != nil {
		return err
	}

	if len(raw) < opts.minCompressSize {
		if _, err := ow.Write([]byte{rawEnvelope}); err != nil {
			return err
		}
		if _, err := ow.Write(raw); err != nil {
			return err
		}
		return ow.Close()
	}

	if _, err := ow.Write([]byte{lz4Envelope}); err != nil {
		return err
	}
	zw := lz4.NewWriter(ow)
	if err := zw.Apply(lz4.CompressionLevelOption(opts.level)); err != nil {
		return err
	}
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return ow.Close()
}

// unmarshalCompressed reads objectName off b and JSON-decodes it into d,
// transparently reversing whichever envelope compressedWrite chose.
func unmarshalCompressed(ctx context.Context, b ObjectHandler, objectName string, d any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultCodecOptions.timeout)
	defer cancel()

	or, err := b.Get(ctx, objectName)
	if err != nil {
		return err
	}
	defer or.Close()

	var envelope [1]byte
	if _, err := io.ReadFull(or, envelope[:]); err != nil {
		return fmt.Errorf("archive: reading envelope for %s: %w", objectName, err)
	}

	var r io.Reader = or
	if envelope[0] == lz4Envelope {
		r = lz4.NewReader(or)
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(d); err != nil {
		return fmt.Errorf("archive: decoding %s: %w", objectName, err)
	}
	return nil
}
