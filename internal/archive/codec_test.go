package archive

import (
	"context"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"

	"github.com/coldstore/filed/internal/testutil"
)

type smallPayload struct {
	Value string `json:"value"`
}

func TestCompressedWriteSkipsCompressionBelowThreshold(t *testing.T) {
	backend := newMemBackend()
	opts := codecOptions{timeout: defaultCodecOptions.timeout, level: lz4.Level9, minCompressSize: 256}

	want := smallPayload{Value: "tiny"}
	if err := compressedWrite(context.Background(), backend, "small", want, opts); err != nil {
		t.Fatalf("compressedWrite() error: %v", err)
	}

	backend.mu.Lock()
	raw := backend.objects["small"]
	backend.mu.Unlock()
	if len(raw) == 0 || raw[0] != rawEnvelope {
		t.Fatalf("expected small payload to use the raw envelope, got first byte %v", raw[:min(1, len(raw))])
	}

	var got smallPayload
	if err := unmarshalCompressed(context.Background(), backend, "small", &got); err != nil {
		t.Fatalf("unmarshalCompressed() error: %v", err)
	}
	if diff := testutil.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCompressedWriteCompressesAboveThreshold(t *testing.T) {
	backend := newMemBackend()
	opts := codecOptions{timeout: defaultCodecOptions.timeout, level: lz4.Level9, minCompressSize: 16}

	want := smallPayload{Value: strings.Repeat("x", 1024)}
	if err := compressedWrite(context.Background(), backend, "big", want, opts); err != nil {
		t.Fatalf("compressedWrite() error: %v", err)
	}

	backend.mu.Lock()
	raw := backend.objects["big"]
	backend.mu.Unlock()
	if len(raw) == 0 || raw[0] != lz4Envelope {
		t.Fatalf("expected large payload to use the lz4 envelope, got first byte %v", raw[:min(1, len(raw))])
	}

	var got smallPayload
	if err := unmarshalCompressed(context.Background(), backend, "big", &got); err != nil {
		t.Fatalf("unmarshalCompressed() error: %v", err)
	}
	if diff := testutil.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
