package utils

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lukechampine.com/blake3"
)

func TestChunkSizeFor(t *testing.T) {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)

	cases := []struct {
		name  string
		input int64
		want  int64
	}{
		{"unknownOrZero", 0, 512 * kib},
		{"negative", -1, 512 * kib},
		{"under4MiB", 3*mib + 512*kib, 512 * kib},
		{"exact4MiB", 4 * mib, 512 * kib},
		{"justOver4MiB", 4*mib + 1, 1 * mib},
		{"exact32MiB", 32 * mib, 1 * mib},
		{"justOver32MiB", 32*mib + 1, 2 * mib},
		{"exact2GiB", 2 * gib, 2 * mib},
		{"above2GiB", 2*gib + 1, 4 * mib},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := chunkSizeFor(tc.input); got != tc.want {
				t.Fatalf("chunkSizeFor(%d) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestHashReaderCountsAndDigests(t *testing.T) {
	t.Parallel()

	msg := []byte(strings.Repeat("sha256 data", 1<<16))
	want := sha256.Sum256(msg)

	h := NewSHA256()
	n, err := HashReader(context.Background(), h, bytes.NewReader(msg), int64(len(msg)))
	if err != nil {
		t.Fatalf("HashReader returned error: %v", err)
	}
	if n != int64(len(msg)) {
		t.Fatalf("HashReader counted %d bytes, want %d", n, len(msg))
	}
	if !bytes.Equal(h.Sum(nil), want[:]) {
		t.Fatalf("hash mismatch")
	}
}

func TestHashReaderEmpty(t *testing.T) {
	t.Parallel()

	want := sha256.Sum256(nil)
	h := NewSHA256()
	n, err := HashReader(context.Background(), h, bytes.NewReader(nil), 0)
	if err != nil || n != 0 {
		t.Fatalf("HashReader(empty) = (%d, %v)", n, err)
	}
	if !bytes.Equal(h.Sum(nil), want[:]) {
		t.Fatalf("hash mismatch for empty input")
	}
}

func TestHashReaderCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := HashReader(ctx, NewSHA256(), strings.NewReader("data"), 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	createFile := func(name string, content []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
		return path
	}

	smallData := []byte(strings.Repeat("0123456789abcdef", 1<<10))
	largeData := make([]byte, 5<<20) // 5 MiB zeroed payload

	smallFile := createFile("small.bin", smallData)
	emptyFile := createFile("empty.bin", nil)
	largeFile := createFile("large.bin", largeData)

	sha := func(b []byte) []byte { s := sha256.Sum256(b); return s[:] }
	b3 := func(b []byte) []byte { s := blake3.Sum256(b); return s[:] }

	tests := []struct {
		name    string
		path    string
		blake   bool
		want    []byte
		size    int64
		wantErr bool
	}{
		{name: "small sha256", path: smallFile, want: sha(smallData), size: int64(len(smallData))},
		{name: "empty sha256", path: emptyFile, want: sha(nil)},
		{name: "large sha256", path: largeFile, want: sha(largeData), size: int64(len(largeData))},
		{name: "small blake3", path: smallFile, blake: true, want: b3(smallData), size: int64(len(smallData))},
		{name: "large blake3", path: largeFile, blake: true, want: b3(largeData), size: int64(len(largeData))},
		{name: "file missing", path: filepath.Join(dir, "missing.bin"), wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			newHash := NewSHA256
			if tc.blake {
				newHash = NewBLAKE3
			}
			h := newHash()
			n, err := HashFile(context.Background(), h, tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("error mismatch: wantErr=%v err=%v", tc.wantErr, err)
			}
			if tc.wantErr {
				return
			}
			if n != tc.size {
				t.Fatalf("size mismatch: got %d want %d", n, tc.size)
			}
			if got := h.Sum(nil); !bytes.Equal(got, tc.want) {
				t.Fatalf("hash mismatch: got %x want %x", got, tc.want)
			}
		})
	}
}

type errorAfterFirstRead struct {
	first bool
	err   error
	data  []byte
}

func (r *errorAfterFirstRead) Read(p []byte) (int, error) {
	if !r.first {
		r.first = true
		n := copy(p, r.data)
		return n, nil
	}
	return 0, r.err
}

func TestHashReaderReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("read boom")
	r := &errorAfterFirstRead{
		data: []byte("abc"),
		err:  readErr,
	}

	n, err := HashReader(context.Background(), NewBLAKE3(), r, 0)
	if !errors.Is(err, readErr) {
		t.Fatalf("expected read error to propagate, got %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 bytes consumed before failure, got %d", n)
	}
}
