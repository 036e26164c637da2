package utils

import (
	"context"
	"crypto/sha256"
	"hash"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// NewSHA256 returns a fresh SHA-256 hash.
func NewSHA256() hash.Hash { return sha256.New() }

// NewBLAKE3 returns a fresh 256-bit BLAKE3 hash.
func NewBLAKE3() hash.Hash { return blake3.New(32, nil) }

// HashReader streams r into h using an adaptive, manual buffered read loop
// and returns the number of bytes consumed. The loop avoids the
// *os.File.WriteTo fast-path that limits throughput when using
// io.Copy/io.CopyBuffer.
//
// The buffer size is chosen from sizeHint:
//
//	≤ 4 MiB      → 512 KiB buffer
//	4–32 MiB     → 1 MiB buffer
//	32 MiB–2 GiB → 2 MiB buffer
//	>  2 GiB     → 4 MiB buffer
//
// ctx is checked between reads.
func HashReader(ctx context.Context, h hash.Hash, r io.Reader, sizeHint int64) (int64, error) {
	buf := make([]byte, chunkSizeFor(sizeHint))

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return total, rerr
		}
	}
	return total, nil
}

// chunkSizeFor returns the hashing chunk size based on total input size.
func chunkSizeFor(total int64) int64 {
	if total <= 0 {
		return 512 << 10 // 512 KiB default when total size is unknown
	}
	switch {
	case total <= 4<<20: // ≤ 4 MiB
		return 512 << 10 // 512 KiB
	case total <= 32<<20: // ≤ 32 MiB
		return 1 << 20 // 1 MiB
	case total <= 2<<30: // ≤ 2 GiB
		return 2 << 20 // 2 MiB
	default: // very large files > 2 GiB
		return 4 << 20 // 4 MiB cap
	}
}

// OpenSized opens filePath for reading and returns its size as a chunking hint.
func OpenSized(filePath string) (*os.File, int64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, fi.Size(), nil
}

// HashFile streams the file at filePath into h and returns the number of
// bytes read. h is not finalised so callers can append framing before Sum.
func HashFile(ctx context.Context, h hash.Hash, filePath string) (int64, error) {
	f, size, err := OpenSized(filePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return HashReader(ctx, h, f, size)
}
