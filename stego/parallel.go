package stego

import (
	"fmt"
	"runtime"
	"sync"
)

// smallReadBytes is the size below which fanning a read out over
// goroutines costs more than it saves.
const smallReadBytes = 4096

// byteRange is a half-open range [Start, End) of payload byte indices.
type byteRange struct {
	Start, End int
}

// splitRange divides n bytes into w contiguous non-overlapping ranges
// whose sizes differ by at most one. The union is exactly [0, n).
func splitRange(n, w int) []byteRange {
	base, extra := n/w, n%w
	ranges := make([]byteRange, w)
	for t := range ranges {
		ranges[t] = byteRange{
			Start: t*base + min(extra, t),
			End:   (t+1)*base + min(extra, t+1),
		}
	}
	return ranges
}

// ReadBytes extracts byteCount payload bytes embedded at the given
// level starting at startSubpixel, fanning the work out over workers
// goroutines. Byte i lives in subpixels [start+i*8/level,
// start+(i+1)*8/level), so each worker's byte range maps to a disjoint
// subpixel range and fills a disjoint slice of the output buffer: no
// locks, no atomics, only the final wait. Output order matches a
// sequential read regardless of worker completion order.
//
// workers <= 0 selects runtime.NumCPU(); small reads collapse to a
// single worker.
func ReadBytes(pix []uint8, level EncodingLevel, startSubpixel, byteCount, workers int) ([]byte, error) {
	if startSubpixel < 0 || byteCount < 0 {
		return nil, fmt.Errorf("negative read: start %d, count %d", startSubpixel, byteCount)
	}
	per := level.SymbolsPerByte()
	if need := startSubpixel + byteCount*per; need > len(pix) {
		return nil, fmt.Errorf("read of %d bytes at subpixel %d needs %d subpixels, image has %d",
			byteCount, startSubpixel, need, len(pix))
	}
	if byteCount == 0 {
		return []byte{}, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if byteCount <= smallReadBytes {
		workers = 1
	}
	if workers > byteCount {
		workers = byteCount
	}

	out := make([]byte, byteCount)
	var wg sync.WaitGroup
	for _, r := range splitRange(byteCount, workers) {
		wg.Add(1)
		go func(r byteRange) {
			defer wg.Done()
			lo := startSubpixel + r.Start*per
			hi := startSubpixel + r.End*per
			copy(out[r.Start:r.End], packSymbols(ReadSymbols(pix[lo:hi], level), level))
		}(r)
	}
	wg.Wait()
	return out, nil
}
