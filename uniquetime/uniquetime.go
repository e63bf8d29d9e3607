// Package uniquetime provides strictly increasing, host-wide unique
// timestamps with microsecond and nanosecond resolution, backed by a
// small file shared by every process on the host.
package uniquetime

import (
	"encoding/binary"
	"hash/fnv"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spaolacci/murmur3"
	"gopkg.in/gholt/brimtime.v1"

	"github.com/gholt/bytestore/mmap"
)

const (
	sharedFileName = "bytestore-uniquetime"
	sharedPageSize = 4096

	offsetNanoLast      = 0  // int64: last nanosecond-mode timestamp issued
	offsetMicroLast     = 8  // int64: last microsecond-mode timestamp issued
	offsetHostNonce     = 16 // int64: persisted fallback host nonce
	offsetHeaderCheck   = 24 // int32: murmur3 checksum of the host identifier

	nanoStride  = 1 << 5 // 5 low bits carry the host id
	nanoMask    = nanoStride - 1
	microStride = 10 // 1 low decimal digit carries the host id
)

// Provider issues unique timestamps backed by one shared mapped file.
type Provider struct {
	store     *mmap.ChunkedBytesStore
	hostNano  int64 // in [0, 32)
	hostMicro int64 // in [0, 10)
}

var (
	mu   sync.Mutex
	prov *Provider
)

// Init opens (creating if absent) the shared timestamp file under dir and
// installs it as the package-level provider. dir == "" uses os.TempDir().
// Init fails with ErrAlreadyInitialized if a provider is already active;
// call Close first.
func Init(dir string) error {
	mu.Lock()
	defer mu.Unlock()
	if prov != nil {
		return ErrAlreadyInitialized
	}
	p, err := newProvider(dir)
	if err != nil {
		return err
	}
	prov = p
	return nil
}

// Close releases the package-level provider's shared mapping, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if prov == nil {
		return nil
	}
	err := prov.store.ReleaseLast()
	prov = nil
	return err
}

// ensure lazily installs the default provider (os.TempDir()) on first
// use, so callers that never call Init still get working timestamps.
func ensure() (*Provider, error) {
	mu.Lock()
	defer mu.Unlock()
	if prov != nil {
		return prov, nil
	}
	p, err := newProvider("")
	if err != nil {
		return nil, err
	}
	prov = p
	return prov, nil
}

func newProvider(dir string) (*Provider, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, sharedFileName)
	store, err := mmap.Open(path, sharedPageSize, 0, mmap.SyncNone)
	if err != nil {
		return nil, err
	}
	hostID, err := hostIdentifier(store)
	if err != nil {
		store.ReleaseLast()
		return nil, err
	}
	if err := verifyHeaderChecksum(store, hostID); err != nil {
		store.ReleaseLast()
		return nil, err
	}
	return &Provider{
		store:     store,
		hostNano:  hostID % nanoStride,
		hostMicro: hostID % microStride,
	}, nil
}

// hostIdentifier derives a stable per-host value from the first
// non-loopback interface's hardware address. Hosts with no such
// interface (containers sharing a bridge network, typically) fall back
// to a nonce persisted in the shared file itself, installed atomically
// by whichever process first creates the file.
func hostIdentifier(store *mmap.ChunkedBytesStore) (int64, error) {
	if mac := firstHardwareAddr(); mac != nil {
		h := fnv.New64a()
		h.Write(mac)
		return int64(h.Sum64() & 0x7fffffffffffffff), nil
	}
	for {
		existing, err := store.ReadLong(offsetHostNonce)
		if err != nil {
			return 0, err
		}
		if existing != 0 {
			return existing, nil
		}
		candidate := time.Now().UnixNano() | 1
		ok, err := store.CompareAndSwapLong(offsetHostNonce, 0, candidate)
		if err != nil {
			return 0, err
		}
		if ok {
			return candidate, nil
		}
	}
}

// verifyHeaderChecksum guards the shared file's host identifier the same
// way the teacher's ChecksummedReader validates a .value/.toc file
// header: a murmur3 checksum installed once (by whichever process first
// computes it) and compared on every subsequent open. A mismatch means
// two hosts are racing on the same shared file, or it is corrupted.
func verifyHeaderChecksum(store *mmap.ChunkedBytesStore, hostID int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(hostID))
	h := murmur3.New32()
	h.Write(buf[:])
	want := int32(h.Sum32())
	for {
		got, err := store.ReadInt(offsetHeaderCheck)
		if err != nil {
			return err
		}
		if got == want {
			return nil
		}
		if got == 0 {
			ok, err := store.CompareAndSwapInt(offsetHeaderCheck, 0, want)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
			continue
		}
		return ErrHeaderChecksumMismatch
	}
}

func firstHardwareAddr() net.HardwareAddr {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr
	}
	return nil
}

// NowNanos returns a strictly increasing, host-wide unique nanosecond
// timestamp from the default (lazily initialized) provider.
func NowNanos() int64 {
	p, err := ensure()
	if err != nil {
		panic(err)
	}
	return p.NowNanos()
}

// NowMicros returns a strictly increasing, host-wide unique microsecond
// timestamp from the default (lazily initialized) provider.
func NowMicros() int64 {
	p, err := ensure()
	if err != nil {
		panic(err)
	}
	return p.NowMicros()
}

// ToMicros converts a nanosecond timestamp previously returned by
// NowNanos to the same-provider microsecond form: truncate to
// microseconds, then re-encode the host identifier into the low decimal
// digit the way NowMicros does.
func ToMicros(nanos int64) int64 {
	p, err := ensure()
	if err != nil {
		panic(err)
	}
	return p.ToMicros(nanos)
}

// NowNanos is the per-provider form of the package-level NowNanos.
func (p *Provider) NowNanos() int64 {
	for {
		last, err := p.store.ReadLong(offsetNanoLast)
		if err != nil {
			panic(err)
		}
		candidate := time.Now().UnixNano()
		if candidate < last+nanoStride {
			candidate = last + nanoStride
		}
		candidate = (candidate &^ nanoMask) | p.hostNano
		if candidate <= last {
			candidate = ((last + nanoStride) &^ nanoMask) | p.hostNano
		}
		ok, err := p.store.CompareAndSwapLong(offsetNanoLast, last, candidate)
		if err != nil {
			panic(err)
		}
		if ok {
			return candidate
		}
	}
}

// NowMicros is the per-provider form of the package-level NowMicros.
func (p *Provider) NowMicros() int64 {
	for {
		last, err := p.store.ReadLong(offsetMicroLast)
		if err != nil {
			panic(err)
		}
		candidate := int64(brimtime.TimeToUnixMicro(time.Now()))
		if candidate < last+microStride {
			candidate = last + microStride
		}
		candidate = (candidate/microStride)*microStride + p.hostMicro
		if candidate <= last {
			candidate = ((last+microStride)/microStride)*microStride + p.hostMicro
		}
		ok, err := p.store.CompareAndSwapLong(offsetMicroLast, last, candidate)
		if err != nil {
			panic(err)
		}
		if ok {
			return candidate
		}
	}
}

// ToMicros is the per-provider form of the package-level ToMicros.
func (p *Provider) ToMicros(nanos int64) int64 {
	micros := nanos / 1000
	return (micros/microStride)*microStride + p.hostMicro
}
