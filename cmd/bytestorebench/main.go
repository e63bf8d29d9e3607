// Command bytestorebench is an ad hoc benchmarking harness for the
// bytestore core, exercising cursor writes, the stop-bit codec, the
// chunked mapped store, and the unique-time provider under concurrent
// load. It is not a general benchmarking framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gholt/brimtext"
	"github.com/jessevdk/go-flags"
	"gopkg.in/gholt/brimutil.v1"

	"github.com/gholt/bytestore"
	"github.com/gholt/bytestore/codec"
	"github.com/gholt/bytestore/mmap"
	"github.com/gholt/bytestore/uniquetime"
)

type optsStruct struct {
	Clients int    `long:"clients" description:"Number of concurrent clients. Default: cores*cores"`
	Cores   int    `long:"cores" description:"Number of cores. Default: CPU core count"`
	Number  int    `short:"n" long:"number" description:"Operations per client. Default: 100000"`
	Length  int    `short:"l" long:"length" description:"Value length in bytes for the write test. Default: 64"`
	Guarded bool   `long:"guarded" description:"Use guarded (canary-checked) native allocations."`
	MmapDir string `long:"mmap-dir" description:"Directory for the mmap chunk-resolution benchmark. Default: OS temp dir."`

	Positional struct {
		Tests []string `name:"tests" description:"write stopbit mmap uniquetime"`
	} `positional-args:"yes"`

	st runtime.MemStats
}

var opts optsStruct
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = append(args, "-h")
	}
	if _, err := parser.ParseArgs(args); err != nil {
		os.Exit(1)
	}
	for _, arg := range opts.Positional.Tests {
		switch arg {
		case "write", "stopbit", "mmap", "uniquetime":
		default:
			fmt.Fprintf(os.Stderr, "Unknown test named %#v.\n", arg)
			os.Exit(1)
		}
	}
	if opts.Cores > 0 {
		runtime.GOMAXPROCS(opts.Cores)
	} else if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}
	opts.Cores = runtime.GOMAXPROCS(0)
	if opts.Clients == 0 {
		opts.Clients = opts.Cores * opts.Cores
	}
	if opts.Number == 0 {
		opts.Number = 100000
	}
	if opts.Length == 0 {
		opts.Length = 64
	}
	fmt.Println(opts.Cores, "cores")
	fmt.Println(opts.Clients, "clients")
	fmt.Println(opts.Number, "ops per client")
	memstat()
	rows := [][]string{{"test", "duration", "rate", "detail"}}
	for _, arg := range opts.Positional.Tests {
		switch arg {
		case "write":
			rows = append(rows, writeTest())
		case "stopbit":
			rows = append(rows, stopbitTest())
		case "mmap":
			rows = append(rows, mmapTest())
		case "uniquetime":
			rows = append(rows, uniquetimeTest())
		}
		memstat()
	}
	if len(rows) > 1 {
		fmt.Print(brimtext.Align(rows, nil))
	}
}

func memstat() {
	lastAlloc := opts.st.TotalAlloc
	runtime.ReadMemStats(&opts.st)
	deltaAlloc := opts.st.TotalAlloc - lastAlloc
	fmt.Printf("%0.2fG total alloc, %0.2fG delta\n\n", float64(opts.st.TotalAlloc)/1024/1024/1024, float64(deltaAlloc)/1024/1024/1024)
}

// writeTest fans out opts.Clients goroutines, each driving its own
// elastic Bytes cursor through opts.Number appends of an
// opts.Length-byte payload. Each
// client seeds its payload from brimutil.NewSeededScrambled, the same
// deterministic pseudo-random fill the teacher uses to seed its
// keyspace/value buffers, keyed by goroutine index so runs are
// reproducible.
func writeTest() []string {
	begin := time.Now()
	wg := &sync.WaitGroup{}
	wg.Add(opts.Clients)
	var totalBytes uint64
	for i := 0; i < opts.Clients; i++ {
		i := i
		go func() {
			defer wg.Done()
			b, err := bytestore.NewElastic(int64(opts.Length), opts.Guarded)
			if err != nil {
				panic(err)
			}
			defer b.Release()
			payload := make([]byte, opts.Length)
			brimutil.NewSeededScrambled(int64(i)).Read(payload)
			var n uint64
			for j := 0; j < opts.Number; j++ {
				b.Clear()
				if err := b.Append(string(payload)); err != nil {
					panic(err)
				}
				n += uint64(b.WritePosition())
			}
			atomic.AddUint64(&totalBytes, n)
		}()
	}
	wg.Wait()
	dur := time.Since(begin)
	total := opts.Clients * opts.Number
	fmt.Printf("%s %.0f/s to write %d values (%d bytes)\n", dur, float64(total)/dur.Seconds(), total, totalBytes)
	return []string{"write", dur.String(), fmt.Sprintf("%.0f/s", float64(total)/dur.Seconds()), fmt.Sprintf("%d bytes", totalBytes)}
}

// stopbitTest round-trips a spread of magnitudes through the stop-bit
// codec, measuring encode+decode throughput.
func stopbitTest() []string {
	values := []uint64{0, 1, 127, 128, 1 << 20, 1 << 40, ^uint64(0)}
	begin := time.Now()
	var ops uint64
	wg := &sync.WaitGroup{}
	wg.Add(opts.Clients)
	for i := 0; i < opts.Clients; i++ {
		go func() {
			defer wg.Done()
			hs, err := bytestore.NewElastic(16, false)
			if err != nil {
				panic(err)
			}
			defer hs.Release()
			var n uint64
			for j := 0; j < opts.Number; j++ {
				hs.Clear()
				v := values[j%len(values)]
				if _, err := codec.WriteStopBitUint64(hs, v); err != nil {
					panic(err)
				}
				hs.FlipToRead()
				got, _, err := codec.ReadStopBitUint64(hs)
				if err != nil {
					panic(err)
				}
				if got != v {
					panic("stop-bit round trip mismatch")
				}
				n++
			}
			atomic.AddUint64(&ops, n)
		}()
	}
	wg.Wait()
	dur := time.Since(begin)
	fmt.Printf("%s %.0f/s stop-bit round trips (%d total)\n", dur, float64(ops)/dur.Seconds(), ops)
	return []string{"stopbit", dur.String(), fmt.Sprintf("%.0f/s", float64(ops)/dur.Seconds()), fmt.Sprintf("%d total", ops)}
}

// mmapTest drives sequential writes across a chunked mapped store large
// enough to exercise several chunk boundaries.
func mmapTest() []string {
	dir := opts.MmapDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("bytestorebench-%d.dat", time.Now().UnixNano()))
	const chunkSize = 262144
	const overlap = 65536
	s, err := mmap.Open(path, chunkSize, overlap, mmap.SyncNone)
	if err != nil {
		panic(err)
	}
	defer os.Remove(path)
	defer s.ReleaseLast()

	begin := time.Now()
	var offset int64
	for j := 0; j < opts.Number; j++ {
		if err := s.WriteLong(offset, int64(j)); err != nil {
			panic(err)
		}
		offset += 8
	}
	dur := time.Since(begin)
	fmt.Printf("%s %.0f/s sequential mmap writes (%d total, realCapacity=%d)\n", dur, float64(opts.Number)/dur.Seconds(), opts.Number, s.RealCapacity())
	return []string{"mmap", dur.String(), fmt.Sprintf("%.0f/s", float64(opts.Number)/dur.Seconds()), fmt.Sprintf("realCapacity=%d", s.RealCapacity())}
}

// uniquetimeTest issues opts.Number timestamps per client and checks that
// each client observes a strictly increasing sequence.
func uniquetimeTest() []string {
	begin := time.Now()
	wg := &sync.WaitGroup{}
	wg.Add(opts.Clients)
	var ops uint64
	for i := 0; i < opts.Clients; i++ {
		go func() {
			defer wg.Done()
			var prev int64
			for j := 0; j < opts.Number; j++ {
				t := uniquetime.NowNanos()
				if t <= prev {
					panic("uniquetime: non-monotonic timestamp observed")
				}
				prev = t
			}
			atomic.AddUint64(&ops, uint64(opts.Number))
		}()
	}
	wg.Wait()
	dur := time.Since(begin)
	fmt.Printf("%s %.0f/s unique timestamps (%d total)\n", dur, float64(ops)/dur.Seconds(), ops)
	return []string{"uniquetime", dur.String(), fmt.Sprintf("%.0f/s", float64(ops)/dur.Seconds()), fmt.Sprintf("%d total", ops)}
}
