package main

import (
	"flag"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xgzlucario/listpack"
	"github.com/xgzlucario/listpack/internal/pkg"
)

var previousPause time.Duration

func gcPause() time.Duration {
	runtime.GC()
	var stats debug.GCStats
	debug.ReadGCStats(&stats)
	pause := stats.PauseTotal - previousPause
	previousPause = stats.PauseTotal
	return pause
}

func genKey(id int) string {
	return fmt.Sprintf("%08x", id)
}

func main() {
	c := ""
	entries := 0
	flag.StringVar(&c, "list", "listpack", "list to bench ([]string | listpack | quicklist).")
	flag.IntVar(&entries, "entries", 100*10000, "number of entries to test.")
	flag.Parse()

	fmt.Println(c)
	fmt.Println("entries:", entries)

	q := pkg.NewQuantile(entries)
	start := time.Now()

	switch c {
	case "[]string":
		ls := make([]string, 0)
		for i := 0; i < entries; i++ {
			t := time.Now()
			ls = append(ls, genKey(i))
			q.Add(float64(time.Since(t)))
		}
		defer func() {
			_ = len(ls)
		}()

	case "listpack":
		ls := listpack.New()
		for i := 0; i < entries; i++ {
			t := time.Now()
			_ = ls.RPush(genKey(i))
			q.Add(float64(time.Since(t)))
		}
		defer func() {
			_ = ls.Len()
		}()

	case "quicklist":
		ls := listpack.NewQuickList()
		for i := 0; i < entries; i++ {
			t := time.Now()
			_ = ls.RPush(genKey(i))
			q.Add(float64(time.Since(t)))
		}
		defer func() {
			_ = ls.Size()
		}()
	}
	cost := time.Since(start)

	var mem runtime.MemStats
	var stat debug.GCStats

	runtime.ReadMemStats(&mem)
	debug.ReadGCStats(&stat)

	fmt.Println("alloc:", humanize.Bytes(mem.Alloc))
	fmt.Println("gcsys:", humanize.Bytes(mem.GCSys))
	fmt.Println("heap inuse:", humanize.Bytes(mem.HeapInuse))
	fmt.Println("heap object:", mem.HeapObjects/1024, "k")
	fmt.Println("gc:", stat.NumGC)
	fmt.Println("pause:", gcPause())
	fmt.Println("cost:", cost)
	q.Print()
}
