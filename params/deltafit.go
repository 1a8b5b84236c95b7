package params

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/metrics"
)

func init() {
	metrics.Enabled = true
}

const (
	SweepDBName = "sweeps.db"
)

var SweepBucket = []byte("sweeps")

var DatadirRoot = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".deltafit")
}()

// INFLUXDB_URL et al. configure the optional sweep exporter.
// An empty URL disables export.
var INFLUXDB_URL = os.Getenv("INFLUXDB_URL")
var INFLUXDB_TOKEN = os.Getenv("INFLUXDB_TOKEN")
var INFLUXDB_ORG = os.Getenv("INFLUXDB_ORG")
var INFLUXDB_BUCKET = func() string {
	if v := os.Getenv("INFLUXDB_BUCKET"); v != "" {
		return v
	}
	return "deltafit"
}()

var (
	CacheSweepTTL = 1 * time.Hour

	// CacheSweepLRUSize bounds the in-memory layer of the sweep cache.
	// Sweeps are two float64 slices apiece; 128 of them is cheap.
	CacheSweepLRUSize = 128

	// DedupeLRUSize bounds the sample-line dedupe cache used by the CLI.
	DedupeLRUSize = 100_000
)
