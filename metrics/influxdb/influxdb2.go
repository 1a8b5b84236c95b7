package influxdb

import (
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rotblauer/deltafit/params"
	"github.com/rotblauer/deltafit/scan"
)

// ExportSweep posts every sweep sample to an InfluxDB Write API, so an
// external dashboard can plot the observable curve and shade the matched
// regions. Because it writes the whole sweep at once, the Write API will
// buffer and flush. The last error encountered is returned.
//
// mask may be nil when no matching has been performed; tag distinguishes
// runs. Samples share a run start time and are offset by their index, so
// same-run points do not overwrite each other.
func ExportSweep(sw *scan.Sweep, mask []bool, tag string) error {
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Nanosecond)
	client := influxdb2.NewClientWithOptions(params.INFLUXDB_URL, params.INFLUXDB_TOKEN, opts)
	writeAPI := client.WriteAPI(params.INFLUXDB_ORG, params.INFLUXDB_BUCKET)

	// Errors returns a channel for reading errors which occur during async
	// writes. Must be called before performing any writes for errors to be
	// collected. The chan is unbuffered and must be drained or the writer
	// will block.
	// https://github.com/influxdata/influxdb-client-go?tab=readme-ov-file#reading-async-errors
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	start := time.Now()
	for i, delta := range sw.Deltas {
		p := influxdb2.NewPointWithMeasurement("sweep").
			SetTime(start.Add(time.Duration(i))).
			AddTag("run", tag).
			AddField("delta", delta).
			AddField("observable", sw.Observables[i])
		if mask != nil {
			matched := 0
			if mask[i] {
				matched = 1
			}
			p.AddField("matched", matched)
		}
		writeAPI.WritePoint(p)
	}
	writeAPI.Flush()
	client.Close()
	wait.Wait()

	return err
}
