package renderstream

import (
	"time"

	"golang.org/x/sync/errgroup"
)

type prepared struct {
	payload *Payload
	result  AddResult
}

// addBatch prepares cs on up to opts.workers goroutines and commits the
// payloads serially in input order. Failures are reported through
// onFailure; the batch always runs to the end.
func (m *manager) addBatch(cs []Component, ignoreBounds bool, onFailure func(Component, AddResult)) int {
	start := time.Now()
	popts := m.prepareOptions(ignoreBounds)
	out := make([]prepared, len(cs))

	var g errgroup.Group
	g.SetLimit(m.opts.workers)
	for i, c := range cs {
		g.Go(func() error {
			p, r := Prepare(c, popts)
			out[i] = prepared{payload: p, result: r}
			return nil
		})
	}
	_ = g.Wait()

	added, failed := 0, 0
	for i, c := range cs {
		r := out[i].result
		if r == AddSuccess {
			r = commit(m.state, out[i].payload)
		}
		if r != AddSuccess {
			failed++
			if onFailure != nil {
				onFailure(c, r)
			}
			continue
		}
		added++
	}

	d := time.Since(start)
	m.metrics.RecordBatchAdd(len(cs), failed, d)
	m.logger.LogBatchAdd(len(cs), failed, d)
	return added
}
