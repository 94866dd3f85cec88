package inferschema

import (
	"bytes"
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

// Result describes a schema inferred across one or more top-level samples.
type Result struct {
	Fragment    *Fragment `json:"fragment"`
	SampleCount int       `json:"sample_count"`
	AllMatch    bool      `json:"all_match"`
}

// InferSamples infers a fragment per top-level sample and reconciles object
// samples into one merged schema. Infer is pure, so per-sample inference
// runs concurrently; workers caps the parallelism (0 means unbounded).
// Returns nil for an empty sample list. Non-object sample mixes fall back
// to the first sample's schema, mirroring the mixed-array rule.
func InferSamples(ctx context.Context, values []jsonval.Value, desc Descriptions, workers int) (*Result, error) {
	if len(values) == 0 {
		return nil, nil
	}

	frags := make([]*Fragment, len(values))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frags[i] = Infer(v, desc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allMatch := true
	if len(frags) > 1 {
		first, err := json.Marshal(frags[0])
		if err != nil {
			return nil, err
		}
		for _, f := range frags[1:] {
			b, err := json.Marshal(f)
			if err != nil {
				return nil, err
			}
			if !bytes.Equal(first, b) {
				allMatch = false
				break
			}
		}
	}

	merged := frags[0]
	if len(frags) > 1 && allObjects(values) {
		merged = Merge(frags)
	}

	return &Result{
		Fragment:    merged,
		SampleCount: len(frags),
		AllMatch:    allMatch,
	}, nil
}
