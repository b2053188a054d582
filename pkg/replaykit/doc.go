// Package replaykit reconstructs session-replay timelines from a
// Sentry-compatible event API.
//
// Quick start:
//
//	c, err := replaykit.New(replaykit.WithToken(os.Getenv("SENTRY_TOKEN")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	snap, err := c.FetchReplay(ctx, "acme", "frontend:a1b2c3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(snap.RRWebEvents), snap.MergedReplayEvent.EndTimestamp)
//
// A Client is safe for concurrent use. Every fetch recomputes from
// scratch; results are immutable snapshots.
package replaykit
