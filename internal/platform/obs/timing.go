package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the per-request id assigned by the HTTP middleware so
// operation timings can be correlated with the request log line.
const RequestIDKey ctxKey = "req_id"

// Time logs the duration of a named operation, tagged with the request id
// from the context. Use it as a deferred call with a pointer to the named
// error result:
//
//	defer obs.Time(ctx, "ors.Route")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
