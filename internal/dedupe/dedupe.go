// Package dedupe provides shared singleflight groups used to collapse
// concurrent read-side work: only one database query runs for a given key
// while other callers wait for the same result.
package dedupe

import "golang.org/x/sync/singleflight"

// BoardGroup deduplicates leaderboard queries keyed by the requested limit.
var BoardGroup singleflight.Group

// ListGroup deduplicates public-battle listing queries.
var ListGroup singleflight.Group
