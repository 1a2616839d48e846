package repository

import "time"

// QueryObserver receives the duration of each database query, labelled by
// repository and operation.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

func observeQuery(obs QueryObserver, label string, start time.Time) {
	if obs != nil {
		obs.ObserveDBQuery(label, time.Since(start))
	}
}
