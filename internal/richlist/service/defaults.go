package service

import "time"

const (
	// DefaultRichListLength is the number of entries returned per token.
	DefaultRichListLength = 1000
	// DefaultDrainLimit is the number of addresses claimed from the queue per batch.
	DefaultDrainLimit = 100
	// DefaultWorkerCount is the number of addresses recomputed concurrently.
	DefaultWorkerCount = 8
	// DefaultDropoutRetention is the number of heights below the tip kept in the dropout ledger.
	DefaultDropoutRetention uint64 = 100

	pollInterval  = 5 * time.Second
	tokenCacheTTL = 10 * time.Minute

	checkpointPartition = "block"
)
