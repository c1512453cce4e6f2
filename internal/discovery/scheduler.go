package discovery

// Scheduler distributes module identifiers across shards
type Scheduler interface {
	Schedule(ids []string, shardCount int) [][]string
}

// RoundRobinScheduler distributes identifiers evenly across shards
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes identifiers using round-robin, keeping their relative order
// within each shard.
func (s *RoundRobinScheduler) Schedule(ids []string, shardCount int) [][]string {
	if shardCount <= 0 {
		shardCount = 1
	}

	distribution := make([][]string, shardCount)
	for i := range distribution {
		distribution[i] = make([]string, 0)
	}

	for i, id := range ids {
		distribution[i%shardCount] = append(distribution[i%shardCount], id)
	}

	return distribution
}

// Shard returns the identifiers assigned to shard index (zero-based) out of
// shardCount. Out-of-range indexes get nothing.
func Shard(s Scheduler, ids []string, index, shardCount int) []string {
	if shardCount <= 1 {
		return ids
	}
	shards := s.Schedule(ids, shardCount)
	if index < 0 || index >= len(shards) {
		return []string{}
	}
	return shards[index]
}
