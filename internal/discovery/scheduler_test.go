package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundRobinScheduler(t *testing.T) {
	s := NewRoundRobinScheduler()
	ids := []string{"a", "b", "c", "d", "e"}

	got := s.Schedule(ids, 2)
	want := [][]string{{"a", "c", "e"}, {"b", "d"}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Schedule mismatch (-got +want):\n%s", diff)
	}

	got = s.Schedule(ids, 0)
	if diff := cmp.Diff(got, [][]string{ids}); diff != "" {
		t.Errorf("Schedule with zero shards mismatch (-got +want):\n%s", diff)
	}
}

func TestShard(t *testing.T) {
	s := NewRoundRobinScheduler()
	ids := []string{"a", "b", "c"}

	tests := []struct {
		name  string
		index int
		count int
		want  []string
	}{
		{"single shard", 0, 1, ids},
		{"first of two", 0, 2, []string{"a", "c"}},
		{"second of two", 1, 2, []string{"b"}},
		{"more shards than ids", 4, 5, []string{}},
		{"out of range", 3, 2, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(Shard(s, ids, tt.index, tt.count), tt.want); diff != "" {
				t.Errorf("Shard mismatch (-got +want):\n%s", diff)
			}
		})
	}
}
