package cron

import (
	"context"
	"reflect"
	"testing"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryStoresJobs(t *testing.T) {
	registry := NewRegistry(nil)
	jobA := &stubJob{name: "a"}
	jobB := &stubJob{name: "b"}
	registry.Register(jobA)
	registry.Register(jobB)
	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != jobA || jobs[1] != jobB {
		t.Fatalf("jobs returned out of order")
	}
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegistryReplacesSameName(t *testing.T) {
	first := &stubJob{name: "message-dispatch"}
	second := &stubJob{name: "message-dispatch"}
	registry := NewRegistry(first, &stubJob{name: "other"}, second)

	if got := registry.Names(); !reflect.DeepEqual(got, []string{"message-dispatch", "other"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if registry.Jobs()[0] != second {
		t.Fatalf("expected later registration to win")
	}
}
