package resource

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/simp-lee/hrdesk/internal/domain"
)

func newEmployeeClient(opts Options) *Client[domain.Employee, domain.EmployeeCreate, domain.EmployeeUpdate] {
	return NewClient(employeeDef(), DataSource[domain.Employee, domain.EmployeeCreate, domain.EmployeeUpdate](newEmpStore()), opts)
}

func TestClient_NotifiesObserversOnSuccessfulMutations(t *testing.T) {
	var events []Event
	c := newEmployeeClient(Options{
		Observers: []Observer{ObserverFunc(func(_ context.Context, e Event) { events = append(events, e) })},
	})
	ctx := context.Background()

	created, err := c.Create(ctx, domain.EmployeeCreate{EmployeeCode: "E005", FirstName: "Barbara", LastName: "Liskov", Email: "barbara@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Update(ctx, created.ID, domain.EmployeeUpdate{JobTitle: strPtr("Professor")}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Do(ctx, created.ID, "leave"); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	// Failures and reads are not reported.
	_ = c.Delete(ctx, created.ID)
	_, _ = c.Get(ctx, 1)
	_, _ = c.List(ctx, domain.PageRequest{Size: 10})

	want := []string{OpCreate, OpUpdate, "leave", OpDelete}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want %d", events, len(want))
	}
	for i, action := range want {
		e := events[i]
		if e.Action != action || e.ID != created.ID || e.Resource != "employee" || e.Source != KindMemory {
			t.Errorf("event %d = %+v, want action %q", i, e, action)
		}
	}
	if rec, ok := events[2].Record.(domain.Employee); !ok || rec.Status != domain.EmployeeOnLeave {
		t.Errorf("action event record = %#v", events[2].Record)
	}
	if events[3].Record != nil {
		t.Errorf("delete event record = %#v, want nil", events[3].Record)
	}
}

func TestClient_ObserveDoesNotLeakAcrossSharedOptions(t *testing.T) {
	var shared, first, second int
	observers := make([]Observer, 1, 4)
	observers[0] = ObserverFunc(func(context.Context, Event) { shared++ })
	opts := Options{Observers: observers}

	a := newEmployeeClient(opts)
	b := newEmployeeClient(opts)
	a.Observe(ObserverFunc(func(context.Context, Event) { first++ }))
	b.Observe(ObserverFunc(func(context.Context, Event) { second++ }))

	ctx := context.Background()
	if err := a.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if shared != 1 || first != 1 || second != 0 {
		t.Errorf("after a.Delete shared=%d first=%d second=%d, want 1/1/0", shared, first, second)
	}
	if err := b.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if shared != 2 || first != 1 || second != 1 {
		t.Errorf("after b.Delete shared=%d first=%d second=%d, want 2/1/1", shared, first, second)
	}
	if len(opts.Observers) != 1 {
		t.Errorf("options observers = %d, want 1", len(opts.Observers))
	}
}

func TestClient_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := newEmployeeClient(Options{Metrics: m})
	ctx := context.Background()

	_, _ = c.Get(ctx, 1)
	_, _ = c.Get(ctx, 1)
	_, _ = c.Get(ctx, 404)
	_, _ = c.Do(ctx, 4, "leave")

	tests := []struct {
		op, outcome string
		want        float64
	}{
		{OpGet, "ok", 2},
		{OpGet, "not_found", 1},
		{"leave", "invalid", 1},
		{OpDelete, "ok", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.operations.WithLabelValues("employee", tt.op, KindMemory, tt.outcome))
		if got != tt.want {
			t.Errorf("%s/%s = %v, want %v", tt.op, tt.outcome, got, tt.want)
		}
	}
	if n := testutil.CollectAndCount(m.latency); n != 2 {
		t.Errorf("latency series = %d, want 2", n)
	}
}

func TestClient_NilMetricsIsNoop(t *testing.T) {
	c := newEmployeeClient(Options{})

	if _, err := c.Get(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if c.Kind() != KindMemory || c.Definition().Path != "employees" {
		t.Errorf("kind/path = %q/%q", c.Kind(), c.Definition().Path)
	}
}
