package dealers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ajans/visit-form/pkg/model"
	testingclock "k8s.io/utils/clock/testing"
)

type fakeSource struct {
	dealers []model.Dealer
	err     error
	calls   int
}

func (f *fakeSource) ListDealers(ctx context.Context) ([]model.Dealer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.dealers, nil
}

func testDealers() []model.Dealer {
	return []model.Dealer{
		{Code: "D200", Name: "Zahraa Motors"},
		{Code: "D123", Name: "Al Amal Cars"},
		{Code: "D150", Name: "Masr Auto"},
	}
}

func TestLoadSortedByName(t *testing.T) {
	src := &fakeSource{dealers: testDealers()}
	l := NewLoader(src, time.Minute)

	d, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(d.List) != 3 {
		t.Fatalf("got %d dealers, want 3", len(d.List))
	}

	want := []string{"Al Amal Cars", "Masr Auto", "Zahraa Motors"}
	for i, name := range want {
		if d.List[i].Name != name {
			t.Errorf("list[%d] = %q, want %q", i, d.List[i].Name, name)
		}
	}
}

func TestLoadMapAgreesWithList(t *testing.T) {
	src := &fakeSource{dealers: append(testDealers(),
		model.Dealer{Code: "D123", Name: "Al Amal Cars New"},
		model.Dealer{Code: "", Name: "No Code"},
		model.Dealer{Code: "D999", Name: "  "},
	)}
	l := NewLoader(src, time.Minute)

	d, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(d.ByCode) != len(d.List) {
		t.Fatalf("map has %d entries, list has %d", len(d.ByCode), len(d.List))
	}
	for _, dealer := range d.List {
		if d.ByCode[dealer.Code] != dealer.Name {
			t.Errorf("map[%s] = %q, list has %q", dealer.Code, d.ByCode[dealer.Code], dealer.Name)
		}
	}
	if name, _ := d.Name("D123"); name != "Al Amal Cars New" {
		t.Errorf("D123 = %q, want the last name seen", name)
	}
}

func TestLoadCachedWithinTTL(t *testing.T) {
	clk := testingclock.NewFakeClock(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	src := &fakeSource{dealers: testDealers()}
	l := NewLoaderWithClock(src, 10*time.Minute, clk)

	first, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	clk.Step(9 * time.Minute)
	second, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("backend calls = %d, want 1", src.calls)
	}
	if len(second.List) != len(first.List) || second.List[0] != first.List[0] {
		t.Error("expected identical cached result")
	}

	clk.Step(2 * time.Minute)
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("third load: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("backend calls = %d, want 2 after expiry", src.calls)
	}
}

func TestLoadResultIsACopy(t *testing.T) {
	l := NewLoader(&fakeSource{dealers: testDealers()}, time.Minute)

	d, _ := l.Load(context.Background())
	d.ByCode["D123"] = "changed"
	d.List[0].Name = "changed"

	again, _ := l.Load(context.Background())
	if again.ByCode["D123"] != "Al Amal Cars" || again.List[0].Name != "Al Amal Cars" {
		t.Error("caller mutation leaked into the cache")
	}
}

func TestLoadErrorReturnsEmptyAndIsNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("table not found")}
	l := NewLoader(src, time.Minute)

	d, err := l.Load(context.Background())
	if !errors.Is(err, ErrReferenceLoadFailed) {
		t.Fatalf("err = %v, want ErrReferenceLoadFailed", err)
	}
	if !d.Empty() || len(d.ByCode) != 0 {
		t.Error("expected empty dealers on error")
	}

	src.err = nil
	src.dealers = testDealers()
	d, err = l.Load(context.Background())
	if err != nil {
		t.Fatalf("load after recovery: %v", err)
	}
	if d.Empty() {
		t.Error("expected dealers after the backend recovered")
	}
	if src.calls != 2 {
		t.Errorf("backend calls = %d, want 2", src.calls)
	}
}

func TestInvalidate(t *testing.T) {
	src := &fakeSource{dealers: testDealers()}
	l := NewLoader(src, time.Hour)

	_, _ = l.Load(context.Background())
	l.Invalidate()
	_, _ = l.Load(context.Background())

	if src.calls != 2 {
		t.Errorf("backend calls = %d, want 2", src.calls)
	}
}

// blockingSource holds every read until release is closed.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingSource) ListDealers(ctx context.Context) ([]model.Dealer, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	<-b.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return testDealers(), nil
}

func TestLoadSurvivesCancelledCaller(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	l := NewLoader(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx)
		errc <- err
	}()

	<-src.started
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) || !errors.Is(err, ErrReferenceLoadFailed) {
		t.Fatalf("cancelled caller err = %v, want ErrReferenceLoadFailed wrapping context.Canceled", err)
	}

	close(src.release)
	d, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(d.List) != 3 {
		t.Errorf("got %d dealers, want 3", len(d.List))
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("backend calls = %d, want 1", n)
	}
}
