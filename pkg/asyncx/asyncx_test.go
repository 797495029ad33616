package asyncx_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/mailsmith/pkg/asyncx"
)

func TestWithTimeout_ReturnsValue(t *testing.T) {
	v, err := asyncx.WithTimeout(context.Background(), time.Second, func(context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("expected ok, got %q, %v", v, err)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	_, err := asyncx.WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestWithTimeout_ZeroDurationRunsDirectly(t *testing.T) {
	v, err := asyncx.WithTimeout(context.Background(), 0, func(ctx context.Context) (int, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Error("no deadline expected")
		}
		return 7, nil
	})
	if err != nil || v != 7 {
		t.Fatalf("expected 7, got %d, %v", v, err)
	}
}

func TestPool_PreservesOrderAndBoundsWorkers(t *testing.T) {
	var active, peak int32
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	out, err := asyncx.Pool(context.Background(), 2, items, func(_ context.Context, n int) (int, error) {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return n * 10, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != items[i]*10 {
			t.Fatalf("result %d out of order: %d", i, v)
		}
	}
	if peak > 2 {
		t.Fatalf("expected at most 2 concurrent workers, saw %d", peak)
	}
}

func TestPool_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := asyncx.Pool(context.Background(), 3, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPool_EmptyInput(t *testing.T) {
	out, err := asyncx.Pool(context.Background(), 4, []int{}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty result, got %v, %v", out, err)
	}
}
