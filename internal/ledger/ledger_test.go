package ledger

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/order"
)

func sampleOrder(id string) order.Order {
	return order.Order{
		ID:             id,
		ConversationID: 42,
		Username:       "buyer",
		PackageCode:    "premium",
		PackageName:    "Premium",
		Price:          250,
		Currency:       "AED",
		Phone:          "+971501234567",
		PaymentMethod:  "link",
		ProofRef:       "TXN123",
		CompletedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryLedgerAppend(t *testing.T) {
	l := NewMemory()
	for _, id := range []string{"ORD-A", "ORD-B"} {
		if err := l.Append(context.Background(), sampleOrder(id)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}
	got := l.Orders()
	if len(got) != 2 || got[0].ID != "ORD-A" || got[1].ID != "ORD-B" {
		t.Fatalf("orders = %+v", got)
	}
}

func TestFileLedgerAppendAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "orders.jsonl")

	l, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := l.Append(context.Background(), sampleOrder("ORD-1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// reopening must append, not truncate
	l, err = OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := l.Append(context.Background(), sampleOrder("ORD-2")); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	defer f.Close()

	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ord order.Order
		if err := json.Unmarshal(sc.Bytes(), &ord); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		ids = append(ids, ord.ID)
	}
	if len(ids) != 2 || ids[0] != "ORD-1" || ids[1] != "ORD-2" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestFileLedgerConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.jsonl")
	l, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = l.Append(context.Background(), sampleOrder(order.NewID()))
		}()
	}
	wg.Wait()
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ord order.Order
		if err := json.Unmarshal(sc.Bytes(), &ord); err != nil {
			t.Fatalf("interleaved line %q: %v", sc.Text(), err)
		}
		lines++
	}
	if lines != n {
		t.Fatalf("lines = %d, want %d", lines, n)
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	mem, err := Open(config.StorageConfig{Driver: config.StorageMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := mem.(*MemoryLedger); !ok {
		t.Fatalf("memory driver built %T", mem)
	}

	path := filepath.Join(t.TempDir(), "orders.jsonl")
	fl, err := Open(config.StorageConfig{Driver: config.StorageFile, Path: path})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := fl.(*FileLedger); !ok {
		t.Fatalf("file driver built %T", fl)
	}
	_ = fl.Close()

	if _, err := Open(config.StorageConfig{Driver: "tape"}); err == nil {
		t.Fatal("unknown driver must fail")
	}
}
