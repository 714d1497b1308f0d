package wal

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

type entry struct {
	Seq  int    `json:"seq"`
	Note string `json:"note"`
}

func TestWALWriteReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.wal")

	w, err := NewWAL(path)
	if err != nil {
		t.Fatalf("NewWAL() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := w.Write(entry{Seq: i, Note: "n"}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// reopen and replay
	w, err = NewWAL(path)
	if err != nil {
		t.Fatalf("NewWAL() reopen error = %v", err)
	}
	defer w.Close()

	var got []entry
	err = w.ReadAll(func(raw []byte) error {
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		got = append(got, e)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("replayed %d entries, want 3", len(got))
	}
	for i, e := range got {
		if e.Seq != i {
			t.Errorf("entry %d has seq %d", i, e.Seq)
		}
	}
}

func TestWALReadAllSeesBufferedWrites(t *testing.T) {
	w, err := NewWAL(filepath.Join(t.TempDir(), "buffered.wal"))
	if err != nil {
		t.Fatalf("NewWAL() error = %v", err)
	}
	defer w.Close()

	// 不呼叫 Flush，ReadAll 自己要先把 buffer 刷掉
	if err := w.Write(entry{Seq: 7}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	count := 0
	if err := w.ReadAll(func([]byte) error { count++; return nil }); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if count != 1 {
		t.Errorf("replayed %d entries, want 1", count)
	}
}

func TestWALReadAllEmpty(t *testing.T) {
	w, err := NewWAL(filepath.Join(t.TempDir(), "empty.wal"))
	if err != nil {
		t.Fatalf("NewWAL() error = %v", err)
	}
	defer w.Close()

	count := 0
	if err := w.ReadAll(func([]byte) error { count++; return nil }); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if count != 0 {
		t.Errorf("empty wal replayed %d entries", count)
	}
}
