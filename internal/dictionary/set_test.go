package dictionary

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestNewSet(t *testing.T) {
	s := NewSet("hello", "world", "hello", "")

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Ready() {
		t.Error("NewSet() should not be ready")
	}
	if s.Version() != 1 {
		t.Errorf("Version() = %d, want 1", s.Version())
	}
}

func TestSet_Add(t *testing.T) {
	s := NewSet()

	tests := []struct {
		name        string
		words       []string
		wantAdded   int
		wantLen     int
		wantVersion uint64
	}{
		{name: "first batch", words: []string{"cat", "dog"}, wantAdded: 2, wantLen: 2, wantVersion: 1},
		{name: "duplicates only", words: []string{"cat", "dog"}, wantAdded: 0, wantLen: 2, wantVersion: 1},
		{name: "mixed", words: []string{"dog", "fish", "bird"}, wantAdded: 2, wantLen: 4, wantVersion: 2},
		{name: "empty word ignored", words: []string{""}, wantAdded: 0, wantLen: 4, wantVersion: 2},
		{name: "no words", words: nil, wantAdded: 0, wantLen: 4, wantVersion: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Add(tt.words...); got != tt.wantAdded {
				t.Errorf("Add() = %d, want %d", got, tt.wantAdded)
			}
			if s.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantLen)
			}
			if s.Version() != tt.wantVersion {
				t.Errorf("Version() = %d, want %d", s.Version(), tt.wantVersion)
			}
		})
	}
}

func TestSet_ContainsAndWords(t *testing.T) {
	s := NewSet("world", "hello")

	if !s.Contains("hello") || !s.Contains("world") {
		t.Error("Contains() should report added words")
	}
	if s.Contains("Hello") {
		t.Error("Contains() compares stored forms exactly")
	}

	want := []string{"hello", "world"}
	if got := s.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestSet_MarkReady(t *testing.T) {
	s := NewSet()

	select {
	case <-s.ReadyC():
		t.Fatal("ReadyC() closed before MarkReady()")
	default:
	}

	s.MarkReady()
	s.MarkReady()

	if !s.Ready() {
		t.Error("Ready() = false after MarkReady()")
	}
	select {
	case <-s.ReadyC():
	default:
		t.Error("ReadyC() not closed after MarkReady()")
	}
}

func TestSet_ConcurrentReadWrite(t *testing.T) {
	s := NewSet()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Add(fmt.Sprintf("word%d", i))
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev := 0
			for i := 0; i < 1000; i++ {
				_ = s.Contains(fmt.Sprintf("word%d", i))
				n := s.Len()
				if n < prev {
					t.Errorf("Len() shrank from %d to %d", prev, n)
					return
				}
				prev = n
			}
		}()
	}

	wg.Wait()

	if s.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", s.Len())
	}
}
