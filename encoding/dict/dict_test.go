package dict_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-core/encoding/dict"
)

func TestBuilderDeduplicatesAndIndexes(t *testing.T) {
	b := dict.NewBuilder(0, 0)

	words := []string{"a", "b", "a", "c", "b", "a"}
	var indices []int32
	for _, w := range words {
		idx, ok := b.Append([]byte(w))
		if !ok {
			t.Fatalf("unexpected fallback appending %q", w)
		}
		indices = append(indices, idx)
	}

	if b.Len() != 3 {
		t.Fatalf("expected 3 distinct values, got %d", b.Len())
	}
	if b.TotalValueCount() != int64(len(words)) {
		t.Fatalf("expected total count %d, got %d", len(words), b.TotalValueCount())
	}

	data, lengths := b.DictionaryValues()
	if len(lengths) != 3 {
		t.Fatalf("expected 3 dictionary entries, got %d", len(lengths))
	}
	_ = data

	if !reflect.DeepEqual(b.PageIndices(), indices) {
		t.Fatalf("page indices mismatch: want=%v got=%v", indices, b.PageIndices())
	}

	encoded, err := b.EncodeIndices(nil, b.PageIndices())
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := dict.DecodeIndices(nil, encoded, b.Len(), len(indices))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, indices) {
		t.Fatalf("decoded indices mismatch: want=%v got=%v", indices, decoded)
	}
}

func TestBuilderFallsBackOnCardinality(t *testing.T) {
	b := dict.NewBuilder(2, 0)

	for i := 0; i < 2; i++ {
		if _, ok := b.Append([]byte(fmt.Sprintf("v%d", i))); !ok {
			t.Fatalf("value %d should not have triggered fallback", i)
		}
	}
	if _, ok := b.Append([]byte("v2")); ok {
		t.Fatal("expected fallback once cardinality cap exceeded")
	}
	if !b.FellBack() {
		t.Fatal("expected FellBack to be true")
	}
	if b.ShouldUseDictionary() {
		t.Fatal("expected ShouldUseDictionary to be false after fallback")
	}

	// Fallback is sticky: even a previously-seen value now reports !ok.
	if _, ok := b.Append([]byte("v0")); ok {
		t.Fatal("expected fallback to remain sticky")
	}
}

func TestBuilderClearPageIndices(t *testing.T) {
	b := dict.NewBuilder(0, 0)
	b.Append([]byte("x"))
	b.Append([]byte("y"))
	if len(b.PageIndices()) != 2 {
		t.Fatalf("expected 2 page indices, got %d", len(b.PageIndices()))
	}
	b.ClearPageIndices()
	if len(b.PageIndices()) != 0 {
		t.Fatal("expected page indices cleared")
	}
	if b.Len() != 2 {
		t.Fatal("expected dictionary values to survive ClearPageIndices")
	}
}

func TestBuilderReset(t *testing.T) {
	b := dict.NewBuilder(1, 0)
	b.Append([]byte("x"))
	b.Append([]byte("y")) // triggers fallback
	b.Reset()
	if b.Len() != 0 || b.FellBack() || b.TotalValueCount() != 0 {
		t.Fatal("expected Reset to fully clear builder state")
	}
	if _, ok := b.Append([]byte("z")); !ok {
		t.Fatal("expected builder usable again after Reset")
	}
}
