package format

import "sort"

// SortKeyValueMetadata sorts a slice of KeyValue entries by key, then by
// value, with a nil Value sorting before any present value. Sorting metadata
// this way before serialization makes footers independent of insertion
// order; the module's own writer sets no key/value metadata and does not
// call it.
func SortKeyValueMetadata(kv []KeyValue) {
	sort.Slice(kv, func(i, j int) bool {
		switch {
		case kv[i].Key < kv[j].Key:
			return true
		case kv[i].Key > kv[j].Key:
			return false
		case kv[i].Value == nil:
			return kv[j].Value != nil
		case kv[j].Value == nil:
			return false
		default:
			return *kv[i].Value < *kv[j].Value
		}
	})
}
