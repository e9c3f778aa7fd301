package charset

// Merge returns the sorted, de-duplicated union of two character sequences.
//
// Neither input needs to be sorted or de-duplicated. Merge has no side
// effects, so callers can accumulate results incrementally by feeding the
// previous output back in as prev:
//
//	acc := ""
//	for _, seq := range perFile {
//		acc = Merge(acc, seq)
//	}
func Merge(prev, next string) string {
	set := FromString(prev)
	for _, r := range next {
		set.Add(r)
	}
	return set.String()
}
