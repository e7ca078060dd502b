package ports

// SpanMatcher extracts contiguous word sequences common to two texts.
// Spans shorter than minWords are discarded; spans are returned in the order
// they occur in the first text.
type SpanMatcher interface {
	CommonSpans(a, b string, minWords int) []string
}
