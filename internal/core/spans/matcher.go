package spans

import (
	"sort"
	"strings"

	"github.com/baditaflorin/go_ocr_compare/internal/pool"
)

// Matcher finds common contiguous word sequences between two texts using a
// greedy longest-matching-block decomposition: repeatedly take the longest
// common contiguous run not yet consumed and recurse into the regions before
// and after it. This is a diff-style heuristic, not a globally optimal LCS;
// a full alignment could find different, possibly longer, span sets.
type Matcher struct {
	builders *pool.StringBuilderPool
}

// NewMatcher creates a span matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		builders: pool.NewStringBuilderPool(),
	}
}

// block is a maximal contiguous run of words common to both token sequences:
// a[aStart:aStart+size] == b[bStart:bStart+size].
type block struct {
	aStart int
	bStart int
	size   int
}

// CommonSpans tokenizes a and b by whitespace and returns every matching
// block of at least minWords words as a space-joined span, in the order the
// blocks occur in a. Each word position of a is consumed at most once, so no
// span is emitted twice even when it recurs verbatim in both texts.
func (m *Matcher) CommonSpans(a, b string, minWords int) []string {
	aWords := strings.Fields(a)
	bWords := strings.Fields(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return nil
	}

	var result []string
	for _, blk := range matchingBlocks(aWords, bWords) {
		if blk.size < minWords {
			continue
		}
		sb := m.builders.Get()
		for i := 0; i < blk.size; i++ {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(aWords[blk.aStart+i])
		}
		result = append(result, sb.String())
		m.builders.Put(sb)
	}
	return result
}

// matchingBlocks decomposes the two token sequences into maximal matching
// blocks. A work stack replaces recursion; blocks are sorted into a-order at
// the end because the stack discovers them greedily by length, not position.
func matchingBlocks(aWords, bWords []string) []block {
	// Index of every position each word occupies in b. Built once; the scan
	// in longestMatch filters positions to the current window.
	bIndex := make(map[string][]int, len(bWords))
	for j, w := range bWords {
		bIndex[w] = append(bIndex[w], j)
	}

	type window struct {
		aLo, aHi, bLo, bHi int
	}

	stack := []window{{0, len(aWords), 0, len(bWords)}}
	var blocks []block

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		match := longestMatch(aWords, bIndex, w.aLo, w.aHi, w.bLo, w.bHi)
		if match.size == 0 {
			continue
		}
		blocks = append(blocks, match)

		if w.aLo < match.aStart && w.bLo < match.bStart {
			stack = append(stack, window{w.aLo, match.aStart, w.bLo, match.bStart})
		}
		if match.aStart+match.size < w.aHi && match.bStart+match.size < w.bHi {
			stack = append(stack, window{match.aStart + match.size, w.aHi, match.bStart + match.size, w.bHi})
		}
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].aStart < blocks[j].aStart
	})
	return blocks
}

// longestMatch finds the longest contiguous run common to
// aWords[aLo:aHi] and bWords[bLo:bHi]. Among equally long runs the one
// starting earliest in a wins, which keeps the decomposition deterministic.
func longestMatch(aWords []string, bIndex map[string][]int, aLo, aHi, bLo, bHi int) block {
	best := block{aStart: aLo, bStart: bLo, size: 0}

	// runLen[j] is the length of the longest run ending at aWords[i], bWords[j].
	runLen := make(map[int]int)
	for i := aLo; i < aHi; i++ {
		newRunLen := make(map[int]int)
		for _, j := range bIndex[aWords[i]] {
			if j < bLo {
				continue
			}
			if j >= bHi {
				break
			}
			k := runLen[j-1] + 1
			newRunLen[j] = k
			if k > best.size {
				best = block{aStart: i - k + 1, bStart: j - k + 1, size: k}
			}
		}
		runLen = newRunLen
	}
	return best
}
