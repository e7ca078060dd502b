package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_ocr_compare/internal/pool"
	"github.com/baditaflorin/go_ocr_compare/internal/ports"
	"golang.org/x/text/unicode/norm"
)

// Normalization decisions for ASCII bytes.
const (
	decisionKeep  = 0 // already lower-case alphanumeric
	decisionSpace = 1 // whitespace, collapse to a single space
	decisionLower = 2 // upper-case letter, convert to lower
	decisionDrop  = 3 // punctuation or symbol, remove
)

// OptimizedNormalizer produces the same output as DefaultNormalizer with a
// precomputed decision table for ASCII and pooled buffers. ASCII-only input
// skips the NFKC pass entirely, since NFKC is the identity on ASCII.
type OptimizedNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = decisionSpace
		case r >= 'A' && r <= 'Z':
			n.asciiTable[i] = decisionLower
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			n.asciiTable[i] = decisionKeep
		default:
			n.asciiTable[i] = decisionDrop
		}
	}

	return n
}

// Normalize canonicalizes raw text for comparison.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}
	if !asciiOnly {
		text = norm.NFKC.String(text)
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	lastWasSpace := true
	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case decisionKeep:
				*buffer = append(*buffer, b)
				lastWasSpace = false
			case decisionSpace:
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			case decisionLower:
				*buffer = append(*buffer, b+('a'-'A'))
				lastWasSpace = false
			}
		}
	} else {
		for _, r := range text {
			if r < 128 {
				switch n.asciiTable[r] {
				case decisionKeep:
					*buffer = append(*buffer, byte(r))
					lastWasSpace = false
				case decisionSpace:
					if !lastWasSpace {
						*buffer = append(*buffer, ' ')
						lastWasSpace = true
					}
				case decisionLower:
					*buffer = append(*buffer, byte(r)+('a'-'A'))
					lastWasSpace = false
				}
				continue
			}

			switch {
			case unicode.IsSpace(r):
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			case unicode.IsLetter(r) || unicode.IsDigit(r):
				lower := unicode.ToLower(r)
				*buffer = append(*buffer, []byte(string(lower))...)
				lastWasSpace = false
			}
		}
	}

	out := *buffer
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// NormalizerFactory creates the appropriate normalizer based on performance
// requirements.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects which normalizer implementation to create.
type NormalizerType int

const (
	// DefaultNormalizerType is the straightforward single-pass normalizer.
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses a precomputed ASCII table and buffer pooling.
	OptimizedNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type.
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
