package drawdiff

import (
	"fmt"

	"github.com/rdc-cli/rdc/internal/domain"
)

// AlignOptions controls the positional fallback used for marker-free captures.
type AlignOptions struct {
	Fallback domain.FallbackPolicy
	// MinConfidence is the minimum share of medium-confidence pairs a
	// positional alignment must reach. Zero disables the check.
	MinConfidence float64
}

// Alignment is a one-to-one correspondence between two draw lists.
type Alignment struct {
	Mode  domain.AlignMode
	Pairs []domain.AlignedPair
}

// MatchKeys returns the alignment key of every record, numbering repeated
// keys in first-seen order.
func MatchKeys(records []domain.DrawRecord) []domain.MatchKey {
	seen := make(map[domain.MatchKey]int, len(records))
	keys := make([]domain.MatchKey, len(records))
	for i, r := range records {
		base := r.Key()
		k := base
		k.Occurrence = seen[base]
		seen[base]++
		keys[i] = k
	}
	return keys
}

// Align pairs the draws of capture a with the draws of capture b.
//
// When at least one capture has marker paths the pairing is a longest common
// subsequence over match keys, so matched pairs keep their relative order in
// both captures. Otherwise draws are paired by position according to opts.
func Align(a, b []domain.DrawRecord, opts AlignOptions) (*Alignment, error) {
	if len(a) > 0 && len(b) > 0 && !hasMarkers(a) && !hasMarkers(b) {
		if opts.Fallback == domain.FallbackRefuse {
			return nil, fmt.Errorf("%w: neither capture has debug markers", domain.ErrNoReliableAlignment)
		}
		pairs, err := alignPositional(a, b, opts.MinConfidence)
		if err != nil {
			return nil, err
		}
		log.Debugf("positional alignment: %d pairs from %d/%d draws", len(pairs), len(a), len(b))
		return &Alignment{Mode: domain.AlignModePositional, Pairs: pairs}, nil
	}

	pairs := alignLCS(a, b)
	log.Debugf("lcs alignment: %d pairs from %d/%d draws", len(pairs), len(a), len(b))
	return &Alignment{Mode: domain.AlignModeLCS, Pairs: pairs}, nil
}

func hasMarkers(records []domain.DrawRecord) bool {
	for _, r := range records {
		if r.Marker != "" {
			return true
		}
	}
	return false
}

type anchor struct{ i, j int }

func alignLCS(a, b []domain.DrawRecord) []domain.AlignedPair {
	ka, kb := MatchKeys(a), MatchKeys(b)
	n, m := len(a), len(b)

	// suffix[i*(m+1)+j] is the LCS length of ka[i:] and kb[j:].
	width := m + 1
	suffix := make([]int, (n+1)*width)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if ka[i] == kb[j] {
				suffix[i*width+j] = suffix[(i+1)*width+j+1] + 1
			} else {
				suffix[i*width+j] = max(suffix[(i+1)*width+j], suffix[i*width+j+1])
			}
		}
	}

	// Walk the table forward. On ties the record with the smaller key is
	// skipped, which does not depend on which capture is A.
	var anchors []anchor
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case ka[i] == kb[j]:
			anchors = append(anchors, anchor{i, j})
			i++
			j++
		case suffix[(i+1)*width+j] > suffix[i*width+j+1]:
			i++
		case suffix[(i+1)*width+j] < suffix[i*width+j+1]:
			j++
		case ka[i].Less(kb[j]):
			i++
		default:
			j++
		}
	}

	pairs := make([]domain.AlignedPair, 0, n+m-len(anchors))
	ai, bj := 0, 0
	for _, an := range anchors {
		pairs = appendGap(pairs, a[ai:an.i], b[bj:an.j], domain.ConfidenceHigh)
		pairs = append(pairs, domain.AlignedPair{A: &a[an.i], B: &b[an.j], Confidence: domain.ConfidenceHigh})
		ai, bj = an.i+1, an.j+1
	}
	return appendGap(pairs, a[ai:], b[bj:], domain.ConfidenceHigh)
}

// appendGap emits the unmatched draws between two anchors: deletions first,
// then additions.
func appendGap(pairs []domain.AlignedPair, onlyA, onlyB []domain.DrawRecord, c domain.Confidence) []domain.AlignedPair {
	for k := range onlyA {
		pairs = append(pairs, domain.AlignedPair{A: &onlyA[k], Confidence: c})
	}
	for k := range onlyB {
		pairs = append(pairs, domain.AlignedPair{B: &onlyB[k], Confidence: c})
	}
	return pairs
}

func alignPositional(a, b []domain.DrawRecord, minConfidence float64) ([]domain.AlignedPair, error) {
	n := min(len(a), len(b))
	pairs := make([]domain.AlignedPair, 0, max(len(a), len(b)))

	medium := 0
	for i := 0; i < n; i++ {
		c := domain.ConfidenceLow
		if a[i].ShaderHash == b[i].ShaderHash && a[i].Topology == b[i].Topology {
			c = domain.ConfidenceMedium
			medium++
		}
		pairs = append(pairs, domain.AlignedPair{A: &a[i], B: &b[i], Confidence: c})
	}

	if minConfidence > 0 {
		share := float64(medium) / float64(n)
		if share < minConfidence {
			return nil, fmt.Errorf("%w: only %.0f%% of positional pairs agree on shader and topology (need %.0f%%)",
				domain.ErrNoReliableAlignment, share*100, minConfidence*100)
		}
	}

	return appendGap(pairs, a[n:], b[n:], domain.ConfidenceLow), nil
}
