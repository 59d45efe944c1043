package reactive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSub is wrapped by every ParseSub failure.
var ErrMalformedSub = errors.New("reactive: malformed sub")

// Sub is a single subscription: the id of the node whose rendering read
// the value, and the generation the read belongs to. The generation
// doubles as the bit recorded in a proxy's dirty mask.
type Sub struct {
	Node uint32
	Gen  int64
}

// String renders the subscription in its wire form "node generation".
func (s Sub) String() string {
	return strconv.FormatUint(uint64(s.Node), 10) + " " + strconv.FormatInt(s.Gen, 10)
}

// ParseSub parses the wire form produced by String. Anything other than
// exactly two space-separated integers is rejected.
func ParseSub(s string) (Sub, error) {
	node, gen, ok := strings.Cut(s, " ")
	if !ok || strings.ContainsRune(gen, ' ') {
		return Sub{}, fmt.Errorf("%w %q, want \"node generation\"", ErrMalformedSub, s)
	}
	n, err := strconv.ParseUint(node, 10, 32)
	if err != nil {
		return Sub{}, fmt.Errorf("%w: node in %q: %v", ErrMalformedSub, s, err)
	}
	g, err := strconv.ParseInt(gen, 10, 64)
	if err != nil {
		return Sub{}, fmt.Errorf("%w: generation in %q: %v", ErrMalformedSub, s, err)
	}
	return Sub{Node: uint32(n), Gen: g}, nil
}
