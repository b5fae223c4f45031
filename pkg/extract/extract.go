// Package extract turns decoded RPL control packets into ordered pairs of node identifiers.
package extract

import (
	"fmt"
	"strings"

	"rpltopo/pkg/capture"
	"rpltopo/pkg/models"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// ErrMalformedAddress is matched by every AddressError.
var ErrMalformedAddress = errors.New("malformed address literal")

// AddressError reports an address literal no node identifier can be derived from.
type AddressError struct {
	Address string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMalformedAddress, e.Address)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrMalformedAddress
}

// NodeID derives the node identifier of an address: the segment after its last colon.
// The segment may be empty, as for "fe80::". Only a literal without any colon is rejected.
func NodeID(address string) (models.NodeID, error) {
	i := strings.LastIndexByte(address, ':')
	if i < 0 {
		return "", &AddressError{Address: address}
	}
	return models.NodeID(address[i+1:]), nil
}

// A Sink is fed every pair the extractor produces, in packet order.
type Sink interface {
	Observe(src, dst models.NodeID)
}

// Extractor filters packets down to RPL control packets and feeds their pairs to its sinks.
type Extractor struct {
	sinks     []Sink
	endpoints mapset.Set[string]
}

// New returns an extractor feeding sinks in the given order.
func New(sinks ...Sink) *Extractor {
	return &Extractor{
		sinks:     sinks,
		endpoints: mapset.NewThreadUnsafeSet[string](),
	}
}

// Extract feeds the pair of pkt to the sinks. It returns false, without side effects, for
// packets that are not RPL control packets or whose addresses are malformed.
func (e *Extractor) Extract(pkt capture.Packet) (models.Pair, bool, error) {
	if !pkt.IsRPLControl() {
		return models.Pair{}, false, nil
	}
	srcAddr, dstAddr := pkt.Addresses()
	src, err := NodeID(srcAddr)
	if err != nil {
		return models.Pair{}, false, errors.Wrap(err, "source")
	}
	dst, err := NodeID(dstAddr)
	if err != nil {
		return models.Pair{}, false, errors.Wrap(err, "destination")
	}

	e.endpoints.Add(srcAddr)
	e.endpoints.Add(dstAddr)
	for _, sink := range e.sinks {
		sink.Observe(src, dst)
	}
	return models.Pair{Src: src, Dst: dst}, true, nil
}

// Endpoints returns the number of distinct addresses seen so far. Addresses sharing
// their last segment count once per address but make a single node.
func (e *Extractor) Endpoints() int {
	return e.endpoints.Cardinality()
}
