// Package capture reads capture files and exposes their packets in the shape the extractor
// consumes: a verdict on whether a packet is an RPL control message, and its textual
// source and destination addresses.
package capture

import (
	"net"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
)

// ICMPv6TypeRPL is the ICMPv6 message type of RPL control messages (RFC 6550).
const ICMPv6TypeRPL uint8 = 155

// Packet is a decoded packet as seen by the extractor.
type Packet interface {
	// IsRPLControl reports whether the packet carries an RPL control message.
	IsRPLControl() bool
	// Addresses returns the source and destination address literals. Only meaningful
	// when IsRPLControl is true.
	Addresses() (src, dst string)
}

// Reader iterates over the packets of one capture. Next returns io.EOF once exhausted.
type Reader interface {
	Next() (Packet, error)
	Close() error
}

// Opener opens capture files.
type Opener interface {
	Open(path string) (Reader, error)
}

type decodedPacket struct {
	ip   *layers.IPv6
	icmp *layers.ICMPv6
}

func newDecodedPacket(pkt gopacket.Packet) decodedPacket {
	var res decodedPacket
	if l := pkt.Layer(layers.LayerTypeIPv6); l != nil {
		res.ip = l.(*layers.IPv6)
	}
	if l := pkt.Layer(layers.LayerTypeICMPv6); l != nil {
		res.icmp = l.(*layers.ICMPv6)
	}
	return res
}

func (p decodedPacket) IsRPLControl() bool {
	return p.ip != nil && p.icmp != nil && p.icmp.TypeCode.Type() == ICMPv6TypeRPL
}

func (p decodedPacket) Addresses() (string, string) {
	if p.ip == nil {
		return "", ""
	}
	return addressLiteral(p.ip.SrcIP), addressLiteral(p.ip.DstIP)
}

// addressLiteral formats ip in its IPv6 textual form. net.IP prints IPv4-mapped addresses
// in dotted form only; they keep their "::ffff:" prefix here.
func addressLiteral(ip net.IP) string {
	if v4 := ip.To4(); v4 != nil && len(ip) == net.IPv6len {
		return "::ffff:" + v4.String()
	}
	return ip.String()
}

// ipv6LinkTypes are the link types gopacket decodes down to an IPv6 layer.
var ipv6LinkTypes = map[layers.LinkType]bool{
	layers.LinkTypeNull:           true,
	layers.LinkTypeEthernet:       true,
	layers.LinkTypePPP:            true,
	layers.LinkTypeRaw:            true,
	layers.LinkTypeLoop:           true,
	layers.LinkTypeIEEE802_11:     true,
	layers.LinkTypeIEEE80211Radio: true,
	layers.LinkTypeLinuxSLL:       true,
	layers.LinkTypeIPv6:           true,
}

// CarriesIPv6 reports whether packets of the given link type can be decoded to IPv6, and
// so can ever be recognised as RPL control packets. 6LoWPAN over IEEE 802.15.4 cannot.
func CarriesIPv6(lt layers.LinkType) bool {
	return ipv6LinkTypes[lt]
}
