// Package capturetest synthesizes capture files for tests.
package capturetest

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/stretchr/testify/require"
)

const (
	icmpv6TypeRPL  = 155
	rplCodeDIO     = 0x01
	icmpv6TypeEcho = 128
)

var (
	srcMAC = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	dstMAC = net.HardwareAddr{0x33, 0x33, 0x00, 0x00, 0x00, 0x1a}
)

// RPL returns an Ethernet frame carrying an RPL DIO from src to dst, both IPv6 literals.
func RPL(t testing.TB, src, dst string) []byte {
	return icmp(t, src, dst, layers.CreateICMPv6TypeCode(icmpv6TypeRPL, rplCodeDIO))
}

// Echo returns an Ethernet frame carrying an ICMPv6 echo request, which is not RPL.
func Echo(t testing.TB, src, dst string) []byte {
	return icmp(t, src, dst, layers.CreateICMPv6TypeCode(icmpv6TypeEcho, 0))
}

// UDP returns an Ethernet frame carrying an IPv6 UDP datagram.
func UDP(t testing.TB, src, dst string) []byte {
	ip := ipv6(t, src, dst, layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 5683, DstPort: 5683}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
	return serialize(t, ethernet(), ip, udp, gopacket.Payload([]byte("coap")))
}

func icmp(t testing.TB, src, dst string, tc layers.ICMPv6TypeCode) []byte {
	ip := ipv6(t, src, dst, layers.IPProtocolICMPv6)
	msg := &layers.ICMPv6{TypeCode: tc}
	require.NoError(t, msg.SetNetworkLayerForChecksum(ip))
	// RPL DIO base: instance, version, rank, flags, DTSN, reserved, DODAG ID.
	body := make([]byte, 24)
	body[0], body[2], body[3] = 1, 0x02, 0x00
	return serialize(t, ethernet(), ip, msg, gopacket.Payload(body))
}

func ethernet() *layers.Ethernet {
	return &layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeIPv6,
	}
}

func ipv6(t testing.TB, src, dst string, next layers.IPProtocol) *layers.IPv6 {
	srcIP, dstIP := net.ParseIP(src), net.ParseIP(dst)
	require.NotNil(t, srcIP, src)
	require.NotNil(t, dstIP, dst)
	return &layers.IPv6{
		Version:    6,
		NextHeader: next,
		HopLimit:   64,
		SrcIP:      srcIP,
		DstIP:      dstIP,
	}
}

func serialize(t testing.TB, l ...gopacket.SerializableLayer) []byte {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, l...))
	return buf.Bytes()
}

func captureInfo(i int, frame []byte) gopacket.CaptureInfo {
	return gopacket.CaptureInfo{
		Timestamp:     time.Unix(1700000000, 0).Add(time.Duration(i) * time.Millisecond),
		Length:        len(frame),
		CaptureLength: len(frame),
	}
}

// WritePcap stores the Ethernet frames in a classic pcap file.
func WritePcap(t testing.TB, path string, frames ...[]byte) {
	t.Helper()
	WritePcapLinkType(t, path, layers.LinkTypeEthernet, frames...)
}

// WritePcapLinkType stores the frames in a classic pcap file of the given link type.
func WritePcapLinkType(t testing.TB, path string, lt layers.LinkType, frames ...[]byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65535, lt))
	for i, frame := range frames {
		require.NoError(t, w.WritePacket(captureInfo(i, frame), frame))
	}
}

// WritePcapNg stores the frames in a pcapng file.
func WritePcapNg(t testing.TB, path string, frames ...[]byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	defer f.Close()

	w, err := pcapgo.NewNgWriter(f, layers.LinkTypeEthernet)
	require.NoError(t, err)
	for i, frame := range frames {
		require.NoError(t, w.WritePacket(captureInfo(i, frame), frame))
	}
	require.NoError(t, w.Flush())
}

// WriteGarbage stores bytes that are neither pcap nor pcapng.
func WriteGarbage(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("this is not a capture file"), 0o644))
}

// Truncate cuts the last n bytes off the file at path.
func Truncate(t testing.TB, path string, n int64) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-n))
}
