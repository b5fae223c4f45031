package capture

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/pkg/errors"
)

// pcapngMagic is the block type of the section header block that starts every pcapng file.
var pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

// DecodeError reports a capture file that could not be opened or read to its end.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding capture %q: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type packetDataSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// FileOpener opens pcap and pcapng files from disk. The format is told apart by the
// file's magic number.
type FileOpener struct{}

func NewFileOpener() Opener {
	return &FileOpener{}
}

func (o *FileOpener) Open(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{File: path, Err: err}
	}

	src, err := newSource(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, &DecodeError{File: path, Err: err}
	}
	return &fileReader{
		path:   path,
		file:   f,
		source: src,
	}, nil
}

func newSource(r *bufio.Reader) (packetDataSource, error) {
	magic, err := r.Peek(len(pcapngMagic))
	if err != nil {
		return nil, errors.Wrap(err, "reading file header")
	}
	if bytes.Equal(magic, pcapngMagic) {
		ng, err := pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, errors.Wrap(err, "reading pcapng section header")
		}
		return ng, nil
	}
	pcap, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading pcap header")
	}
	return pcap, nil
}

type fileReader struct {
	path   string
	file   *os.File
	source packetDataSource
}

// Next decodes the next packet. A packet the link layer decoder does not fully understand
// is still returned; it is simply not an RPL control packet.
func (r *fileReader) Next() (Packet, error) {
	data, _, err := r.source.ReadPacketData()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &DecodeError{File: r.path, Err: err}
	}
	pkt := gopacket.NewPacket(data, r.source.LinkType(), gopacket.DecodeOptions{
		Lazy:   true,
		NoCopy: true,
	})
	return newDecodedPacket(pkt), nil
}

// LinkType returns the link type of the capture.
func (r *fileReader) LinkType() layers.LinkType {
	return r.source.LinkType()
}

func (r *fileReader) Close() error {
	return r.file.Close()
}
