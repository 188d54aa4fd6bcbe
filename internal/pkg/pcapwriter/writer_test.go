package pcapwriter

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endorses/patmatch/internal/pkg/pcapsource"
)

func udpCapture(t *testing.T, payloads ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := pcapgo.NewWriter(&buf)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeEthernet))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, payload := range payloads {
		eth := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
			DstMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x66},
			EthernetType: layers.EthernetTypeIPv4,
		}
		ip := &layers.IPv4{
			Version:  4,
			IHL:      5,
			TTL:      64,
			Protocol: layers.IPProtocolUDP,
			SrcIP:    net.IP{192, 168, 1, 1},
			DstIP:    net.IP{192, 168, 1, 2},
		}
		udp := &layers.UDP{SrcPort: 5060, DstPort: 5060}
		require.NoError(t, udp.SetNetworkLayerForChecksum(ip))

		sb := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
		require.NoError(t, gopacket.SerializeLayers(sb, opts, eth, ip, udp, gopacket.Payload(payload)))

		data := sb.Bytes()
		ci := gopacket.CaptureInfo{
			Timestamp:     base.Add(time.Duration(i) * time.Second),
			CaptureLength: len(data),
			Length:        len(data),
		}
		require.NoError(t, w.WritePacket(ci, data))
	}
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcap")

	w, err := New(Config{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, path, w.FilePath())
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "no header is written before the first packet")
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorContains(t, err, "file path cannot be empty")
}

func TestNew_BadDirectory(t *testing.T) {
	_, err := New(Config{FilePath: filepath.Join(t.TempDir(), "missing", "out.pcap")})
	assert.ErrorContains(t, err, "failed to create pcap file")
}

func TestWritePayload_RoundTrip(t *testing.T) {
	payloads, err := pcapsource.ReadPayloads(bytes.NewReader(udpCapture(t, "REGISTER", "INVITE", "BYE")))
	require.NoError(t, err)
	require.Len(t, payloads, 3)

	path := filepath.Join(t.TempDir(), "matched.pcap")
	w, err := New(Config{FilePath: path})
	require.NoError(t, err)

	require.NoError(t, w.WritePayload(payloads[0]))
	require.NoError(t, w.WritePayload(payloads[2]))

	packets, written := w.Stats()
	assert.Equal(t, int64(2), packets)
	assert.Equal(t, int64(len(payloads[0].Frame)+len(payloads[2].Frame)), written)
	require.NoError(t, w.Close())

	reread, err := pcapsource.Open(path)
	require.NoError(t, err)
	require.Len(t, reread, 2)
	assert.Equal(t, "REGISTER", string(reread[0].Data))
	assert.Equal(t, "BYE", string(reread[1].Data))
	assert.True(t, payloads[2].Timestamp.Equal(reread[1].Timestamp))
	assert.Equal(t, layers.LinkTypeEthernet, reread[1].LinkType)
}

func TestWritePayload_NoFrame(t *testing.T) {
	w, err := New(Config{FilePath: filepath.Join(t.TempDir(), "out.pcap")})
	require.NoError(t, err)
	defer w.Close()

	err = w.WritePayload(pcapsource.Payload{Index: 7, Data: []byte("x")})
	assert.ErrorContains(t, err, "packet 7 has no captured frame")
}

func TestWritePayload_AfterClose(t *testing.T) {
	payloads, err := pcapsource.ReadPayloads(bytes.NewReader(udpCapture(t, "ACK")))
	require.NoError(t, err)

	w, err := New(Config{FilePath: filepath.Join(t.TempDir(), "out.pcap")})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.WritePayload(payloads[0]), ErrClosed)
}
