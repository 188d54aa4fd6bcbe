// Package pcapsource turns a classic pcap capture into a list of packet payloads
// that can be searched as texts.
package pcapsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Payload layers, from most to least specific.
const (
	LayerApplication = "application"
	LayerTransport   = "transport"
	LayerNetwork     = "network"
	LayerLink        = "link"
)

// Payload is the searchable body of one captured packet.
type Payload struct {
	// Index is the packet's position in the capture, starting at 0.
	Index     int       `json:"index" yaml:"index"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Flow is the network endpoint pair, empty when there is no network layer.
	Flow  string `json:"flow,omitempty" yaml:"flow,omitempty"`
	Layer string `json:"layer" yaml:"layer"`
	Data  []byte `json:"-" yaml:"-"`

	// Frame is the whole captured packet as read, shared with Data.
	Frame       []byte               `json:"-" yaml:"-"`
	CaptureInfo gopacket.CaptureInfo `json:"-" yaml:"-"`
	LinkType    layers.LinkType      `json:"-" yaml:"-"`
}

// Open reads every payload from the pcap file at path.
func Open(path string) ([]Payload, error) {
	// #nosec G304 -- Path is supplied by the operator on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	payloads, err := ReadPayloads(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return payloads, nil
}

// ReadPayloads decodes a pcap stream and returns the payload of each packet's
// innermost layer. Packets that carry nothing beyond their headers are skipped.
func ReadPayloads(r io.Reader) ([]Payload, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}
	linkType := reader.LinkType()

	var payloads []Payload
	for index := 0; ; index++ {
		data, ci, err := reader.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return payloads, fmt.Errorf("failed to read packet %d: %w", index, err)
		}

		packet := gopacket.NewPacket(data, linkType, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
		p, ok := extract(packet)
		if !ok {
			continue
		}
		p.Index = index
		p.Timestamp = ci.Timestamp
		p.Frame = data
		p.CaptureInfo = ci
		p.LinkType = linkType
		payloads = append(payloads, p)
	}
	return payloads, nil
}

// extract takes the payload of the innermost decoded layer. A packet whose
// innermost layer is empty yields nothing, so headers are never searched.
func extract(packet gopacket.Packet) (Payload, bool) {
	var p Payload
	net := packet.NetworkLayer()
	if net != nil {
		p.Flow = net.NetworkFlow().String()
	}

	switch {
	case packet.ApplicationLayer() != nil:
		p.Layer = LayerApplication
		p.Data = packet.ApplicationLayer().Payload()
	case packet.TransportLayer() != nil:
		p.Layer = LayerTransport
		p.Data = packet.TransportLayer().LayerPayload()
	case net != nil:
		p.Layer = LayerNetwork
		p.Data = net.LayerPayload()
	case packet.LinkLayer() != nil:
		p.Layer = LayerLink
		p.Data = packet.LinkLayer().LayerPayload()
	}

	if len(p.Data) == 0 {
		return Payload{}, false
	}
	return p, true
}
