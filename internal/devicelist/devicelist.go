// Package devicelist encodes device lists in the text format exchanged with
// the native layers and provides the set operations used on them.
package devicelist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leandrodaf/midibt/sdk/contracts"
)

var (
	// ErrMalformedList is returned when a device list cannot be decoded.
	ErrMalformedList = errors.New("malformed device list")
	// ErrMissingAddress is returned for a record without an address.
	ErrMissingAddress = errors.New("device record without address")
)

type wireRecord struct {
	MacAddress    *string `json:"macAddress"`
	DeviceName    string  `json:"deviceName"`
	IsConnected   bool    `json:"isConnected"`
	Type          string  `json:"Type,omitempty"`
	SourceID      int     `json:"sourceId"`
	DestinationID int     `json:"destinationId"`
}

// Encode renders records as a JSON array, keeping order and duplicates.
func Encode(records []contracts.DeviceRecord) (string, error) {
	wire := make([]wireRecord, len(records))
	for i, r := range records {
		address := r.Address
		wire[i] = wireRecord{
			MacAddress:    &address,
			DeviceName:    r.Name,
			IsConnected:   r.Connected,
			Type:          string(r.Type),
			SourceID:      r.SourceID,
			DestinationID: r.DestinationID,
		}
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encoding device list: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON device list. An empty string decodes to an empty list.
func Decode(text string) ([]contracts.DeviceRecord, error) {
	if text == "" {
		return []contracts.DeviceRecord{}, nil
	}

	var wire []wireRecord
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}

	records := make([]contracts.DeviceRecord, len(wire))
	for i, w := range wire {
		if w.MacAddress == nil {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingAddress, i)
		}
		records[i] = contracts.DeviceRecord{
			Address:       *w.MacAddress,
			Name:          w.DeviceName,
			Connected:     w.IsConnected,
			Type:          parseConnectionType(w.Type),
			SourceID:      w.SourceID,
			DestinationID: w.DestinationID,
		}
	}
	return records, nil
}

func parseConnectionType(s string) contracts.ConnectionType {
	switch t := contracts.ConnectionType(s); t {
	case contracts.ConnectionBluetooth, contracts.ConnectionWired:
		return t
	default:
		return contracts.ConnectionUnknown
	}
}

// Union concatenates lists, keeping the first record of every (address, name)
// identity. Order of first appearance is preserved.
func Union(lists ...[]contracts.DeviceRecord) []contracts.DeviceRecord {
	seen := make(map[contracts.DeviceKey]struct{})
	out := []contracts.DeviceRecord{}
	for _, list := range lists {
		for _, r := range list {
			if _, ok := seen[r.Key()]; ok {
				continue
			}
			seen[r.Key()] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// Connected returns the records whose Connected flag matches want.
func Connected(records []contracts.DeviceRecord, want bool) []contracts.DeviceRecord {
	out := []contracts.DeviceRecord{}
	for _, r := range records {
		if r.Connected == want {
			out = append(out, r)
		}
	}
	return out
}

// FindByAddress returns the first record with the address.
func FindByAddress(records []contracts.DeviceRecord, address string) (contracts.DeviceRecord, bool) {
	for _, r := range records {
		if r.Address == address {
			return r, true
		}
	}
	return contracts.DeviceRecord{}, false
}

// FindByName returns the first record with the exact name.
func FindByName(records []contracts.DeviceRecord, name string) (contracts.DeviceRecord, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return contracts.DeviceRecord{}, false
}
