package bluetooth

import (
	"fmt"

	"tinygo.org/x/bluetooth"
)

func newAdapter(id string) (*bluetooth.Adapter, error) {
	if id != "" {
		return nil, ErrAdapterInvalidID
	}
	return bluetooth.DefaultAdapter, nil
}

func parseAddress(address string) (bluetooth.Address, error) {
	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("ble: failed to parse MAC address: %w", err)
	}
	return bluetooth.Address{MACAddress: bluetooth.MACAddress{MAC: mac}}, nil
}
