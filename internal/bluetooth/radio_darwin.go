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

// CoreBluetooth identifies peripherals by UUID rather than MAC.
func parseAddress(address string) (bluetooth.Address, error) {
	uuid, err := bluetooth.ParseUUID(address)
	if err != nil {
		return bluetooth.Address{}, fmt.Errorf("ble: failed to parse peripheral UUID: %w", err)
	}
	return bluetooth.Address{UUID: uuid}, nil
}
