package protocol

import "strings"

// Adapter is the protocol binding for one matched device. It is immutable and
// safe to share between goroutines.
type Adapter struct {
	ID         int
	DeviceName string
	Kind       Kind
}

// EncodeLED returns the message that switches the LED of keyIndex on or off.
func (a Adapter) EncodeLED(isOn bool, keyIndex int) []byte {
	return codecs[a.Kind].led(isOn, keyIndex)
}

// EncodeVolume returns the volume message for percent (0..100). An empty
// slice means the vendor has no volume control.
func (a Adapter) EncodeVolume(percent int) []byte {
	return codecs[a.Kind].volume(percent)
}

// InteractiveAfterMute reports whether the keyboard still produces note events
// once its speaker has been muted.
func (a Adapter) InteractiveAfterMute() bool {
	return codecs[a.Kind].interactiveAfterMute
}

// Matcher decides whether a device belongs to a vendor.
type Matcher func(id int, name string) (Adapter, bool)

// PrefixMatcher matches device names starting with any of the prefixes,
// ignoring case.
func PrefixMatcher(kind Kind, prefixes ...string) Matcher {
	lowered := make([]string, len(prefixes))
	for i, p := range prefixes {
		lowered[i] = strings.ToLower(p)
	}

	return func(id int, name string) (Adapter, bool) {
		n := strings.ToLower(name)
		for _, p := range lowered {
			if strings.HasPrefix(n, p) {
				return Adapter{ID: id, DeviceName: name, Kind: kind}, true
			}
		}
		return Adapter{}, false
	}
}

// CatchAll matches every device.
func CatchAll(kind Kind) Matcher {
	return func(id int, name string) (Adapter, bool) {
		return Adapter{ID: id, DeviceName: name, Kind: kind}, true
	}
}

// Registry tries its matchers in registration order; the first match wins.
type Registry struct {
	matchers []Matcher
}

// NewRegistry builds a registry from an ordered matcher list. Put specific
// vendors before any catch-all.
func NewRegistry(matchers ...Matcher) *Registry {
	return &Registry{matchers: matchers}
}

// DefaultRegistry knows every supported vendor and falls back to the generic adapter.
func DefaultRegistry() *Registry {
	return NewRegistry(
		PrefixMatcher(KindStarlight, "holtek usb devic"),
		PrefixMatcher(KindGZUTek, "gzu-tek"),
		PrefixMatcher(KindDreamSAS, "dream s.a.s."),
		PrefixMatcher(KindRGBPiano, "piano midi device", "piano midi-0001"),
		CatchAll(KindGeneric),
	)
}

// Match returns the adapter of the first matching vendor. It only fails when
// the registry has no catch-all.
func (r *Registry) Match(id int, name string) (Adapter, bool) {
	for _, m := range r.matchers {
		if a, ok := m(id, name); ok {
			return a, true
		}
	}
	return Adapter{}, false
}
