package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMatchesVendorPrefixes(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name string
		want Kind
	}{
		{"HOLTEK USB DEVICE-1", KindStarlight},
		{"Holtek USB Devic", KindStarlight},
		{"GZU-TEK Piano", KindGZUTek},
		{"Dream S.A.S. SAM2695", KindDreamSAS},
		{"Piano MIDI Device 88", KindRGBPiano},
		{"piano midi-0001", KindRGBPiano},
		{"Roland FP-30", KindGeneric},
		{"", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, ok := registry.Match(7, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, adapter.Kind)
			assert.Equal(t, 7, adapter.ID)
			assert.Equal(t, tt.name, adapter.DeviceName)
		})
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	registry := NewRegistry(
		PrefixMatcher(KindDreamSAS, "piano"),
		PrefixMatcher(KindRGBPiano, "piano midi device"),
	)

	adapter, ok := registry.Match(1, "Piano MIDI Device")
	require.True(t, ok)
	assert.Equal(t, KindDreamSAS, adapter.Kind)
}

func TestRegistryWithoutCatchAll(t *testing.T) {
	registry := NewRegistry(PrefixMatcher(KindGZUTek, "gzu-tek"))

	_, ok := registry.Match(1, "Yamaha P-125")
	assert.False(t, ok)
}

func TestEncodeLED(t *testing.T) {
	mlne := func(key, state byte) []byte {
		return []byte{0xF0, 0x4D, 0x4C, 0x4E, 0x45, key, state, 0xF7}
	}

	tests := []struct {
		kind  Kind
		isOn  bool
		key   int
		bytes []byte
	}{
		{KindGeneric, true, 60, mlne(60, 1)},
		{KindGeneric, false, 60, mlne(60, 0)},
		{KindStarlight, true, 21, mlne(21, 1)},
		{KindGZUTek, false, 108, mlne(108, 0)},
		{KindDreamSAS, true, 0, mlne(0, 1)},
		{KindRGBPiano, true, 5, []byte{0xF0, 0x19, 0x05, 0x00, 0x7F, 0x00, 0x00, 0xF7}},
		{KindRGBPiano, false, 5, []byte{0xF0, 0x19, 0x05, 0x00, 0x00, 0x00, 0x00, 0xF7}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := Adapter{Kind: tt.kind}.EncodeLED(tt.isOn, tt.key)
			assert.Equal(t, tt.bytes, got)
		})
	}
}

func TestEncodeVolume(t *testing.T) {
	tests := []struct {
		kind    Kind
		percent int
		bytes   []byte
	}{
		{KindGeneric, 0, []byte{}},
		{KindGeneric, 100, []byte{}},
		{KindDreamSAS, 0, []byte{0xBF, 0x7A, 0x00}},
		{KindDreamSAS, 35, []byte{0xBF, 0x7A, 0x01}},
		{KindRGBPiano, 0, []byte{0xFB, 0x7A, 0x00}},
		{KindRGBPiano, 100, []byte{0xFB, 0x7A, 0x01}},
		{KindStarlight, 50, []byte{0xF0, 0x7F, 0x77, 0xF7}},
		{KindStarlight, 0, []byte{0xF0, 0x7F, 0x78, 0xF7}},
		{KindGZUTek, 0, []byte{0xF0, 0xAF, 0xF7, 0x00, 0x00}},
		{KindGZUTek, 100, []byte{0xF0, 0xAF, 0xF7, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := Adapter{Kind: tt.kind}.EncodeVolume(tt.percent)
			assert.Equal(t, tt.bytes, got)
		})
	}
}

func TestGenericFallbackHasNoVolume(t *testing.T) {
	adapter, ok := DefaultRegistry().Match(0, "Unknown Keyboard")
	require.True(t, ok)

	for _, percent := range []int{0, 1, 50, 100} {
		assert.Empty(t, adapter.EncodeVolume(percent))
	}
}

func TestInteractiveAfterMute(t *testing.T) {
	assert.False(t, Adapter{Kind: KindRGBPiano}.InteractiveAfterMute())
	assert.True(t, Adapter{Kind: KindStarlight}.InteractiveAfterMute())
	assert.True(t, Adapter{Kind: KindGeneric}.InteractiveAfterMute())
}

func TestEveryKindHasACodec(t *testing.T) {
	for _, kind := range []Kind{KindGeneric, KindStarlight, KindGZUTek, KindDreamSAS, KindRGBPiano} {
		_, ok := codecs[kind]
		assert.True(t, ok, kind.String())
	}
	assert.Equal(t, "unknown", Kind(99).String())
}
