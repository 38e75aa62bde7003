// Package protocol translates LED and volume intents into the control
// messages each supported keyboard vendor understands.
package protocol

// Kind identifies a vendor protocol family.
type Kind int

const (
	KindGeneric Kind = iota
	KindStarlight
	KindGZUTek
	KindDreamSAS
	KindRGBPiano
)

func (k Kind) String() string {
	if c, ok := codecs[k]; ok {
		return c.name
	}
	return "unknown"
}

type codec struct {
	name                 string
	led                  func(isOn bool, keyIndex int) []byte
	volume               func(percent int) []byte
	interactiveAfterMute bool
}

// codecs is the dispatch table; every Kind has exactly one entry.
var codecs = map[Kind]codec{
	KindGeneric: {
		name:                 "generic",
		led:                  sysExLED,
		volume:               func(int) []byte { return []byte{} },
		interactiveAfterMute: true,
	},
	KindStarlight: {
		name:                 "starlight",
		led:                  sysExLED,
		volume:               starlightVolume,
		interactiveAfterMute: true,
	},
	KindGZUTek: {
		name:                 "gzu-tek",
		led:                  sysExLED,
		volume:               gzuTekVolume,
		interactiveAfterMute: true,
	},
	KindDreamSAS: {
		name:                 "dream-sas",
		led:                  sysExLED,
		volume:               dreamSASVolume,
		interactiveAfterMute: true,
	},
	KindRGBPiano: {
		name:                 "rgb-piano",
		led:                  rgbPianoLED,
		volume:               rgbPianoVolume,
		interactiveAfterMute: false,
	},
}

// sysExLED is the "MLNE" LED message shared by most vendors:
// F0 4D 4C 4E 45 <key> <0|1> F7.
func sysExLED(isOn bool, keyIndex int) []byte {
	return []byte{0xF0, 0x4D, 0x4C, 0x4E, 0x45, byte(keyIndex), onOff(isOn, 0x01, 0x00), 0xF7}
}

// rgbPianoLED drives the red channel only: F0 19 <key> 00 <7F|00> 00 00 F7.
func rgbPianoLED(isOn bool, keyIndex int) []byte {
	return []byte{0xF0, 0x19, byte(keyIndex), 0x00, onOff(isOn, 0x7F, 0x00), 0x00, 0x00, 0xF7}
}

func starlightVolume(percent int) []byte {
	return []byte{0xF0, 0x7F, onOff(percent != 0, 0x77, 0x78), 0xF7}
}

func dreamSASVolume(percent int) []byte {
	return []byte{0xBF, 0x7A, onOff(percent != 0, 0x01, 0x00)}
}

func rgbPianoVolume(percent int) []byte {
	return []byte{0xFB, 0x7A, onOff(percent != 0, 0x01, 0x00)}
}

// gzuTekVolume writes offset 2 three times into a five byte buffer, so the
// scaled level never reaches the wire and the result is always
// F0 AF F7 00 00. Deployed firmware has only ever seen this output.
// TODO: confirm the intended layout (F0 AF 70 <level> F7) against a GZU-TEK unit.
func gzuTekVolume(percent int) []byte {
	buf := make([]byte, 5)
	level := 16.0 / 100.0 * float64(percent) * 7.5625

	buf[0] = 0xF0
	buf[1] = 0xAF
	buf[2] = 0x70
	buf[2] = byte(level)
	buf[2] = 0xF7

	return buf
}

func onOff(on bool, whenOn, whenOff byte) byte {
	if on {
		return whenOn
	}
	return whenOff
}
