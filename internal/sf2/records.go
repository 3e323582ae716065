package sf2

// Fixed size pdta records, written with encoding/binary in little-endian order.

// presetHeader is a 38 byte phdr record.
type presetHeader struct {
	Name       [nameSize]byte
	Preset     uint16
	Bank       uint16
	BagIndex   uint16
	Library    uint32
	Genre      uint32
	Morphology uint32
}

// bagRecord is a 4 byte pbag/ibag record.
type bagRecord struct {
	GenIndex uint16
	ModIndex uint16
}

// modRecord is a 10 byte pmod/imod record.
type modRecord struct {
	SrcOper    uint16
	DestOper   uint16
	Amount     int16
	AmtSrcOper uint16
	TransOper  uint16
}

// genRecord is a 4 byte pgen/igen record.
type genRecord struct {
	Oper   uint16
	Amount uint16
}

// instHeader is a 22 byte inst record.
type instHeader struct {
	Name     [nameSize]byte
	BagIndex uint16
}

// sampleHeader is a 46 byte shdr record.
type sampleHeader struct {
	Name            [nameSize]byte
	Start           uint32
	End             uint32
	StartLoop       uint32
	EndLoop         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8
	SampleLink      uint16
	SampleType      uint16
}

// Record sizes in bytes.
const (
	presetHeaderSize = 38
	bagSize          = 4
	modSize          = 10
	genSize          = 4
	instHeaderSize   = 22
	sampleHeaderSize = 46
)

// fixedName null-pads name into a 20 byte field, truncating longer names.
func fixedName(name string) [nameSize]byte {
	var out [nameSize]byte
	copy(out[:], name)
	return out
}
