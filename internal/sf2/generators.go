package sf2

// GeneratorOp is an SF2 generator operator.
type GeneratorOp uint16

// Generator operators used by the encoder.
const (
	GenPan            GeneratorOp = 17
	GenReleaseVolEnv  GeneratorOp = 38
	GenInstrument     GeneratorOp = 41
	GenKeyRange       GeneratorOp = 43
	GenSampleID       GeneratorOp = 53
	GenSampleModes    GeneratorOp = 54
	GenScaleTuning    GeneratorOp = 56
	GenExclusiveClass GeneratorOp = 57
)

// drumRelease lets drum hits ring out after note off (timecents, about 100s).
const drumRelease = 8000

// Generator is one (operator, amount) pair.
type Generator struct {
	Op     GeneratorOp
	Amount uint16
}

func signedAmount(v int16) uint16 {
	return uint16(v)
}

// keyRangeAmount packs a key range as hi<<8 | lo.
func keyRangeAmount(lo, hi uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// instrumentBags returns the generator list of every instrument bag in emission
// order. Drum kits get a leading global bag. The ibag offsets and the igen
// content are both derived from this single list.
func instrumentBags(zones []ZoneRecord, drum bool) [][]Generator {
	bags := make([][]Generator, 0, len(zones)+1)
	if drum {
		bags = append(bags, []Generator{
			{Op: GenScaleTuning, Amount: 0},
			{Op: GenReleaseVolEnv, Amount: drumRelease},
		})
	}
	for _, z := range zones {
		bags = append(bags, zoneGenerators(z, drum))
	}
	return bags
}

// zoneGenerators lists a zone's generators. The key range must come first
// and the sample reference last.
func zoneGenerators(z ZoneRecord, drum bool) []Generator {
	gens := make([]Generator, 0, 5)
	gens = append(gens, Generator{Op: GenKeyRange, Amount: keyRangeAmount(z.KeyLo, z.KeyHi)})
	if z.SampleMode != NoLoop {
		gens = append(gens, Generator{Op: GenSampleModes, Amount: z.SampleMode})
	}
	if z.Pan != 0 {
		gens = append(gens, Generator{Op: GenPan, Amount: signedAmount(z.Pan)})
	}
	if drum && z.ExclusiveClass != 0 {
		gens = append(gens, Generator{Op: GenExclusiveClass, Amount: uint16(z.ExclusiveClass)})
	}
	return append(gens, Generator{Op: GenSampleID, Amount: uint16(z.SampleID)})
}

// countGenerators sums the generators over all bags.
func countGenerators(bags [][]Generator) int {
	n := 0
	for _, b := range bags {
		n += len(b)
	}
	return n
}
