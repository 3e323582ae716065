package ebl

// EBLFile is a parsed E-MU Emulator X sample file.
type EBLFile struct {
	Filename string
	Path     string
	Size     int64
	Read     int64

	// Name is the sample name stored in the header, Comment its free text.
	Name    string
	Comment string

	Header       HeaderData
	Channel1Size int
	Channel2Size int
	Channel1Data []byte // little-endian PCM16
	Channel2Data []byte // empty for mono samples
}

// HeaderData holds the little-endian values of the sample header. Only the
// offsets used to size the channel planes and the sample rate are understood.
type HeaderData struct {
	V1         int // Unknown. 301 le
	V2         int // Data Offset. 184 le
	V3         int // Data size (including offset)
	V4         int // Data size - 2
	V5         int // Close to the end of file
	V6         int // Channel 1 Data Offset
	V7         int // Data size (including offset)
	V8         int // Start of Audio Data?
	V9         int // End of data for this channel?
	SampleRate int // typically 44100 Hz
	V11        int // Unknown, 0
	V12        int // Unknown
}

// Stereo reports whether the file carries a second channel plane.
func (f *EBLFile) Stereo() bool {
	return f.Channel2Size > 0
}
