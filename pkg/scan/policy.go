package scan

// Policy decides which images are worth downscaling. An image qualifies
// when it is strictly larger than the size threshold or strictly wider
// or taller than the dimension threshold. Images exactly at a threshold
// do not qualify.
type Policy struct {
	SizeThresholdKB      int
	DimensionThresholdPX int
}

// Qualifies reports whether a candidate exceeds any threshold.
func (p Policy) Qualifies(c Candidate) bool {
	if c.Size > int64(p.SizeThresholdKB)*1024 {
		return true
	}
	return c.Width > p.DimensionThresholdPX || c.Height > p.DimensionThresholdPX
}
