package mastery

// Band is a coarse label for a mastery value, used for display.
type Band string

const (
	BandNovice     Band = "novice"
	BandApprentice Band = "apprentice"
	BandSolid      Band = "solid"
	BandStrong     Band = "strong"
	BandMaster     Band = "master"
)

// BandFor maps a mastery value to its display band.
func BandFor(mastery float64) Band {
	switch {
	case mastery >= 85:
		return BandMaster
	case mastery >= 70:
		return BandStrong
	case mastery >= 50:
		return BandSolid
	case mastery >= 30:
		return BandApprentice
	default:
		return BandNovice
	}
}

// Band returns the display band of the state's mastery.
func (s SkillState) Band() Band {
	return BandFor(s.Mastery)
}
