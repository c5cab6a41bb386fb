package lifecycle

// Flag models a cached boolean whose real value may not be known yet. The
// booking's has_review hint arrives as true, false, or missing entirely, and
// a missing value must never be read as "no review" — it means "go ask".
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagKnownFalse
	FlagKnownTrue
)

func (f Flag) Known() bool { return f != FlagUnknown }

// FlagFromPtr maps an optional boolean onto the tri-state: nil is Unknown.
func FlagFromPtr(b *bool) Flag {
	switch {
	case b == nil:
		return FlagUnknown
	case *b:
		return FlagKnownTrue
	default:
		return FlagKnownFalse
	}
}

func FlagFromBool(b bool) Flag {
	if b {
		return FlagKnownTrue
	}
	return FlagKnownFalse
}
