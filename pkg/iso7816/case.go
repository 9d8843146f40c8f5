package iso7816

import "fmt"

// LengthForm is the width of the Lc and Le fields of a command.
type LengthForm int

const (
	// ShortForm uses 1-byte Lc/Le fields.
	ShortForm LengthForm = iota
	// ExtendedForm uses a 00 marker and 2-byte Lc/Le fields.
	ExtendedForm
)

func (f LengthForm) String() string {
	switch f {
	case ShortForm:
		return "Short"
	case ExtendedForm:
		return "Extended"
	default:
		return fmt.Sprintf("LengthForm(%d)", int(f))
	}
}

// formOf picks Extended as soon as either field exceeds its short limit.
func formOf(nc, ne int) LengthForm {
	if nc > MaxShortLc || ne > MaxShortLe {
		return ExtendedForm
	}
	return ShortForm
}

// Case identifies one of the seven command layouts of ISO/IEC 7816-3.
type Case int

const (
	Case1 Case = iota + 1
	Case2Short
	Case2Extended
	Case3Short
	Case3Extended
	Case4Short
	Case4Extended
)

func (c Case) String() string {
	switch c {
	case Case1:
		return "CASE-1"
	case Case2Short:
		return "CASE-2s"
	case Case2Extended:
		return "CASE-2e"
	case Case3Short:
		return "CASE-3s"
	case Case3Extended:
		return "CASE-3e"
	case Case4Short:
		return "CASE-4s"
	case Case4Extended:
		return "CASE-4e"
	default:
		return fmt.Sprintf("Case(%d)", int(c))
	}
}

// IsExtended reports whether the case uses extended length fields.
func (c Case) IsExtended() bool {
	return c == Case2Extended || c == Case3Extended || c == Case4Extended
}
