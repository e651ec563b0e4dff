// numeral/numeral.go

// Package numeral splits monetary amounts into base-1000 groups and splits a
// group into its hundreds, tens and units digits.
//
// Amounts are counted in minor-unit ticks (1/100 of the major unit), so the
// group at power p of the major value sits at 10^(p+2) in the amount.
// The package is pure arithmetic and safe for concurrent use.
package numeral

// Extraction selects how a group value is taken from an amount.
type Extraction int

const (
	// ByMagnitude takes (amount / 10^(power+2)) mod 1000.
	ByMagnitude Extraction = iota

	// Fractional takes amount mod 100, the minor units.
	Fractional
)

// String returns the extraction name.
func (e Extraction) String() string {
	switch e {
	case ByMagnitude:
		return "magnitude"
	case Fractional:
		return "fractional"
	default:
		return "unknown"
	}
}

// Powers of ten of the major value that carry a named group.
const (
	Units     = 0
	Thousands = 3
	Millions  = 6
	Billions  = 9
)

// MinorPerMajor is the number of minor-unit ticks in one major unit.
const MinorPerMajor = 100

// MaxAmount is the largest amount in ticks: 2,147,483,647 major units.
const MaxAmount int64 = 214748364700

// pow10 holds 10^0..10^11, enough for the billions group of MaxAmount.
var pow10 = [...]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000,
	100_000_000, 1_000_000_000, 10_000_000_000, 100_000_000_000,
}

// Extract returns the group value of amount for the given power and mode.
// Powers other than 0, 3, 6 and 9 are not meaningful; a power whose divisor
// is outside the table yields 0. amount must be non-negative.
func Extract(amount int64, power int, mode Extraction) int {
	if mode == Fractional {
		return int(amount % MinorPerMajor)
	}
	idx := power + 2
	if idx < 0 || idx >= len(pow10) {
		return 0
	}
	return int(amount / pow10[idx] % 1000)
}

// Split divides amount into major and minor units.
func Split(amount int64) (major, minor int64) {
	return amount / MinorPerMajor, amount % MinorPerMajor
}

// Digits is a group value in 0..999 broken into decimal digits.
type Digits struct {
	Hundreds int
	Tens     int
	Units    int
}

// Decompose splits a group value 0..999 into digits.
func Decompose(v int) Digits {
	return Digits{
		Hundreds: v / 100,
		Tens:     (v % 100) / 10,
		Units:    v % 10,
	}
}

// Teen reports whether the last two digits are 10..19, which every supported
// language spells as one irregular word.
func (d Digits) Teen() bool {
	return d.Tens == 1
}

// Zero reports whether all digits are zero.
func (d Digits) Zero() bool {
	return d.Hundreds == 0 && d.Tens == 0 && d.Units == 0
}
