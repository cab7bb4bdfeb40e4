package currency

// Convert moves amount from one currency to another through Base. No rounding is
// applied. Unknown codes are treated as Base.
func Convert(amount float64, from, to Code) float64 {
	if from == to {
		return amount
	}
	src := infoOrBase(from)
	dst := infoOrBase(to)
	if src.Code == dst.Code {
		return amount
	}
	return amount / src.Rate * dst.Rate
}

// ToBase converts amount in code to Base.
func ToBase(amount float64, code Code) float64 {
	return Convert(amount, code, Base)
}

// GetExchangeRate is the number of to units per one from unit.
func GetExchangeRate(from, to Code) float64 {
	if from == to {
		return 1
	}
	src := infoOrBase(from)
	dst := infoOrBase(to)
	if src.Code == dst.Code {
		return 1
	}
	return dst.Rate / src.Rate
}
