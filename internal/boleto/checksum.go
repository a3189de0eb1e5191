package boleto

// Modulo10 computes the check digit used by fields 1-3 of the linha digitável.
// Weights alternate 2,1,2,1... starting from the rightmost digit; weighted
// products above 9 have their digits summed (7*2=14 -> 5).
func Modulo10(block string) int {
	sum := 0
	weight := 2

	for i := len(block) - 1; i >= 0; i-- {
		partial := int(block[i]-'0') * weight
		if partial > 9 {
			partial = partial/10 + partial%10
		}
		sum += partial
		if weight == 2 {
			weight = 1
		} else {
			weight = 2
		}
	}

	rest := sum % 10
	if rest == 0 {
		return 0
	}
	return 10 - rest
}

// Modulo11 computes the general check digit of the barcode (position 5).
// Weights cycle 2..9 from the rightmost digit. Results of 0, 10 and 11 are
// forced to 1 per the Febraban layout.
func Modulo11(code string) int {
	sum := 0
	weight := 2

	for i := len(code) - 1; i >= 0; i-- {
		sum += int(code[i]-'0') * weight
		if weight >= 9 {
			weight = 2
		} else {
			weight++
		}
	}

	dv := 11 - sum%11
	if dv == 0 || dv == 10 || dv == 11 {
		return 1
	}
	return dv
}
