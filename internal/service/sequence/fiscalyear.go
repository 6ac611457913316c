package sequence

// buddhistEraOffset converts Buddhist-era years (พ.ศ.) to Gregorian. Client
// devices localized to the Thai calendar report years like 2567; stored
// document numbers must never carry the locale offset.
const buddhistEraOffset = 543

// NormalizeFiscalYear maps a raw year from a document date to the Gregorian
// fiscal year used in document numbers. Years above 2400 are treated as
// Buddhist era; plain Gregorian years pass through unchanged.
func NormalizeFiscalYear(raw int) int {
	if raw > 2400 {
		return raw - buddhistEraOffset
	}
	return raw
}
