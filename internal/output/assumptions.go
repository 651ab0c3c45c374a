package output

// Disclaimer is appended to every human-readable report.
const Disclaimer = "Educational guidance only. Not investment/tax advice."

// DefaultAssumptions lists the modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Contributions are made at the start of each month (annuity due)",
	"Annual rates compound monthly at rate/12",
	"Fractional years round to whole months, halves to even",
	"Rebate u/s 87A is all-or-nothing at the threshold; no marginal relief",
	"Surcharge on high incomes is not modelled",
}
