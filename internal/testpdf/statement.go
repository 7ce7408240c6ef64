package testpdf

// TruistStatement is a two-page statement whose debits continue from
// page 1 onto page 2, with credits on page 2 only.
func TruistStatement() [][]Line {
	return [][]Line{
		{
			Text(750, "Truist Bank checking account statement"),
			Text(700, "Other withdrawals, debits and service charges"),
			Text(670, "DATE DESCRIPTION AMOUNT($)"),
			Row(658, "12/28 GROCERY", "45.12"),
			Row(646, "12/30 FUEL STATION #7", "30.00"),
			Text(634, "continued"),
			Text(50, "Page 1 of 2"),
		},
		{
			Text(750, "Truist Bank statement for the period ending 01/05"),
			Text(700, "Other withdrawals, debits and service charges (continued)"),
			Row(688, "01/03 PHARMACY", "1,012.00"),
			Text(640, "Deposits, credits and interest"),
			Text(610, "DATE DESCRIPTION AMOUNT($)"),
			Row(598, "01/02 PAYROLL ACME", "2,500.00"),
			Text(50, "Page 2 of 2"),
		},
	}
}
