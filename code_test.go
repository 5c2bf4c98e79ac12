package huffpack

import (
	"testing"
)

func TestCode_String(t *testing.T) {
	type testRow struct {
		hc     Code
		expect string
	}

	testData := [...]testRow{
		{hc: MakeCode(0, 0), expect: `""`},
		{hc: MakeCode(1, 0), expect: `"0"`},
		{hc: MakeCode(1, 1), expect: `"1"`},
		{hc: MakeCode(3, 5), expect: `"101"`},
		{hc: MakeCode(4, 0xc), expect: `"1100"`},
		{hc: MakeCode(8, 0x01), expect: `"00000001"`},
	}
	for _, row := range testData {
		t.Run(row.expect, func(t *testing.T) {
			actual := row.hc.String()
			if actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestCode_appendBit(t *testing.T) {
	hc := Code{}
	hc = hc.appendBit(1)
	hc = hc.appendBit(0)
	hc = hc.appendBit(1)

	expect := MakeCode(3, 5)
	if hc != expect {
		t.Errorf("expected %s, got %s", expect, hc)
	}
}
