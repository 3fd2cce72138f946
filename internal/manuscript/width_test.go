package manuscript

import "testing"

func TestWidenTable(t *testing.T) {
	in := "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz."
	want := "０１２３４５６７８９ＡＢＣＤＥＦＧＨＩＪＫＬＭＮＯＰＱＲＳＴＵＶＷＸＹＺａｂｃｄｅｆｇｈｉｊｋｌｍｎｏｐｑｒｓｔｕｖｗｘｙｚ．"
	if got := Widen(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWidenKeepsAsciiSpace(t *testing.T) {
	if got := Widen("ON 1234 abc."); got != "ＯＮ １２３４ ａｂｃ．" {
		t.Fatalf("got %q", got)
	}
}

func TestWidenPassesThroughOtherRunes(t *testing.T) {
	in := "!?,-:;\t\n　あア漢ＡＢ１"
	if got := Widen(in); got != in {
		t.Fatalf("expected %q unchanged, got %q", in, got)
	}
}

func TestWidenIdempotent(t *testing.T) {
	inputs := []string{
		"0012　　N　　Hello there.\n\n0015　　ON",
		"mixed Ａscii and ｆull",
		"",
	}
	for _, in := range inputs {
		once := Widen(in)
		if twice := Widen(once); twice != once {
			t.Fatalf("widen not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
