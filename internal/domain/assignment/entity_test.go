package assignment

import "testing"

func TestParseKind(t *testing.T) {
	cases := []struct {
		code string
		want Kind
	}{
		{"FREE", KindFree},
		{"free", KindFree},
		{" Free ", KindFree},
		{"", KindFree},
		{"   ", KindFree},
		{"DOVOLENÁ", KindVacation},
		{"dovolena", KindVacation},
		{"NEMOC", KindSick},
		{"nemoc", KindSick},
		{"OVER", KindOverhead},
		{"ŠKOLENÍ", KindOverhead},
		{"skoleni", KindOverhead},
		{"INTERNAL", KindOverhead},
		{"ST_FEM", KindProject},
		{"freeform", KindProject}, // not an exact pseudo-code match
	}
	for _, c := range cases {
		if got := ParseKind(c.code); got != c.want {
			t.Errorf("ParseKind(%q) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !KindProject.EarnsRevenue() || !KindProject.ConsumesLicense() {
		t.Error("project assignments must bill and consume licenses")
	}
	for _, k := range []Kind{KindFree, KindVacation, KindSick, KindOverhead} {
		if k.EarnsRevenue() {
			t.Errorf("%v must not earn revenue", k)
		}
		if k.ConsumesLicense() {
			t.Errorf("%v must not consume licenses", k)
		}
	}
	if !KindFree.CountsAsFree() {
		t.Error("free must count as free")
	}
	if KindVacation.CountsAsFree() {
		t.Error("vacation is not free capacity")
	}
}
