package format

import "testing"

func TestCurrency(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{2_500_000_000, "$2.5B"},
		{1_500_000, "$1.5M"},
		{150_000, "$150K"},
		{950, "$950"},
		{0, "$0"},
	}
	for _, tc := range cases {
		if got := Currency(tc.amount); got != tc.want {
			t.Errorf("Currency(%d) = %s, want %s", tc.amount, got, tc.want)
		}
	}
}

func TestCurrencyFull(t *testing.T) {
	if got := CurrencyFull(1_250_000); got != "$1,250,000" {
		t.Fatalf("got %s", got)
	}
	if got := CurrencyFull(999); got != "$999" {
		t.Fatalf("got %s", got)
	}
}

func TestEIN(t *testing.T) {
	if got := EIN("842108762"); got != "84-2108762" {
		t.Fatalf("got %s", got)
	}
	if got := EIN("84-2108762"); got != "84-2108762" {
		t.Fatalf("got %s", got)
	}
	if got := EIN("12345"); got != "12345" {
		t.Fatalf("short EIN should pass through, got %s", got)
	}
}

func TestTaxPeriod(t *testing.T) {
	if got := TaxPeriod(202312); got != "Dec 2023" {
		t.Fatalf("got %s", got)
	}
	if got := TaxPeriod(2023); got != "2023" {
		t.Fatalf("non-6-digit period should pass through, got %s", got)
	}
}

func TestFormTypeName(t *testing.T) {
	if FormTypeName(2) != "990-PF" {
		t.Fatal("form type 2 should be 990-PF")
	}
	if FormTypeName(9) != "Unknown" {
		t.Fatal("unknown form type")
	}
}
