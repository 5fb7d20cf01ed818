package commands

import (
	"strings"
	"testing"
)

func TestReadDealerCSVWithHeader(t *testing.T) {
	in := "dealer_name,dealer_code\nAl Amal Cars,D123\n , D9\nMasr Auto,D150\n"

	got, err := readDealerCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d dealers, want 2", len(got))
	}
	if got[0].Code != "D123" || got[0].Name != "Al Amal Cars" {
		t.Errorf("got %+v", got[0])
	}
}

func TestReadDealerCSVWithoutHeader(t *testing.T) {
	got, err := readDealerCSV(strings.NewReader("D1,معرض النور\nD2\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].Name != "معرض النور" {
		t.Errorf("got %+v", got)
	}
}

func TestReadDealerCSVEmpty(t *testing.T) {
	if _, err := readDealerCSV(strings.NewReader("")); err == nil {
		t.Error("expected an error for an empty file")
	}
}
