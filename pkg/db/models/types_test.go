package models

import "testing"

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"red", "green", "blue"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned StringList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scanned) != 3 || scanned[0] != "red" || scanned[2] != "blue" {
		t.Fatalf("unexpected round trip result %v", scanned)
	}
}

func TestStringListNilValue(t *testing.T) {
	var list StringList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value != "[]" {
		t.Fatalf("expected empty array literal, got %v", value)
	}
}

func TestStringListScanMalformedYieldsNil(t *testing.T) {
	var list StringList
	if err := list.Scan("{not json"); err != nil {
		t.Fatalf("Scan should tolerate malformed payloads: %v", err)
	}
	if list != nil {
		t.Fatalf("expected nil list, got %v", list)
	}
}

func TestStringListContains(t *testing.T) {
	list := StringList{"s", "m", "l"}
	if !list.Contains("m") {
		t.Fatalf("expected m to be present")
	}
	if list.Contains("xl") {
		t.Fatalf("did not expect xl")
	}
}
