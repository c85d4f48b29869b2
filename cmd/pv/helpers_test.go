package main

import (
	"reflect"
	"testing"
)

func TestFormatSizes(t *testing.T) {
	got, err := formatSizes([]string{"0", "1536", "1048576"})
	if err != nil {
		t.Fatalf("formatSizes() error = %v", err)
	}
	want := []SizeResult{
		{Bytes: 0, Size: "0 Bytes"},
		{Bytes: 1536, Size: "1.5 KB"},
		{Bytes: 1048576, Size: "1 MB"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("formatSizes() = %+v, want %+v", got, want)
	}
}

func TestFormatSizes_Invalid(t *testing.T) {
	if _, err := formatSizes([]string{"12", "lots"}); err == nil {
		t.Error("formatSizes() should reject non-numeric input")
	}
}
