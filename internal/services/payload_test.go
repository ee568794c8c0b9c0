package services

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDurationMinutes(t *testing.T) {
	num := func(s string) *json.Number { n := json.Number(s); return &n }

	cases := []struct {
		name string
		in   *json.Number
		want *float64
	}{
		{"nil", nil, nil},
		{"whole minutes", num("120"), ptr(2.0)},
		{"rounds to two decimals", num("100"), ptr(1.67)},
		{"fractional seconds", num("90.5"), ptr(1.51)},
		{"zero", num("0"), ptr(0.0)},
		{"garbage", num("abc"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := WorkOrderTaskItem{RealDurationSec: tc.in}
			got := item.DurationMinutes()
			switch {
			case got == nil && tc.want == nil:
			case got == nil || tc.want == nil:
				t.Errorf("got %v, want %v", got, tc.want)
			case *got != *tc.want:
				t.Errorf("got %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Run("nil and empty", func(t *testing.T) {
		if ParseTimestamp(nil) != nil {
			t.Error("nil input must parse to nil")
		}
		empty := ""
		if ParseTimestamp(&empty) != nil {
			t.Error("empty input must parse to nil")
		}
	})

	t.Run("utc converted to report timezone", func(t *testing.T) {
		in := "2024-03-01T12:00:00Z"
		got := ParseTimestamp(&in)
		if got == nil {
			t.Fatal("parse failed")
		}
		// São Paulo is UTC-3 in March.
		if got.Hour() != 9 {
			t.Errorf("hour = %d, want 9", got.Hour())
		}
		if !got.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("instant changed: %v", got)
		}
	})

	t.Run("explicit offset", func(t *testing.T) {
		in := "2024-03-01T12:00:00+00:00"
		if got := ParseTimestamp(&in); got == nil || got.Hour() != 9 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("naive treated as utc", func(t *testing.T) {
		in := "2024-03-01T12:00:00"
		if got := ParseTimestamp(&in); got == nil || got.Hour() != 9 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		in := "01/03/2024"
		if got := ParseTimestamp(&in); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestItemValid(t *testing.T) {
	if (&WorkOrderTaskItem{}).Valid() {
		t.Error("empty item must be invalid")
	}
	if (&WorkOrderTaskItem{Folio: "OS1"}).Valid() {
		t.Error("item without task id must be invalid")
	}
	if !(&WorkOrderTaskItem{Folio: "OS1", TaskID: 7}).Valid() {
		t.Error("item with both keys must be valid")
	}
}

func ptr[T any](v T) *T { return &v }
