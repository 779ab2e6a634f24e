package datastore

import "testing"

func TestParseListOptions(t *testing.T) {
	cases := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultLimit, 0},
		{"explicit page", 50, 100, 50, 100},
		{"negative limit lifts the cap", -1, 100, -1, 0},
		{"negative offset resets", 50, -10, 50, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := ParseListOptions(c.limit, c.offset)
			if o.Limit != c.wantLimit || o.Offset != c.wantOffset {
				t.Errorf("got {%d %d}, want {%d %d}", o.Limit, o.Offset, c.wantLimit, c.wantOffset)
			}
		})
	}
}
