package chain

import "testing"

func TestHeightLess(t *testing.T) {
	cases := []struct {
		a, b Height
		want bool
	}{
		{Height{0, 1}, Height{0, 2}, true},
		{Height{0, 2}, Height{0, 1}, false},
		{Height{0, 5}, Height{1, 0}, true},
		{Height{1, 0}, Height{0, 5}, false},
		{Height{2, 3}, Height{2, 3}, false},
	}

	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Fatalf("%+v.Less(%+v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
