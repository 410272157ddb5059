package main

import "testing"

func TestFarmTurbinesRange(t *testing.T) {
	for _, max := range []int{-5, 0, 1, 9, 10, 11, 100} {
		want := max
		if want < 10 {
			want = 10
		}
		for i := 0; i < 200; i++ {
			n := farmTurbines(max)
			if n < 10 || n > want {
				t.Fatalf("farmTurbines(%d) = %d, want within [10, %d]", max, n, want)
			}
		}
	}
}
