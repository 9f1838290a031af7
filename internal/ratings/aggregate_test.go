package ratings

import (
	"fmt"
	"testing"
)

func TestTripleAverage(t *testing.T) {
	cases := []struct {
		name   string
		triple Triple
		want   float64
	}{
		{"all fives", Triple{Price: 5, Time: 5, Quality: 5}, 5},
		{"mixed", Triple{Price: 5, Time: 4, Quality: 3}, 4},
		{"repeating third", Triple{Price: 5, Time: 5, Quality: 4}, 4.67},
		{"all ones", Triple{Price: 1, Time: 1, Quality: 1}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.triple.Average()
			if err != nil {
				t.Fatalf("average: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestTripleAverageStaysInBounds(t *testing.T) {
	for price := MinScore; price <= MaxScore; price++ {
		for tm := MinScore; tm <= MaxScore; tm++ {
			for quality := MinScore; quality <= MaxScore; quality++ {
				triple := Triple{Price: price, Time: tm, Quality: quality}
				got, err := triple.Average()
				if err != nil {
					t.Fatalf("average of %+v: %v", triple, err)
				}
				if got < MinScore || got > MaxScore {
					t.Fatalf("average of %+v out of bounds: %v", triple, got)
				}
			}
		}
	}
}

func TestTripleAverageRejectsIncomplete(t *testing.T) {
	cases := []Triple{
		{},
		{Price: 5},
		{Price: 5, Time: 4},
		{Price: 5, Time: 4, Quality: 0},
		{Price: 6, Time: 4, Quality: 3},
		{Price: 5, Time: -1, Quality: 3},
	}

	for i, triple := range cases {
		if _, err := triple.Average(); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, triple)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.666666, 4.67},
		{4.664, 4.66},
		{4.665, 4.67},
		{0, 0},
		{5, 5},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v): expected %v got %v", tc.in, tc.want, got)
		}
	}
}

func TestFormatRating(t *testing.T) {
	cases := []struct {
		rating float64
		count  int64
		want   string
	}{
		{0, 0, "Not rated yet"},
		{0, 3, "Not rated yet"},
		{4, 0, "Not rated yet"},
		{4, 1, "4 (1 rating)"},
		{4.67, 3, "4.67 (3 ratings)"},
		{3.5, 2, "3.5 (2 ratings)"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v_%d", tc.rating, tc.count), func(t *testing.T) {
			if got := FormatRating(tc.rating, tc.count); got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}
