package service

import "testing"

func TestDecideAlertAction(t *testing.T) {
	cases := []struct {
		name    string
		before  string
		after   string
		minimum string
		want    alertAction
	}{
		{"decrease below minimum", "10", "4", "5", alertCreate},
		{"decrease to exactly minimum", "10", "5", "5", alertCreate},
		{"decrease staying above minimum", "10", "6", "5", alertNone},
		{"decrease while already below minimum", "4", "2", "5", alertCreate},
		{"decrease to zero", "2", "0", "5", alertCreate},
		{"increase above minimum", "4", "7", "5", alertResolve},
		{"increase to exactly minimum", "2", "5", "5", alertNone},
		{"increase staying below minimum", "1", "3", "5", alertNone},
		{"unchanged at a low level", "3", "3", "5", alertNone},
		{"unchanged at a healthy level", "9", "9", "5", alertNone},
		{"zero minimum alerts only at zero", "3", "0", "0", alertCreate},
		{"zero minimum decrease above zero", "3", "1", "0", alertNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decideAlertAction(dec(t, tc.before), dec(t, tc.after), dec(t, tc.minimum))
			if got != tc.want {
				t.Fatalf("decideAlertAction(%s, %s, %s) = %d, want %d",
					tc.before, tc.after, tc.minimum, got, tc.want)
			}
		})
	}
}
