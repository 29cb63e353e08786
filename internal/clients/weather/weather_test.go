package weather

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		id   int
		want string
	}{
		{200, CodeThunderstorm},
		{212, CodeThunder},
		{301, CodeSunnyRain},
		{500, CodeSunnyRain},
		{522, CodeRainy},
		{600, CodeRainy},
		{741, CodeCloudy},
		{800, CodeSunny},
		{801, CodeSunnyClouds},
		{803, CodeCloudy},
		{804, CodeCloudy},
	}
	for _, tc := range cases {
		code, condition := classify(tc.id, "")
		if code != tc.want {
			t.Fatalf("classify(%d) = %s, want %s", tc.id, code, tc.want)
		}
		if condition == "" {
			t.Fatalf("classify(%d): empty condition label", tc.id)
		}
	}
}

func TestSunAvailable(t *testing.T) {
	sunny := []string{CodeSunny, CodeSunnyClouds, CodeSunnyRain}
	for _, code := range sunny {
		if !SunAvailable(code) {
			t.Fatalf("%s should have sun available", code)
		}
	}
	dark := []string{CodeCloudy, CodeRainy, CodeThunder, CodeThunderstorm}
	for _, code := range dark {
		if SunAvailable(code) {
			t.Fatalf("%s should not have sun available", code)
		}
	}
}
