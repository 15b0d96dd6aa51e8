package annotation

import (
	"testing"

	"github.com/forecal/forecal/pkg/weather"
	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "Plain title is untouched",
			title: "Standup",
			want:  "Standup",
		},
		{
			name:  "Previous annotation is removed",
			title: "Standup (sunny, 18°C)",
			want:  "Standup",
		},
		{
			name:  "Annotation with emoji is removed",
			title: "Standup (sunny, 18°C) ☀️",
			want:  "Standup",
		},
		{
			name:  "Unavailable placeholder is removed",
			title: "Standup (weather unavailable)",
			want:  "Standup",
		},
		{
			name:  "Nested parens are removed completely",
			title: "Planning ((quarterly) review)",
			want:  "Planning",
		},
		{
			name:  "Parens in the middle leave surrounding text",
			title: "Lunch (optional) with Bob",
			want:  "Lunch  with Bob",
		},
		{
			name:  "Unbalanced paren is kept",
			title: "Demo (dry run",
			want:  "Demo (dry run",
		},
		{
			name:  "Emoji-only title becomes empty",
			title: "🌧️⛅",
			want:  "",
		},
		{
			name:  "Surrounding whitespace is trimmed",
			title: "  Retro (cloudy, 12°C)  ",
			want:  "Retro",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Strip(tc.title))
		})
	}
}

func TestStrip_Idempotent(t *testing.T) {
	titles := []string{
		"Standup",
		"Standup (sunny, 18°C) ☀️",
		"Planning ((quarterly) review)",
		"Demo (dry run",
		") stray paren (",
		"  padded  ",
		"🚀 Launch (rain showers, 9°C) 🌧️",
		"",
	}
	for _, title := range titles {
		once := Strip(title)
		assert.Equal(t, once, Strip(once), "strip is not idempotent for %q", title)
	}
}

func TestCompose(t *testing.T) {
	got := Compose("Standup", weather.Descriptor{Condition: "cloudy", TemperatureC: 20})
	assert.Equal(t, "Standup (cloudy, 20°C)", got)

	got = Compose("Standup", weather.Unavailable)
	assert.Equal(t, "Standup (weather unavailable)", got)

	// Negative temperatures keep their sign.
	got = Compose("Ski trip", weather.Descriptor{Condition: "snow", TemperatureC: -3})
	assert.Equal(t, "Ski trip (snow, -3°C)", got)
}

func TestStripCompose_RoundTrip(t *testing.T) {
	cleanTitles := []string{
		"Standup",
		"Lunch with Bob",
		"1:1 Maria",
		"Quarterly review",
	}
	descriptors := []weather.Descriptor{
		{Condition: "cloudy", TemperatureC: 20},
		{Condition: "thunderstorm with hail", TemperatureC: -1},
		weather.Unavailable,
	}
	for _, clean := range cleanTitles {
		for _, d := range descriptors {
			assert.Equal(t, clean, Strip(Compose(clean, d)))
		}
	}
}

func TestCompose_SpecExample(t *testing.T) {
	// "Standup (sunny, 18°C) ☀️" with a new cloudy/20 reading becomes
	// "Standup (cloudy, 20°C)".
	clean := Strip("Standup (sunny, 18°C) ☀️")
	assert.Equal(t, "Standup", clean)
	assert.Equal(t, "Standup (cloudy, 20°C)", Compose(clean, weather.Descriptor{Condition: "cloudy", TemperatureC: 20}))
}
