package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/cli"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Welcome(t *testing.T) {
	out := &bytes.Buffer{}
	p := cli.NewPrompter(strings.NewReader("\n"), out)

	require.NoError(t, p.Welcome())

	printed := out.String()
	assert.Contains(t, printed, "Welcome to the Weather app.")
	// Blank line between the banner and the continue prompt.
	assert.Contains(t, printed, "world!\n\nPress Enter to continue...")
	assert.NotContains(t, printed, "world!\n\n\n")
}

func TestPrompter_City(t *testing.T) {
	out := &bytes.Buffer{}
	p := cli.NewPrompter(strings.NewReader("  Lviv \n"), out)

	city, err := p.City()
	require.NoError(t, err)
	assert.Equal(t, "Lviv", city)
}

func TestPrompter_City_RetriesOnEmpty(t *testing.T) {
	out := &bytes.Buffer{}
	p := cli.NewPrompter(strings.NewReader("\n\nKyiv\n"), out)

	city, err := p.City()
	require.NoError(t, err)
	assert.Equal(t, "Kyiv", city)
	assert.Contains(t, out.String(), "City name cannot be empty.")
}

func TestPrompter_TemperatureUnit(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  units.Temperature
	}{
		{name: "empty selects default", input: "\n", want: units.Celsius},
		{name: "kelvin", input: "2\n", want: units.Kelvin},
		{name: "fahrenheit", input: "3\n", want: units.Fahrenheit},
		{name: "junk then valid", input: "abc\n3\n", want: units.Fahrenheit},
		{name: "out of range then valid", input: "7\n2\n", want: units.Kelvin},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := cli.NewPrompter(strings.NewReader(tc.input), &bytes.Buffer{})

			got, err := p.TemperatureUnit()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrompter_TemperatureUnit_ReprintsHints(t *testing.T) {
	out := &bytes.Buffer{}
	p := cli.NewPrompter(strings.NewReader("abc\n9\n1\n"), out)

	_, err := p.TemperatureUnit()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Please input a valid option number.")
	assert.Contains(t, out.String(), "Input out of range.")
}

func TestPrompter_WindSpeedUnit(t *testing.T) {
	p := cli.NewPrompter(strings.NewReader("2\n"), &bytes.Buffer{})

	got, err := p.WindSpeedUnit()
	require.NoError(t, err)
	assert.Equal(t, units.MilesPerHour, got)
}

func TestPrompter_EOF(t *testing.T) {
	p := cli.NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.City()
	assert.Error(t, err)
}

func TestRenderWeather_Fahrenheit(t *testing.T) {
	out := &bytes.Buffer{}

	data := models.WeatherData{
		City:        "London",
		Temperature: 20,
		Humidity:    50,
		WindSpeed:   5,
		Condition:   "Scattered clouds",
	}

	err := cli.RenderWeather(out, data, units.Fahrenheit, units.MilesPerHour)
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "London")
	assert.Contains(t, rendered, "68.0 °F")
	assert.Contains(t, rendered, "50%")
	assert.Contains(t, rendered, "11.2 mph")
	assert.Contains(t, rendered, "Scattered clouds")
}

func TestRenderWeather_Defaults(t *testing.T) {
	out := &bytes.Buffer{}

	data := models.WeatherData{
		City:        "Kyiv",
		Temperature: -3.5,
		Humidity:    81,
		WindSpeed:   4.2,
		Condition:   "Light snow",
	}

	err := cli.RenderWeather(out, data, units.Celsius, units.MetersPerSecond)
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "-3.5 °C")
	assert.Contains(t, rendered, "4.2 m/s")
}

func TestRenderWeather_UnknownUnit(t *testing.T) {
	err := cli.RenderWeather(&bytes.Buffer{}, models.WeatherData{}, units.Temperature(42), units.MetersPerSecond)
	assert.Error(t, err)
}
