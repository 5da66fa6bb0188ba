package units

import "fmt"

// Temperature is a temperature unit. Providers deliver Celsius, so Celsius is
// the pivot for every conversion.
type Temperature int

const (
	Celsius Temperature = iota + 1
	Kelvin
	Fahrenheit
)

// WindSpeed is a wind speed unit, with metres per second as the pivot.
type WindSpeed int

const (
	MetersPerSecond WindSpeed = iota + 1
	MilesPerHour
	KilometersPerHour
)

const (
	kelvinOffset     = 273.15
	fahrenheitScale  = 1.8
	fahrenheitOffset = 32

	mphPerMeterSecond = 2.23694
	kmhPerMeterSecond = 3.6
)

func (t Temperature) String() string {
	switch t {
	case Celsius:
		return "°C"
	case Kelvin:
		return "K"
	case Fahrenheit:
		return "°F"
	default:
		return "unknown"
	}
}

func (w WindSpeed) String() string {
	switch w {
	case MetersPerSecond:
		return "m/s"
	case MilesPerHour:
		return "mph"
	case KilometersPerHour:
		return "km/h"
	default:
		return "unknown"
	}
}

// ConvertTemperature converts a value between temperature units.
func ConvertTemperature(value float64, from, to Temperature) (float64, error) {
	celsius, err := toCelsius(value, from)
	if err != nil {
		return 0, err
	}
	switch to {
	case Celsius:
		return celsius, nil
	case Kelvin:
		return celsius + kelvinOffset, nil
	case Fahrenheit:
		return celsius*fahrenheitScale + fahrenheitOffset, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit: %d", to)
	}
}

func toCelsius(value float64, from Temperature) (float64, error) {
	switch from {
	case Celsius:
		return value, nil
	case Kelvin:
		return value - kelvinOffset, nil
	case Fahrenheit:
		return (value - fahrenheitOffset) / fahrenheitScale, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit: %d", from)
	}
}

// ConvertWindSpeed converts a value between wind speed units.
func ConvertWindSpeed(value float64, from, to WindSpeed) (float64, error) {
	ms, err := toMetersPerSecond(value, from)
	if err != nil {
		return 0, err
	}
	switch to {
	case MetersPerSecond:
		return ms, nil
	case MilesPerHour:
		return ms * mphPerMeterSecond, nil
	case KilometersPerHour:
		return ms * kmhPerMeterSecond, nil
	default:
		return 0, fmt.Errorf("unknown wind speed unit: %d", to)
	}
}

func toMetersPerSecond(value float64, from WindSpeed) (float64, error) {
	switch from {
	case MetersPerSecond:
		return value, nil
	case MilesPerHour:
		return value / mphPerMeterSecond, nil
	case KilometersPerHour:
		return value / kmhPerMeterSecond, nil
	default:
		return 0, fmt.Errorf("unknown wind speed unit: %d", from)
	}
}
