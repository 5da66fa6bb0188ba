package cli

import (
	"fmt"
	"io"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/units"
	"github.com/olekukonko/tablewriter"
)

// RenderWeather converts the provider values (Celsius, m/s) to the requested
// units and prints a single-row table.
func RenderWeather(
	w io.Writer,
	data models.WeatherData,
	tempUnit units.Temperature,
	windUnit units.WindSpeed,
) error {
	temperature, err := units.ConvertTemperature(data.Temperature, units.Celsius, tempUnit)
	if err != nil {
		return err
	}
	windSpeed, err := units.ConvertWindSpeed(data.WindSpeed, units.MetersPerSecond, windUnit)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"City", "Temperature", "Humidity", "Wind Speed", "Description"})
	table.Append([]string{
		data.City,
		fmt.Sprintf("%.1f %s", temperature, tempUnit),
		fmt.Sprintf("%.0f%%", data.Humidity),
		fmt.Sprintf("%.1f %s", windSpeed, windUnit),
		data.Condition,
	})
	table.Render()

	return nil
}
