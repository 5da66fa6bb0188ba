package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/units"
)

const (
	welcomeBanner = "Welcome to the Weather app.\n" +
		"Find out what the weather is like in your city or anywhere else in the world!\n\n"

	temperaturePrompt = "Select temperature unit. " +
		"You can press Enter to choose the default as indicated:\n" +
		"1) Celsius (default)\n2) Kelvin\n3) Fahrenheit"

	windSpeedPrompt = "Select wind speed unit:\n" +
		"1) Metre per second (default)\n2) Miles per hour\n3) Kilometre per hour"

	optionCount = 3
)

// Prompter drives the interactive flow: city name first, then one numbered
// selection per unit. Empty input picks the default; anything else is asked
// again.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Welcome() error {
	fmt.Fprint(p.out, welcomeBanner)
	fmt.Fprint(p.out, "Press Enter to continue...")
	_, err := p.readLine()
	return err
}

func (p *Prompter) City() (string, error) {
	for {
		fmt.Fprint(p.out, "Enter the city name: ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if city := strings.TrimSpace(line); city != "" {
			return city, nil
		}
		fmt.Fprintln(p.out, "City name cannot be empty.")
	}
}

func (p *Prompter) TemperatureUnit() (units.Temperature, error) {
	choice, err := p.selectOption(temperaturePrompt)
	if err != nil {
		return 0, err
	}
	return units.Temperature(choice), nil
}

func (p *Prompter) WindSpeedUnit() (units.WindSpeed, error) {
	choice, err := p.selectOption(windSpeedPrompt)
	if err != nil {
		return 0, err
	}
	return units.WindSpeed(choice), nil
}

func (p *Prompter) selectOption(prompt string) (int, error) {
	for {
		fmt.Fprintln(p.out, prompt)
		fmt.Fprint(p.out, "Input either 1, 2 or 3: ")

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		input := strings.TrimSpace(line)

		if input == "" {
			return 1, nil
		}

		choice, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(p.out, "Please input a valid option number.")
			continue
		}
		if choice < 1 || choice > optionCount {
			fmt.Fprintln(p.out, "Input out of range. Please input either 1, 2 or 3")
			continue
		}
		return choice, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	// A final unterminated line is still usable input.
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
