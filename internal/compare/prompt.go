package compare

import "fmt"

// Summary is the slice of catalog data the assistant is shown for one
// bike. Prices are formatted from cents into a currency string before
// being placed in the prompt.
type Summary struct {
	Brand             string
	Model             string
	MileageKmpl       float64
	PricePerHourCents int64
}

const promptTemplate = `You are an agent of a Bike Rental System called WheelStreet!
Your duty is to compare the 2 bikes given to you for the customers to help them with their rental choice.
Compare the following two bikes:

Bike 1:
Brand: %s
Model: %s
Mileage: %.2f kmpl
Rental price per hour: Rs. %s

Bike 2:
Brand: %s
Model: %s
Mileage: %.2f kmpl
Rental price per hour: Rs. %s

Please provide a brief but precise and impartial comparison of these two bikes based on the aspects listed above like a concluding summary.
It should not exceed 300 words.
Do not give any headings or any other formatting to the text.`

// buildPrompt renders the comparison prompt for two bike summaries.
func buildPrompt(a, b Summary) string {
	return fmt.Sprintf(promptTemplate,
		a.Brand, a.Model, a.MileageKmpl, formatCents(a.PricePerHourCents),
		b.Brand, b.Model, b.MileageKmpl, formatCents(b.PricePerHourCents))
}

// formatCents renders integer cents as a decimal currency string,
// e.g. 12550 -> "125.50".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
