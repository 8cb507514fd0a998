package consult

import (
	"fmt"
	"strings"
	"unicode"
)

// agreementKeywords are the tokens accepted as consent to the prescription
// offer.
var agreementKeywords = map[string]struct{}{
	"ok": {}, "yes": {}, "sure": {}, "yeah": {}, "yep": {}, "y": {}, "okay": {}, "okey": {},
}

// tokenize splits the reply on every non-alphanumeric rune.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// agreesToPrescription reports whether any token of the reply is an
// agreement keyword.
func agreesToPrescription(reply string) bool {
	for _, tok := range tokenize(reply) {
		if _, ok := agreementKeywords[tok]; ok {
			return true
		}
	}
	return false
}

func openingLine(illness string) string {
	return fmt.Sprintf("Hello! I see you selected %s. Can you describe your main symptoms?", illness)
}

func durationLine() string {
	return "Thanks for sharing. How long have you had these symptoms?"
}

func assessmentLine(illness string) string {
	return fmt.Sprintf("Based on what you've told me, you may have %s. It's important to visit the hospital for proper tests.", strings.ToLower(illness))
}

func offerLine() string {
	return "In the meantime, I can prescribe some basic medications to help relieve your symptoms. Do you want me to?"
}

func closingLine(hospitalName string) string {
	if hospitalName == "" {
		hospitalName = "the hospital"
	}
	return fmt.Sprintf("Remember to visit %s for a thorough check-up.", hospitalName)
}

func acknowledgementLine(med string) string {
	return "Patient acknowledges: " + med
}

func confirmationLine(meds []string) string {
	return fmt.Sprintf("Great! %s should help with your symptoms. Take as directed.", strings.Join(meds, ", "))
}
