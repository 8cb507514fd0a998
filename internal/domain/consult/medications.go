package consult

import "strings"

// medicationsByIllness maps a lowercased illness label to the basic
// medication options a doctor can offer for it.
var medicationsByIllness = map[string][]string{
	"fever":        {"Paracetamol 500mg (every 6–8 hours)", "Ibuprofen 200mg (after meals)", "Adequate Rest & Hydration"},
	"cough":        {"Cough Syrup (Dextromethorphan)", "Honey & Lemon Tea", "Steam Inhalation"},
	"headache":     {"Paracetamol 500mg", "Ibuprofen 400mg", "Rest in Quiet/Dark Room"},
	"skin rash":    {"Topical Hydrocortisone Cream", "Antihistamines (Cetirizine)", "Keep Skin Moisturized"},
	"malaria":      {"Artemisinin-based Combination Therapy (ACT)", "Paracetamol for fever", "Adequate Hydration"},
	"typhoid":      {"Ciprofloxacin 500mg (as prescribed)", "Amoxicillin", "ORS Solution for Rehydration"},
	"diabetes":     {"Metformin 500mg", "Glipizide (oral)", "Low-sugar Diet & Exercise"},
	"hypertension": {"Amlodipine 5mg", "Losartan 50mg", "Low-salt Diet"},
	"asthma":       {"Salbutamol Inhaler", "Steroid Inhaler (Budesonide)", "Avoid Triggers"},
	"flu":          {"Paracetamol", "Vitamin C Supplements", "Rest & Warm Fluids"},
	"cold":         {"Decongestant (Pseudoephedrine)", "Warm Fluids", "Vitamin C Lozenges"},
	"stomach ache": {"Antacids", "Omeprazole 20mg", "Plenty of Water"},
	"diarrhea":     {"ORS Solution", "Metronidazole (if bacterial)", "Probiotics"},
	"constipation": {"Laxatives (Lactulose)", "High-fiber Diet", "Adequate Water Intake"},
	"allergies":    {"Antihistamines (Loratadine)", "Nasal Spray", "Avoid Allergens"},
	"covid-19":     {"Paracetamol for Fever", "Zinc Supplements", "Rest & Isolation"},
	"depression":   {"SSRIs (Fluoxetine)", "Therapy Sessions", "Exercise & Social Support"},
	"anxiety":      {"Benzodiazepines (as prescribed)", "Cognitive Behavioral Therapy (CBT)", "Relaxation Techniques"},
	"insomnia":     {"Melatonin Supplements", "Sleep Hygiene", "Avoid Caffeine at Night"},
}

// MedicationsFor returns the medication options for an illness, or nil
// when none are known. Lookup is case-insensitive.
func MedicationsFor(illness string) []string {
	meds, ok := medicationsByIllness[strings.ToLower(strings.TrimSpace(illness))]
	if !ok {
		return nil
	}
	out := make([]string, len(meds))
	copy(out, meds)
	return out
}
