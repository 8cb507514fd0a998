package pharmacy

import "strings"

// Catalog answers lookups against the fixed medicine list.
type Catalog struct {
	medicines []Medicine
	byName    map[string]*Medicine
}

// NewCatalog builds the catalog from the built-in medicine list.
func NewCatalog() *Catalog {
	meds := defaultMedicines()
	c := &Catalog{medicines: meds, byName: make(map[string]*Medicine, len(meds))}
	for i := range meds {
		c.byName[strings.ToLower(meds[i].Name)] = &meds[i]
	}
	return c
}

// List returns the full catalog in its fixed order.
func (c *Catalog) List() []Medicine {
	out := make([]Medicine, len(c.medicines))
	copy(out, c.medicines)
	return out
}

// Get looks up a medicine by name, case-insensitively.
func (c *Catalog) Get(name string) (Medicine, error) {
	m, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Medicine{}, ErrNotFound
	}
	return *m, nil
}

// QuoteFor prices a quantity of one medicine against available stock.
func (c *Catalog) QuoteFor(name string, quantity int) (Quote, error) {
	if quantity <= 0 {
		return Quote{}, ErrValidation
	}
	m, err := c.Get(name)
	if err != nil {
		return Quote{}, err
	}
	if quantity > m.Stock {
		return Quote{}, ErrInsufficientStock
	}
	return Quote{
		Medicine:  m,
		Quantity:  quantity,
		TotalCost: float64(quantity) * m.UnitPrice,
	}, nil
}

func defaultMedicines() []Medicine {
	return []Medicine{
		{Name: "Paracetamol", Description: "Pain relief and fever reducer.", UnitPrice: 2.50, Stock: 50},
		{Name: "Ibuprofen", Description: "Anti-inflammatory and pain relief.", UnitPrice: 3.00, Stock: 40},
		{Name: "Amoxicillin", Description: "Antibiotic for bacterial infections.", UnitPrice: 8.00, Stock: 30},
		{Name: "Cetirizine", Description: "Relieves allergy symptoms.", UnitPrice: 4.50, Stock: 25},
		{Name: "Vitamin C", Description: "Boosts immune system.", UnitPrice: 6.00, Stock: 60},
		{Name: "Azithromycin", Description: "Used to treat bacterial infections.", UnitPrice: 12.00, Stock: 18},
		{Name: "Metformin", Description: "Helps control blood sugar.", UnitPrice: 10.00, Stock: 22},
		{Name: "Amlodipine", Description: "Treats high blood pressure.", UnitPrice: 9.50, Stock: 35},
		{Name: "Losartan", Description: "Used for hypertension treatment.", UnitPrice: 11.00, Stock: 28},
		{Name: "Atorvastatin", Description: "Lowers cholesterol levels.", UnitPrice: 13.00, Stock: 32},
		{Name: "Omeprazole", Description: "Reduces stomach acid.", UnitPrice: 7.00, Stock: 45},
		{Name: "Loratadine", Description: "Antihistamine for allergies.", UnitPrice: 5.50, Stock: 40},
		{Name: "Prednisone", Description: "Reduces inflammation.", UnitPrice: 15.00, Stock: 20},
		{Name: "Hydroxychloroquine", Description: "Used for malaria and autoimmune conditions.", UnitPrice: 20.00, Stock: 12},
		{Name: "Clarithromycin", Description: "Macrolide antibiotic.", UnitPrice: 14.00, Stock: 17},
		{Name: "Salbutamol", Description: "Relieves asthma symptoms.", UnitPrice: 8.50, Stock: 33},
		{Name: "Folic Acid", Description: "Supports pregnancy health.", UnitPrice: 4.00, Stock: 55},
		{Name: "Zinc Sulphate", Description: "Boosts immunity.", UnitPrice: 5.00, Stock: 48},
		{Name: "Doxycycline", Description: "Antibiotic for infections.", UnitPrice: 9.00, Stock: 30},
		{Name: "Insulin", Description: "Manages diabetes.", UnitPrice: 25.00, Stock: 15},
	}
}
