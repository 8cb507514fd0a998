package directory

import "context"

// Seed populates an empty roster with the sample doctors. A non-empty
// roster is left untouched.
func Seed(ctx context.Context, repo DoctorRepository) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	sample := []Doctor{
		{
			Name:         "Dr. Javis",
			HospitalName: "Douala General Hospital",
			City:         "Douala",
			Specialties:  []string{"Fever", "Cold", "Flu"},
			Coordinate:   Coordinate{Latitude: 4.05, Longitude: 9.75},
		},
		{
			Name:         "Dr. Amina",
			HospitalName: "Yaoundé Central",
			City:         "Yaoundé",
			Specialties:  []string{"Headache", "Allergy"},
			Coordinate:   Coordinate{Latitude: 3.87, Longitude: 11.52},
		},
		{
			Name:         "Dr. Samuel",
			HospitalName: "Bamenda Clinic",
			City:         "Bamenda",
			Specialties:  []string{"Stomach Pain", "Cold", "Flu"},
			Coordinate:   Coordinate{Latitude: 5.96, Longitude: 10.15},
		},
		{
			Name:         "Dr. Grace",
			HospitalName: "Kribi Health Center",
			City:         "Kribi",
			Specialties:  []string{"Skin Rash", "Fever"},
			Coordinate:   Coordinate{Latitude: 2.95, Longitude: 9.91},
		},
		{
			Name:         "Dr. Alice Smith",
			Phone:        "679093234",
			HospitalName: "Buea Regional Hospital",
			City:         "Buea",
			IsOnline:     true,
			Specialties:  []string{"Fever", "Cough"},
			Coordinate:   Coordinate{Latitude: 4.1482, Longitude: 9.23653},
		},
		{
			Name:         "Dr. James",
			Phone:        "645321276",
			HospitalName: "Saint Luke's Medical Center",
			City:         "Buea",
			IsOnline:     true,
			Specialties:  []string{"Headache", "Back Pain"},
			Coordinate:   Coordinate{Latitude: 4.165686, Longitude: 9.273408},
		},
	}
	for i := range sample {
		if err := repo.Add(ctx, &sample[i]); err != nil {
			return err
		}
	}
	return nil
}
