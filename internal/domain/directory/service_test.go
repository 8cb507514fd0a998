package directory

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

func seedService(t *testing.T, n int) *Service {
	t.Helper()
	svc := NewService(NewDoctorRepoMem(), zerolog.Nop())
	ctx := context.Background()
	specialties := [][]string{
		{"Fever", "Cold"},
		{"Headache"},
		{"Cardiology"},
		{"Stomach Pain", "Flu"},
		{"Skin Rash"},
		{"Back Pain"},
	}
	for i := 0; i < n; i++ {
		d := &Doctor{
			Name:        "Dr. Test",
			City:        "Douala",
			Specialties: specialties[i%len(specialties)],
		}
		if err := svc.AddDoctor(ctx, d); err != nil {
			t.Fatalf("seed doctor: %v", err)
		}
	}
	return svc
}

func TestAddDoctor_Validation(t *testing.T) {
	svc := NewService(NewDoctorRepoMem(), zerolog.Nop())
	ctx := context.Background()

	err := svc.AddDoctor(ctx, &Doctor{Specialties: []string{"Fever"}})
	if err == nil {
		t.Error("expected error for missing name")
	}
	err = svc.AddDoctor(ctx, &Doctor{Name: "Dr. X"})
	if err == nil {
		t.Error("expected error for empty specialties")
	}
	err = svc.AddDoctor(ctx, &Doctor{Name: "Dr. X", Specialties: []string{"Fever"}, Coordinate: Coordinate{Latitude: 91}})
	if err == nil {
		t.Error("expected error for out-of-range latitude")
	}
	err = svc.AddDoctor(ctx, &Doctor{Name: "Dr. X", Specialties: []string{"Fever"}, Coordinate: Coordinate{Longitude: -181}})
	if err == nil {
		t.Error("expected error for out-of-range longitude")
	}
}

func TestDoctorsFor_OnlineAndSpecialtyMatch(t *testing.T) {
	svc := NewService(NewDoctorRepoMem(), zerolog.Nop())
	ctx := context.Background()

	online := &Doctor{Name: "Dr. On", City: "Douala", IsOnline: true, Specialties: []string{"Cardiology"}}
	offline := &Doctor{Name: "Dr. Off", City: "Douala", Specialties: []string{"Cardiology"}}
	for _, d := range []*Doctor{online, offline} {
		if err := svc.AddDoctor(ctx, d); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	// Case-insensitive substring match, offline doctors excluded.
	matched, err := svc.DoctorsFor(ctx, "cardio")
	if err != nil {
		t.Fatalf("doctorsFor: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != online.ID {
		t.Fatalf("expected exactly the online doctor, got %d", len(matched))
	}

	ok, err := svc.CanTreat(ctx, online.ID, "CARDIO")
	if err != nil || !ok {
		t.Errorf("expected online doctor can treat, got %v %v", ok, err)
	}
	ok, err = svc.CanTreat(ctx, offline.ID, "cardio")
	if err != nil || ok {
		t.Errorf("offline doctor must not treat, got %v %v", ok, err)
	}
}

func TestRefreshAvailability_Bounds(t *testing.T) {
	for _, total := range []int{1, 2, 4, 6} {
		svc := seedService(t, total)
		svc.SetRand(rand.New(rand.NewSource(42)))
		ctx := context.Background()

		maxOnline := total
		if maxOnline > 4 {
			maxOnline = 4
		}

		for tick := 0; tick < 50; tick++ {
			online, err := svc.RefreshAvailability(ctx)
			if err != nil {
				t.Fatalf("refresh: %v", err)
			}
			if len(online) < 1 || len(online) > maxOnline {
				t.Fatalf("total=%d tick=%d: online count %d outside [1,%d]", total, tick, len(online), maxOnline)
			}

			// onlineDoctors must agree with the reassignment immediately.
			current, err := svc.OnlineDoctors(ctx)
			if err != nil {
				t.Fatalf("onlineDoctors: %v", err)
			}
			if len(current) != len(online) {
				t.Fatalf("online view mismatch: %d vs %d", len(current), len(online))
			}
		}
	}
}

func TestRefreshAvailability_EmptyRoster(t *testing.T) {
	svc := NewService(NewDoctorRepoMem(), zerolog.Nop())
	online, err := svc.RefreshAvailability(context.Background())
	if err != nil {
		t.Fatalf("refresh on empty roster: %v", err)
	}
	if len(online) != 0 {
		t.Errorf("expected nobody online, got %d", len(online))
	}
}

func TestRefreshAvailability_NotifiesListeners(t *testing.T) {
	svc := seedService(t, 4)
	svc.SetRand(rand.New(rand.NewSource(7)))

	var got [][]*Doctor
	svc.AddListener(func(online []*Doctor) {
		got = append(got, online)
	})

	if _, err := svc.RefreshAvailability(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 listener call, got %d", len(got))
	}
	if len(got[0]) < 1 || len(got[0]) > 4 {
		t.Errorf("listener received %d online doctors", len(got[0]))
	}
}

func TestSeed_IdempotentOnNonEmptyRoster(t *testing.T) {
	repo := NewDoctorRepoMem()
	ctx := context.Background()

	if err := Seed(ctx, repo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	n, _ := repo.Count(ctx)
	if n != 6 {
		t.Fatalf("expected 6 sample doctors, got %d", n)
	}

	if err := Seed(ctx, repo); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	n, _ = repo.Count(ctx)
	if n != 6 {
		t.Errorf("seed must not duplicate, got %d", n)
	}
}
