package seed

import (
	"testing"
	"time"

	"loremaker-codex-be/internal/entity"
)

func TestNewDeterministic(t *testing.T) {
	a := New("ava|2025-01-01")
	b := New("ava|2025-01-01")
	for i := 0; i < 64; i++ {
		x, y := a(), b()
		if x != y {
			t.Fatalf("draw %d diverged: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, x)
		}
	}
}

func TestNewSeedSensitivity(t *testing.T) {
	a, b := New("ava|2025-01-01"), New("ava|2025-01-02")
	same := 0
	for i := 0; i < 16; i++ {
		if a() == b() {
			same++
		}
	}
	if same == 16 {
		t.Fatal("different day keys produced identical streams")
	}
}

func TestDayKey(t *testing.T) {
	// 23:30 in UTC-5 is already the next UTC day.
	loc := time.FixedZone("UTC-5", -5*3600)
	got := DayKey(time.Date(2024, 12, 31, 23, 30, 0, 0, loc))
	if got != "2025-01-01" {
		t.Errorf("DayKey = %q, want 2025-01-01", got)
	}
}

func TestDailyIntBounds(t *testing.T) {
	for day := 1; day <= 28; day++ {
		key := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		n := DailyInt("ava|Flight", key, 3, 9)
		if n < 3 || n > 9 {
			t.Fatalf("DailyInt on %s = %d, out of [3,9]", key, n)
		}
	}
}

func TestDailyIntDegenerateRange(t *testing.T) {
	if n := DailyInt("x", "2025-01-01", 5, 5); n != 5 {
		t.Errorf("DailyInt single-value range = %d, want 5", n)
	}
}

func TestRebalancePowers(t *testing.T) {
	powers := []entity.Power{
		{Name: "Flight", Level: 8},
		{Name: "Mystery", Level: 0},
		{Name: "Spark", Level: 1},
	}

	day1 := RebalancePowers(powers, "ava", "2025-01-01")
	again := RebalancePowers(powers, "ava", "2025-01-01")

	if len(day1) != len(powers) {
		t.Fatalf("got %d powers, want %d", len(day1), len(powers))
	}
	for i := range day1 {
		if day1[i].Name != powers[i].Name {
			t.Errorf("order changed at %d: %q", i, day1[i].Name)
		}
		if day1[i] != again[i] {
			t.Errorf("same day not deterministic at %d", i)
		}
		if day1[i].Level < 0 || day1[i].Level > 10 {
			t.Errorf("%s level %d out of [0,10]", day1[i].Name, day1[i].Level)
		}
	}

	// Anchored draw stays within two points of the raw level.
	if day1[0].Level < 6 || day1[0].Level > 10 {
		t.Errorf("Flight(8) seeded to %d, want [6,10]", day1[0].Level)
	}
	// Unrated powers draw from [3,9].
	if day1[1].Level < 3 || day1[1].Level > 9 {
		t.Errorf("Mystery(0) seeded to %d, want [3,9]", day1[1].Level)
	}
	// A low raw level clamps to the [3,10] floor.
	if day1[2].Level != 3 {
		t.Errorf("Spark(1) seeded to %d, want 3", day1[2].Level)
	}
}

func TestCharacterSeed(t *testing.T) {
	if got := CharacterSeed(&entity.Character{Id: "ava", Slug: "ava-2", Name: "Ava"}); got != "ava" {
		t.Errorf("CharacterSeed = %q, want id", got)
	}
	if got := CharacterSeed(&entity.Character{Name: "Ava"}); got != "Ava" {
		t.Errorf("CharacterSeed = %q, want name", got)
	}
}
