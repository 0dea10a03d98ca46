package services

import (
	"context"
	"sync"
	"testing"

	"fundledger/internal/config"
	"fundledger/internal/models"
	"fundledger/internal/testutil"
)

func TestGetPeriodFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds_defaults_on_first_read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, nil)
		org := testutil.CreateTestOrganization(t, db)

		funds, err := svc.GetPeriodFunds(ctx, org.ID, testutil.FirstSemester)
		testutil.AssertNoError(t, err)

		if len(funds) != len(config.DefaultFundSources) {
			t.Fatalf("expected %d funds, got %d", len(config.DefaultFundSources), len(funds))
		}
		for i, f := range funds {
			if f.SourceName != config.DefaultFundSources[i] {
				t.Errorf("fund %d: expected %q, got %q", i, config.DefaultFundSources[i], f.SourceName)
			}
			if f.OrgID != org.ID || f.Period() != testutil.FirstSemester {
				t.Errorf("fund %d has wrong owner or period: %d %v", i, f.OrgID, f.Period())
			}
			testutil.AssertAmount(t, f.Balance, "0")
		}
	})

	t.Run("second_read_does_not_reseed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, nil)
		org := testutil.CreateTestOrganization(t, db)

		first, err := svc.GetPeriodFunds(ctx, org.ID, testutil.FirstSemester)
		testutil.AssertNoError(t, err)
		second, err := svc.GetPeriodFunds(ctx, org.ID, testutil.FirstSemester)
		testutil.AssertNoError(t, err)

		if len(first) != len(second) {
			t.Fatalf("expected %d funds, got %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Errorf("fund %d: id changed from %d to %d", i, first[i].ID, second[i].ID)
			}
		}
	})

	t.Run("existing_funds_returned_as_is", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, nil)
		org := testutil.CreateTestOrganization(t, db)
		testutil.CreateTestFund(t, db, org.ID, "Custom Fund", testutil.FirstSemester, "42.50")

		funds, err := svc.GetPeriodFunds(ctx, org.ID, testutil.FirstSemester)
		testutil.AssertNoError(t, err)

		if len(funds) != 1 || funds[0].SourceName != "Custom Fund" {
			t.Fatalf("expected only the custom fund, got %+v", funds)
		}
		testutil.AssertAmount(t, funds[0].Balance, "42.50")
	})

	t.Run("periods_are_independent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, nil)
		org := testutil.CreateTestOrganization(t, db)
		testutil.CreateTestFund(t, db, org.ID, "Donations", testutil.FirstSemester, "900")

		funds, err := svc.GetPeriodFunds(ctx, org.ID, testutil.SecondSemester)
		testutil.AssertNoError(t, err)

		if len(funds) != len(config.DefaultFundSources) {
			t.Fatalf("expected seeded funds for new period, got %d", len(funds))
		}
		for _, f := range funds {
			testutil.AssertAmount(t, f.Balance, "0")
		}
	})

	t.Run("configured_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, []string{"General Fund", " ", "Events "})
		org := testutil.CreateTestOrganization(t, db)

		funds, err := svc.GetPeriodFunds(ctx, org.ID, testutil.FirstSemester)
		testutil.AssertNoError(t, err)

		if len(funds) != 2 || funds[0].SourceName != "General Fund" || funds[1].SourceName != "Events" {
			t.Fatalf("unexpected funds: %+v", funds)
		}
	})

	t.Run("period_required", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, nil)
		org := testutil.CreateTestOrganization(t, db)

		_, err := svc.GetPeriodFunds(ctx, org.ID, models.Period{Semester: "First Semester", SchoolYear: "  "})
		testutil.AssertAppError(t, err, "PERIOD_REQUIRED")
	})

	t.Run("unknown_organization", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db, nil)

		_, err := svc.GetPeriodFunds(ctx, 4242, testutil.FirstSemester)
		testutil.AssertAppError(t, err, "ORGANIZATION_NOT_FOUND")

		var count int64
		db.Model(&models.Fund{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no funds, got %d", count)
		}
	})
}

func TestGetPeriodFunds_ConcurrentSeeding(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFundService(db, nil)
	org := testutil.CreateTestOrganization(t, db)

	const readers = 4
	var wg sync.WaitGroup
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.GetPeriodFunds(ctx, org.ID, testutil.FirstSemester)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("reader %d: unexpected error: %v", i, err)
		}
	}

	for _, name := range config.DefaultFundSources {
		var count int64
		db.Model(&models.Fund{}).
			Where("org_id = ? AND source_name = ? AND semester = ? AND school_year = ?",
				org.ID, name, testutil.FirstSemester.Semester, testutil.FirstSemester.SchoolYear).
			Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one %q fund, got %d", name, count)
		}
	}
}

func TestSeedWithDB_SkipsExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFundService(db, nil).(*fundService)
	org := testutil.CreateTestOrganization(t, db)
	testutil.CreateTestFund(t, db, org.ID, "Donations", testutil.FirstSemester, "10")

	if err := svc.seedWithDB(db, org.ID, testutil.FirstSemester); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var funds []models.Fund
	db.Where("org_id = ?", org.ID).Find(&funds)
	if len(funds) != len(config.DefaultFundSources) {
		t.Fatalf("expected %d funds, got %d", len(config.DefaultFundSources), len(funds))
	}
	for _, f := range funds {
		if f.SourceName == "Donations" {
			testutil.AssertAmount(t, f.Balance, "10")
		}
	}
}
