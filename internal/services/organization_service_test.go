package services

import (
	"context"
	"testing"

	"fundledger/internal/testutil"
)

func TestCreateOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrganizationService(db)

		org, err := svc.CreateOrganization(ctx, " CompSoc ", "secret", "Computer Society")
		testutil.AssertNoError(t, err)

		if org.ID == 0 {
			t.Fatal("expected non-zero ID")
		}
		if org.Username != "compsoc" {
			t.Errorf("expected normalized username, got %q", org.Username)
		}
		if org.PasswordHash == "secret" {
			t.Error("password stored in plain text")
		}
		testutil.AssertAmount(t, org.CurrentBalance, "0")
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrganizationService(db)

		_, err := svc.CreateOrganization(ctx, "compsoc", "secret", "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateOrganization(ctx, "COMPSOC", "other", "")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrganizationService(db)

		_, err := svc.CreateOrganization(ctx, "", "secret", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateOrganization(ctx, "compsoc", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOrganizationService(db)
	org := testutil.CreateTestOrganization(t, db)

	t.Run("valid_credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, org.Username, testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if got.ID != org.ID {
			t.Errorf("expected org %d, got %d", org.ID, got.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, org.Username, "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_username", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestGetOrganizationByID(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOrganizationService(db)
	org := testutil.CreateTestOrganization(t, db)

	got, err := svc.GetOrganizationByID(ctx, org.ID)
	testutil.AssertNoError(t, err)
	if got.Username != org.Username {
		t.Errorf("expected %q, got %q", org.Username, got.Username)
	}

	_, err = svc.GetOrganizationByID(ctx, org.ID+100)
	testutil.AssertAppError(t, err, "ORGANIZATION_NOT_FOUND")
}
