package server_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"empdir/internal/client"
	"empdir/internal/domain/directory"
	"empdir/internal/server"
)

// The journey drives the real client and record controller against the
// in-process reference server, end to end over HTTP.
func TestDirectoryJourney(t *testing.T) {
	ts := httptest.NewServer(server.NewRouter(server.NewMemStore(), server.Options{}))
	defer ts.Close()

	api := client.New(ts.URL, nil)
	svc := directory.NewService(api)
	ctx := context.Background()

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}
	if len(svc.Records()) != 0 {
		t.Fatalf("expected an empty directory, got %d records", len(svc.Records()))
	}

	hireDate := time.Now().UTC().AddDate(0, 0, -3).Format("2006-01-02")
	draft := directory.Draft{
		FirstName:         "ANA",
		FirstSurname:      "RUIZ",
		SecondSurname:     "MORA",
		IDType:            directory.IDTypeCitizen,
		IDNumber:          "100",
		EmploymentCountry: directory.CountryColombia,
		HireDate:          hireDate,
		Department:        directory.DepartmentOperations,
	}

	created, err := svc.Submit(ctx, draft, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Email != "ana.ruiz@cidenet.com.co" {
		t.Fatalf("email = %q", created.Email)
	}
	if len(svc.Records()) != 1 {
		t.Fatalf("collection has %d records after create, want 1", len(svc.Records()))
	}

	second := draft
	second.FirstName = "LUIS"
	second.FirstSurname = "PEREZ"
	second.IDNumber = "200"
	if _, err := svc.Submit(ctx, second, nil); err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	// Edit through a session, the way the form workflow does.
	var session directory.EditSession
	session.OpenEdit(*created)
	edit := session.Draft()
	edit.Department = directory.DepartmentFinance
	session.SetDraft(edit)

	id, _ := session.TargetID()
	updated, err := svc.Submit(ctx, session.Draft(), &id)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	session.Close()
	if updated.Department != directory.DepartmentFinance {
		t.Fatalf("department = %q", updated.Department)
	}
	if updated.Email != created.Email {
		t.Fatal("email must survive the update")
	}

	// The filtered, paginated view over the reconciled collection.
	page := directory.NewPageState(10)
	view := directory.BuildView(svc.Records(), directory.FilterSet{FirstName: "an"}, &page)
	if view.Filtered != 1 || view.Records[0].FirstName != "ANA" {
		t.Fatalf("unexpected view %+v", view)
	}

	// A failing update leaves the collection as it was.
	missing := int64(99)
	if _, err := svc.Submit(ctx, session.Draft(), &missing); err == nil {
		t.Fatal("expected a 404 failure")
	}
	var reqErr *client.RequestError
	if !errors.As(svc.LastError(), &reqErr) || reqErr.Status != 404 {
		t.Fatalf("lastError = %v, want a 404 RequestError", svc.LastError())
	}
	if len(svc.Records()) != 2 {
		t.Fatalf("failed update must not touch the collection: %d records", len(svc.Records()))
	}

	// Delete reconciles only after the 204.
	if err := svc.Remove(ctx, updated.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(svc.Records()) != 1 {
		t.Fatalf("collection has %d records after delete, want 1", len(svc.Records()))
	}
	if _, found := svc.Find(updated.ID); found {
		t.Fatal("deleted record still present")
	}

	// The server agrees after a full refresh.
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("final refresh failed: %v", err)
	}
	if len(svc.Records()) != 1 || svc.Records()[0].FirstName != "LUIS" {
		t.Fatalf("unexpected final state %+v", svc.Records())
	}
}

func TestJourneyWithAuthentication(t *testing.T) {
	hash, err := server.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	ts := httptest.NewServer(server.NewRouter(server.NewMemStore(), server.Options{
		JWTSecret:    "test-secret",
		AdminEmail:   "admin@test.local",
		AdminPwdHash: hash,
	}))
	defer ts.Close()

	ctx := context.Background()
	token := ""
	api := client.New(ts.URL, func() string { return token })
	svc := directory.NewService(api)

	draft := directory.Draft{
		FirstName:         "ANA",
		FirstSurname:      "RUIZ",
		SecondSurname:     "MORA",
		IDType:            directory.IDTypeCitizen,
		IDNumber:          "100",
		EmploymentCountry: directory.CountryColombia,
		HireDate:          time.Now().UTC().Format("2006-01-02"),
		Department:        directory.DepartmentOperations,
	}

	// Reads are open, writes are not.
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("unauthenticated read failed: %v", err)
	}
	_, err = svc.Submit(ctx, draft, nil)
	var reqErr *client.RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != 401 {
		t.Fatalf("expected a 401 RequestError, got %v", err)
	}

	token, err = api.Login(ctx, "admin@test.local", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.Submit(ctx, draft, nil); err != nil {
		t.Fatalf("authenticated create failed: %v", err)
	}
}
