package export

import (
	"os"
	"path/filepath"
	"testing"

	"empdir/internal/domain/directory"
)

func TestWriteRosterPDF(t *testing.T) {
	records := []directory.Employee{
		{
			ID: 1, FirstName: "ANA", FirstSurname: "RUIZ",
			IDType: directory.IDTypeCitizen, IDNumber: "100",
			Email: "ana.ruiz@cidenet.com.co", HireDate: "2026-08-20",
			Department: directory.DepartmentOperations, Status: directory.StatusActive,
		},
		{
			ID: 2, FirstName: "LUIS", OtherNames: "FELIPE", FirstSurname: "PEREZ",
			IDType: directory.IDTypePassport, IDNumber: "AB-99",
			Email: "luis.perez@cidenet.com.us", HireDate: "2026-08-21",
			Department: directory.DepartmentFinance, Status: directory.StatusActive,
		},
	}

	path := filepath.Join(t.TempDir(), "roster.pdf")
	if err := WriteRosterPDF(path, "Employee roster", records); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("no file written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("exported file is empty")
	}

	header := make([]byte, 5)
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	if _, err := f.Read(header); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(header) != "%PDF-" {
		t.Fatalf("file does not start with a PDF header: %q", header)
	}
}

func TestWriteRosterPDFEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WriteRosterPDF(path, "Employee roster", nil); err != nil {
		t.Fatalf("export of an empty roster failed: %v", err)
	}
}
