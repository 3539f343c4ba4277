package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"empdir/internal/domain/directory"
)

const (
	emailDomainCO = "cidenet.com.co"
	emailDomainUS = "cidenet.com.us"

	// emailSuffixLimit bounds the collision counter so a pathological data
	// set cannot loop forever.
	emailSuffixLimit = 100000
)

var errEmailExhausted = errors.New("could not allocate a unique email")

// deriveEmail allocates the corporate email for a new record:
// first_name.first_surname@domain, lowercased, surname spaces removed, with
// a numeric suffix when the base address is taken. Emails are assigned once
// at creation and never regenerated.
func deriveEmail(ctx context.Context, store Store, firstName, firstSurname, country string) (string, error) {
	domain := emailDomainCO
	if country == directory.CountryUnitedStates {
		domain = emailDomainUS
	}

	local := strings.ToLower(strings.TrimSpace(firstName)) + "." +
		strings.ReplaceAll(strings.ToLower(strings.TrimSpace(firstSurname)), " ", "")

	base := local + "@" + domain
	taken, err := store.EmailExists(ctx, base, 0)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for counter := 1; counter <= emailSuffixLimit; counter++ {
		candidate := fmt.Sprintf("%s.%d@%s", local, counter, domain)
		taken, err := store.EmailExists(ctx, candidate, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errEmailExhausted
}
