package domain

import (
	"regexp"
	"time"
)

// IDType is the kind of identity document a person record describes.
type IDType string

const (
	IDTypeIdentityCard   IDType = "Buletin de identitate"
	IDTypePassport       IDType = "Pasaport"
	IDTypeDrivingLicence IDType = "Permis de conducere"

	DefaultIDType = IDTypeIdentityCard
)

// Valid reports whether t is a declared document type.
func (t IDType) Valid() bool {
	switch t {
	case IDTypeIdentityCard, IDTypePassport, IDTypeDrivingLicence:
		return true
	default:
		return false
	}
}

// IDTypes lists the accepted document types in display order.
func IDTypes() []IDType {
	return []IDType{IDTypeIdentityCard, IDTypePassport, IDTypeDrivingLicence}
}

var cnpPattern = regexp.MustCompile(`^\d{13}$`)

// ValidCNP checks the shape of a Romanian personal numeric code. The control
// digit is not verified.
func ValidCNP(cnp string) bool {
	return cnpPattern.MatchString(cnp)
}

type Person struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	CNP         string
	BirthDate   Date
	BirthPlace  string
	Nationality string
	IDNumber    string
	IssueDate   Date
	ExpiryDate  Date
	IDType      IDType
	IDPhoto     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Owner is the subset of a user shown next to a person in admin listings.
type Owner struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

type PersonWithOwner struct {
	Person
	Owner Owner
}
