package services

import (
	"strings"
	"time"

	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/validation"
)

// Patch types use pointer fields: nil leaves the stored value untouched.
// Slices replace the stored slice when non-nil.

type AddressPatch struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
}

type PersonalDetailsPatch struct {
	DateOfBirth            *string                 `json:"dateOfBirth"`
	Address                *AddressPatch           `json:"address"`
	Gender                 *models.Gender          `json:"gender"`
	MaritalStatus          *models.MaritalStatus   `json:"maritalStatus"`
	Nationality            *string                 `json:"nationality"`
	LanguagesSpoken        []string                `json:"languagesSpoken"`
	EducationHistory       []models.Education      `json:"educationHistory"`
	PreviousWorkExperience []models.WorkExperience `json:"previousWorkExperience"`
}

type EmergencyContactPatch struct {
	Name         *string `json:"name"`
	Relationship *string `json:"relationship"`
	Phone        *string `json:"phone"`
}

type ContactsPatch struct {
	Phone            []string               `json:"phone"`
	EmergencyContact *EmergencyContactPatch `json:"emergencyContact"`
}

type WorkingHoursPatch struct {
	StartTime *string          `json:"startTime"`
	EndTime   *string          `json:"endTime"`
	Days      []models.Weekday `json:"days"`
}

// EmployeePatch is the admin update of an employee record. Role and
// credential are not part of it.
type EmployeePatch struct {
	Name            *string                `json:"name"`
	Email           *string                `json:"email"`
	DepartmentID    *string                `json:"department"`
	Salary          *float64               `json:"salary"`
	Status          *models.EmployeeStatus `json:"status"`
	Position        *string                `json:"position"`
	PersonalDetails *PersonalDetailsPatch  `json:"personalDetails"`
	Contacts        *ContactsPatch         `json:"contacts"`
	WorkingHours    *WorkingHoursPatch     `json:"workingHours"`
}

// ProfilePatch is the subset of fields an identity may change on its own record.
type ProfilePatch struct {
	Name            *string               `json:"name"`
	PersonalDetails *PersonalDetailsPatch `json:"personalDetails"`
	Contacts        *ContactsPatch        `json:"contacts"`
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func (p *AddressPatch) apply(dst *models.Address) {
	if p == nil {
		return
	}
	set(&dst.Street, p.Street)
	set(&dst.City, p.City)
	set(&dst.State, p.State)
	set(&dst.PostalCode, p.PostalCode)
	set(&dst.Country, p.Country)
}

func (p *PersonalDetailsPatch) apply(dst *models.PersonalDetails, v validation.Violations) {
	if p == nil {
		return
	}
	if p.DateOfBirth != nil {
		if strings.TrimSpace(*p.DateOfBirth) == "" {
			dst.DateOfBirth = nil
		} else if dob := validation.Date("personalDetails.dateOfBirth", *p.DateOfBirth, v); !dob.IsZero() {
			dst.DateOfBirth = &dob
		}
	}
	p.Address.apply(&dst.Address)
	if p.Gender != nil {
		validation.OneOf("personalDetails.gender", *p.Gender, models.Genders, v)
		dst.Gender = *p.Gender
	}
	if p.MaritalStatus != nil {
		validation.OneOf("personalDetails.maritalStatus", *p.MaritalStatus, models.MaritalStatuses, v)
		dst.MaritalStatus = *p.MaritalStatus
	}
	set(&dst.Nationality, p.Nationality)
	if p.LanguagesSpoken != nil {
		dst.LanguagesSpoken = p.LanguagesSpoken
	}
	if p.EducationHistory != nil {
		dst.EducationHistory = p.EducationHistory
	}
	if p.PreviousWorkExperience != nil {
		dst.PreviousWorkExperience = p.PreviousWorkExperience
	}
}

func (p *ContactsPatch) apply(dst *models.Contacts) {
	if p == nil {
		return
	}
	if p.Phone != nil {
		dst.Phone = p.Phone
	}
	if ec := p.EmergencyContact; ec != nil {
		set(&dst.EmergencyContact.Name, ec.Name)
		set(&dst.EmergencyContact.Relationship, ec.Relationship)
		set(&dst.EmergencyContact.Phone, ec.Phone)
	}
}

func (p *WorkingHoursPatch) apply(dst *models.WorkingHours, v validation.Violations) {
	if p == nil {
		return
	}
	set(&dst.StartTime, p.StartTime)
	set(&dst.EndTime, p.EndTime)
	if p.Days != nil {
		dst.Days = p.Days
	}
	validateWorkingHours(*dst, v)
}

func validateWorkingHours(wh models.WorkingHours, v validation.Violations) {
	clock := func(field, value string) {
		if value == "" {
			return
		}
		if _, err := time.Parse("15:04", value); err != nil {
			v.Add(field, "invalid_time")
		}
	}
	clock("workingHours.startTime", wh.StartTime)
	clock("workingHours.endTime", wh.EndTime)
	for _, d := range wh.Days {
		validation.OneOf("workingHours.days", d, models.Weekdays, v)
	}
}

func validatePersonalDetails(pd models.PersonalDetails, v validation.Violations) {
	validation.OneOf("personalDetails.gender", pd.Gender, models.Genders, v)
	validation.OneOf("personalDetails.maritalStatus", pd.MaritalStatus, models.MaritalStatuses, v)
}

// apply merges the patch into e and collects violations. Email and
// department references are checked against the store by the caller.
func (p EmployeePatch) apply(e *models.Employee, foldEmail bool, v validation.Violations) {
	if p.Name != nil {
		validation.Required("name", *p.Name, v)
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		email := normalizeEmail(*p.Email, foldEmail)
		validation.Email("email", email, v)
		e.Email = email
	}
	if p.DepartmentID != nil {
		if id := strings.TrimSpace(*p.DepartmentID); id == "" {
			e.DepartmentID = nil
		} else {
			e.DepartmentID = &id
		}
	}
	if p.Salary != nil {
		validation.NonNegative("salary", *p.Salary, v)
		salary := *p.Salary
		e.Salary = &salary
	}
	if p.Status != nil {
		if *p.Status == "" {
			v.Add("status", "required")
		}
		validation.OneOf("status", *p.Status, models.EmployeeStatuses, v)
		e.Status = *p.Status
	}
	set(&e.Position, p.Position)
	p.PersonalDetails.apply(&e.PersonalDetails, v)
	p.Contacts.apply(&e.Contacts)
	p.WorkingHours.apply(&e.WorkingHours, v)
}

func (p ProfilePatch) apply(e *models.Employee, v validation.Violations) {
	EmployeePatch{Name: p.Name, PersonalDetails: p.PersonalDetails, Contacts: p.Contacts}.apply(e, false, v)
}

func normalizeEmail(email string, fold bool) string {
	email = strings.TrimSpace(email)
	if fold {
		email = strings.ToLower(email)
	}
	return email
}
