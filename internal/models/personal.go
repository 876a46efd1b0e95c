package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

var MaritalStatuses = []MaritalStatus{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed}

// Weekday names accepted in working hours.
type Weekday string

var Weekdays = []Weekday{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type Education struct {
	Degree       string `json:"degree,omitempty"`
	Institution  string `json:"institution,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
	Grade        string `json:"grade,omitempty"`
}

type WorkExperience struct {
	CompanyName      string     `json:"companyName,omitempty"`
	Position         string     `json:"position,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Location         string     `json:"location,omitempty"`
}

// PersonalDetails is free-form data stored as one JSON column.
type PersonalDetails struct {
	DateOfBirth            *time.Time       `json:"dateOfBirth,omitempty"`
	Address                Address          `json:"address"`
	Gender                 Gender           `json:"gender,omitempty"`
	MaritalStatus          MaritalStatus    `json:"maritalStatus,omitempty"`
	Nationality            string           `json:"nationality,omitempty"`
	LanguagesSpoken        []string         `json:"languagesSpoken,omitempty"`
	EducationHistory       []Education      `json:"educationHistory,omitempty"`
	PreviousWorkExperience []WorkExperience `json:"previousWorkExperience,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type Contacts struct {
	Phone            []string         `json:"phone,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

// WorkingHours uses "HH:MM" clock strings.
type WorkingHours struct {
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
	Days      []Weekday `json:"days,omitempty"`
}
