package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *datatypes.Date {
	v := NewDate(date(y, m, d))
	return &v
}

func TestExperience_SetCurrentClearsEndDate(t *testing.T) {
	exp := &Experience{StartDate: NewDate(date(2020, 1, 1)), EndDate: datePtr(2021, 1, 1)}

	exp.SetCurrent(true)

	assert.True(t, exp.Current)
	assert.Nil(t, exp.EndDate, "ongoing position must not keep an end date")
}

func TestExperience_SetCurrentFalseKeepsEndDate(t *testing.T) {
	exp := &Experience{StartDate: NewDate(date(2020, 1, 1)), EndDate: datePtr(2021, 1, 1)}

	exp.SetCurrent(false)

	assert.NotNil(t, exp.EndDate)
}

func TestExperience_BeforeSaveEnforcesCurrent(t *testing.T) {
	exp := &Experience{Current: true, EndDate: datePtr(2021, 1, 1)}

	assert.NoError(t, exp.BeforeSave(nil))
	assert.Nil(t, exp.EndDate)
}

func TestExperience_Duration(t *testing.T) {
	today := date(2024, 5, 15)

	testCases := []struct {
		name     string
		start    time.Time
		end      *datatypes.Date
		current  bool
		expected string
	}{
		{name: "two_and_a_half_years", start: date(2020, 1, 1), end: datePtr(2022, 6, 30), expected: "2 years, 6 months"},
		{name: "exact_year", start: date(2021, 3, 1), end: datePtr(2022, 2, 28), expected: "1 year"},
		{name: "partial_month_rounds_up", start: date(2023, 1, 10), end: datePtr(2023, 2, 20), expected: "2 months"},
		{name: "single_month", start: date(2023, 1, 1), end: datePtr(2023, 1, 31), expected: "1 month"},
		{name: "rounding_overflows_into_year", start: date(2022, 1, 1), end: datePtr(2022, 12, 15), expected: "1 year"},
		{name: "current_uses_today", start: date(2023, 5, 16), current: true, expected: "1 year"},
		{name: "no_end", start: date(2023, 1, 1), expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exp := &Experience{StartDate: NewDate(tc.start), EndDate: tc.end, Current: tc.current}

			assert.Equal(t, tc.expected, exp.Duration(today))
		})
	}
}

func TestExperience_FormattedDateRange(t *testing.T) {
	current := &Experience{StartDate: NewDate(date(2023, 2, 1)), Current: true}
	past := &Experience{StartDate: NewDate(date(2019, 1, 1)), EndDate: datePtr(2021, 3, 31)}

	assert.Equal(t, "Feb 2023 - Present", current.FormattedDateRange())
	assert.Equal(t, "Jan 2019 - Mar 2021", past.FormattedDateRange())
}

func TestExperience_ListsKeepOrder(t *testing.T) {
	exp := &Experience{ID: 7}

	exp.SetAchievements([]string{"Led team of 5 engineers", "Improved velocity by 30%"})
	exp.SetTechnologies([]string{"Go", "PostgreSQL", "Redis"})

	assert.Equal(t, []string{"Led team of 5 engineers", "Improved velocity by 30%"}, exp.AchievementList())
	assert.Equal(t, "Go, PostgreSQL, Redis", exp.TechnologiesAsString())
	assert.Equal(t, 2, exp.Technologies[2].Position)
	assert.Equal(t, uint(7), exp.Achievements[1].ExperienceID)
}

func TestExperience_Validate(t *testing.T) {
	today := date(2024, 5, 15)

	future := &Experience{StartDate: NewDate(date(2024, 6, 1))}
	assert.Contains(t, future.Validate(today), "startDate")

	backwards := &Experience{StartDate: NewDate(date(2022, 1, 1)), EndDate: datePtr(2021, 1, 1)}
	assert.Contains(t, backwards.Validate(today), "endDate")

	sameDay := &Experience{StartDate: NewDate(date(2022, 1, 1)), EndDate: datePtr(2022, 1, 1)}
	assert.Contains(t, sameDay.Validate(today), "endDate", "end date must be strictly after start date")

	valid := &Experience{StartDate: NewDate(date(2022, 1, 1)), EndDate: datePtr(2023, 1, 1)}
	assert.True(t, valid.Validate(today).Empty())
}

func TestEducation_Validate(t *testing.T) {
	sameDay := &Education{StartDate: datePtr(2020, 9, 1), GraduationDate: datePtr(2020, 9, 1)}
	assert.True(t, sameDay.Validate(time.Now()).Empty(), "graduation may fall on the start date")

	backwards := &Education{StartDate: datePtr(2020, 9, 1), GraduationDate: datePtr(2020, 8, 1)}
	assert.Contains(t, backwards.Validate(time.Now()), "graduationDate")

	ongoing := &Education{StartDate: datePtr(2020, 9, 1)}
	assert.True(t, ongoing.Ongoing())

	future := &Education{StartDate: datePtr(2031, 9, 1)}
	assert.Contains(t, future.Validate(date(2030, 1, 1)), "startDate")
}

func TestSkill_Validate(t *testing.T) {
	tooMany := 51
	negative := -1
	ok := 50

	assert.Contains(t, (&Skill{YearsOfExperience: &tooMany}).Validate(time.Now()), "yearsOfExperience")
	assert.Contains(t, (&Skill{YearsOfExperience: &negative}).Validate(time.Now()), "yearsOfExperience")
	assert.True(t, (&Skill{YearsOfExperience: &ok}).Validate(time.Now()).Empty())
	assert.True(t, (&Skill{}).Validate(time.Now()).Empty())
}

func TestCertification_ExpiryFlags(t *testing.T) {
	today := date(2024, 5, 15)

	testCases := []struct {
		name         string
		expiration   *datatypes.Date
		doesNotExp   bool
		wantExpired  bool
		wantExpiring bool
	}{
		{name: "expired_yesterday", expiration: datePtr(2024, 5, 14), wantExpired: true},
		{name: "expires_today", expiration: datePtr(2024, 5, 15), wantExpiring: true},
		{name: "expires_in_30_days", expiration: datePtr(2024, 6, 14), wantExpiring: true},
		{name: "expires_in_exactly_3_months", expiration: datePtr(2024, 8, 15)},
		{name: "expires_far_away", expiration: datePtr(2026, 1, 1)},
		{name: "no_expiration_date", expiration: nil},
		{name: "does_not_expire", expiration: datePtr(2024, 5, 1), doesNotExp: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cert := &Certification{
				DateObtained:   NewDate(date(2020, 1, 1)),
				ExpirationDate: tc.expiration,
				DoesNotExpire:  tc.doesNotExp,
			}

			assert.Equal(t, tc.wantExpired, cert.IsExpired(today))
			assert.Equal(t, tc.wantExpiring, cert.IsExpiringSoon(today))
		})
	}
}

func TestCertification_Validate(t *testing.T) {
	today := date(2024, 5, 15)

	backwards := &Certification{DateObtained: NewDate(date(2023, 1, 1)), ExpirationDate: datePtr(2022, 1, 1)}
	assert.Contains(t, backwards.Validate(today), "expirationDate")

	ignoredWhenPermanent := &Certification{DateObtained: NewDate(date(2023, 1, 1)), ExpirationDate: datePtr(2022, 1, 1), DoesNotExpire: true}
	assert.True(t, ignoredWhenPermanent.Validate(today).Empty())

	future := &Certification{DateObtained: NewDate(date(2025, 1, 1))}
	assert.Contains(t, future.Validate(today), "dateObtained")
}

func TestAddMonths_ClampsDay(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), AddMonths(date(2024, 1, 31), 1))
	assert.Equal(t, date(2023, 2, 28), AddMonths(date(2023, 1, 31), 1))
	assert.Equal(t, date(2025, 1, 15), AddMonths(date(2024, 10, 15), 3))
}

func TestProfile_FullName(t *testing.T) {
	p := &Profile{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", p.FullName())
}
