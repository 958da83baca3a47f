package dto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// LocalDate is a calendar date serialized as "2006-01-02".
type LocalDate time.Time

func (d LocalDate) Time() time.Time {
	return models.DateOf(time.Time(d))
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time().Format(dateLayout) + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a string in %s format", dateLayout)
	}
	t, err := time.Parse(dateLayout, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("invalid date %s, expected %s", data, dateLayout)
	}
	*d = LocalDate(t)
	return nil
}

func toDate(d *LocalDate) datatypes.Date {
	if d == nil {
		return datatypes.Date{}
	}
	return models.NewDate(d.Time())
}

func toDatePtr(d *LocalDate) *datatypes.Date {
	if d == nil {
		return nil
	}
	date := models.NewDate(d.Time())
	return &date
}

func fromDate(d datatypes.Date) LocalDate {
	return LocalDate(models.TimeOf(d))
}

func fromDatePtr(d *datatypes.Date) *LocalDate {
	if d == nil {
		return nil
	}
	date := fromDate(*d)
	return &date
}
