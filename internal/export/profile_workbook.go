package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetProfile        = "Profile"
	SheetExperience     = "Experience"
	SheetEducation      = "Education"
	SheetSkills         = "Skills"
	SheetCertifications = "Certifications"

	dateLayout = "2006-01-02"
)

// ContentType is the media type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProfileWorkbook renders a fully loaded profile as an XLSX workbook with one
// sheet per collection. Derived columns are computed against today.
func ProfileWorkbook(p *models.Profile, today time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetProfile); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetExperience, SheetEducation, SheetSkills, SheetCertifications} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	w := &sheetWriter{f: f}
	w.profile(p)
	w.experiences(p.Experiences, today)
	w.educations(p.Educations)
	w.skills(p.Skills)
	w.certifications(p.Certifications, today)
	if w.err != nil {
		return nil, w.err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the download name for a profile export.
func FileName(p *models.Profile) string {
	name := strings.ToLower(strings.Join(strings.Fields(p.FullName()), "-"))
	return fmt.Sprintf("profile-%d-%s.xlsx", p.ID, name)
}

// sheetWriter remembers the first error so the row helpers stay linear.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) header(sheet string, widths []float64, titles ...any) {
	w.row(sheet, 1, titles...)
	if w.err != nil {
		return
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			w.err = err
			return
		}
	}
}

func (w *sheetWriter) profile(p *models.Profile) {
	w.header(SheetProfile, []float64{16, 60}, "Field", "Value")
	rows := [][2]any{
		{"Name", p.FullName()},
		{"Email", p.Email},
		{"Title", p.Title},
		{"Phone", p.Phone},
		{"Location", p.Location},
		{"LinkedIn", p.LinkedInURL},
		{"GitHub", p.GithubURL},
		{"Website", p.WebsiteURL},
		{"Summary", p.Summary},
		{"Active", p.Active},
	}
	for i, r := range rows {
		w.row(SheetProfile, i+2, r[0], r[1])
	}
}

func (w *sheetWriter) experiences(exps []models.Experience, today time.Time) {
	w.header(SheetExperience, []float64{28, 28, 18, 22, 20, 48, 36},
		"Company", "Job Title", "Location", "Period", "Duration", "Achievements", "Technologies")
	for i := range exps {
		e := &exps[i]
		w.row(SheetExperience, i+2,
			e.CompanyName, e.JobTitle, e.Location,
			e.FormattedDateRange(), e.Duration(today),
			strings.Join(e.AchievementList(), "\n"), e.TechnologiesAsString())
	}
}

func (w *sheetWriter) educations(edus []models.Education) {
	w.header(SheetEducation, []float64{32, 28, 28, 12, 14, 10},
		"Institution", "Degree", "Field of Study", "Start", "Graduation", "Grade")
	for i := range edus {
		e := &edus[i]
		graduation := "Ongoing"
		if !e.Ongoing() {
			graduation = models.TimeOf(*e.GraduationDate).Format(dateLayout)
		}
		w.row(SheetEducation, i+2,
			e.InstitutionName, e.Degree, e.FieldOfStudy,
			formatDatePtr(models.TimePtrOf(e.StartDate)), graduation, e.Grade)
	}
}

func (w *sheetWriter) skills(skills []models.Skill) {
	w.header(SheetSkills, []float64{24, 22, 14, 8, 8}, "Skill", "Category", "Proficiency", "Years", "Primary")
	for i := range skills {
		s := &skills[i]
		proficiency, years := "", any("")
		if s.ProficiencyLevel != nil {
			proficiency = s.ProficiencyLevel.DisplayName()
		}
		if s.YearsOfExperience != nil {
			years = *s.YearsOfExperience
		}
		w.row(SheetSkills, i+2, s.Name, s.Category.DisplayName(), proficiency, years, s.Primary)
	}
}

func (w *sheetWriter) certifications(certs []models.Certification, today time.Time) {
	w.header(SheetCertifications, []float64{30, 26, 12, 12, 14, 40},
		"Certification", "Issuer", "Obtained", "Expires", "Status", "Credential URL")
	for i := range certs {
		c := &certs[i]
		expires := formatDatePtr(models.TimePtrOf(c.ExpirationDate))
		if c.DoesNotExpire {
			expires = "Never"
		}
		w.row(SheetCertifications, i+2,
			c.Name, c.IssuingOrganization,
			models.TimeOf(c.DateObtained).Format(dateLayout), expires,
			certificationStatus(c, today), c.CredentialURL)
	}
}

func certificationStatus(c *models.Certification, today time.Time) string {
	switch {
	case c.IsExpired(today):
		return "Expired"
	case c.IsExpiringSoon(today):
		return "Expiring soon"
	default:
		return "Valid"
	}
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
