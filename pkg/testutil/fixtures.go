package testutil

import (
	"fmt"

	"applicant-records/internal/records/models"
	"applicant-records/internal/records/store"
)

// TestApplicantIDs are stable applicant identifiers for tests.
var TestApplicantIDs = struct {
	Ada   string
	Grace string
}{
	Ada:   "applicant-ada",
	Grace: "applicant-grace",
}

// ApplicantBuilder assembles one applicant's records across every collection.
type ApplicantBuilder struct {
	id              string
	personalInfo    []models.PersonalInfo
	workExperiences []models.WorkExperience
	educations      []models.Education
	skills          []models.Skill
	notes           []models.Note
}

// NewApplicantBuilder starts a record set with a single personal info entry.
func NewApplicantBuilder(applicantID string) *ApplicantBuilder {
	return &ApplicantBuilder{
		id: applicantID,
		personalInfo: []models.PersonalInfo{{
			ApplicantID: models.Text(applicantID),
			Name:        "Test Applicant",
			Email:       models.Text(applicantID + "@example.com"),
			City:        "Berlin",
			Country:     "DE",
		}},
	}
}

func (b *ApplicantBuilder) WithName(name string) *ApplicantBuilder {
	b.personalInfo[0].Name = models.Text(name)
	return b
}

func (b *ApplicantBuilder) WithJob(title, company string, details ...string) *ApplicantBuilder {
	b.workExperiences = append(b.workExperiences, models.WorkExperience{
		ApplicantID:  models.Text(b.id),
		ExperienceID: models.Text(fmt.Sprintf("%s-exp-%d", b.id, len(b.workExperiences)+1)),
		JobTitle:     models.Text(title),
		Company:      models.Text(company),
		Details:      models.Texts(details...),
	})
	return b
}

func (b *ApplicantBuilder) WithDegree(degree, institution string) *ApplicantBuilder {
	b.educations = append(b.educations, models.Education{
		ApplicantID: models.Text(b.id),
		EducationID: models.Text(fmt.Sprintf("%s-edu-%d", b.id, len(b.educations)+1)),
		Degree:      models.Text(degree),
		Institution: models.Text(institution),
	})
	return b
}

func (b *ApplicantBuilder) WithSkill(skill, level string) *ApplicantBuilder {
	b.skills = append(b.skills, models.Skill{
		ApplicantID: models.Text(b.id),
		SkillID:     models.Text(fmt.Sprintf("%s-skill-%d", b.id, len(b.skills)+1)),
		Skill:       models.Text(skill),
		Level:       models.Text(level),
	})
	return b
}

func (b *ApplicantBuilder) WithNote(noteID, content string) *ApplicantBuilder {
	b.notes = append(b.notes, models.Note{ApplicantID: b.id, NoteID: noteID, Content: content})
	return b
}

// PersonalInfo returns the built personal info entries.
func (b *ApplicantBuilder) PersonalInfo() []models.PersonalInfo {
	return b.personalInfo
}

// Seed writes the record set into mem.
func (b *ApplicantBuilder) Seed(mem *store.InMemory) {
	mem.PersonalInfo.Seed(b.personalInfo...)
	mem.WorkExperience.Seed(b.workExperiences...)
	mem.Education.Seed(b.educations...)
	mem.Skills.Seed(b.skills...)
	mem.Notes.Seed(b.notes...)
}
