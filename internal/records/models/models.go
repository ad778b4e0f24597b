package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document is satisfied by every record type; stores use it to filter by applicant.
type Document interface {
	ApplicantKey() string
}

// PersonalInfo holds an applicant's contact details.
type PersonalInfo struct {
	ID          primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	ApplicantID Text               `json:"applicantId,omitempty" bson:"applicantId,omitempty"`
	Name        Text               `json:"name,omitempty" bson:"name,omitempty"`
	DOB         Text               `json:"dob,omitempty" bson:"dob,omitempty"`
	Address     Text               `json:"address,omitempty" bson:"address,omitempty"`
	PostalCode  Text               `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	City        Text               `json:"city,omitempty" bson:"city,omitempty"`
	Country     Text               `json:"country,omitempty" bson:"country,omitempty"`
	Email       Text               `json:"email,omitempty" bson:"email,omitempty"`
	Phone       Text               `json:"phone,omitempty" bson:"phone,omitempty"`
}

type WorkExperience struct {
	ID           primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	ApplicantID  Text               `json:"applicantId,omitempty" bson:"applicantId,omitempty"`
	ExperienceID Text               `json:"experienceId,omitempty" bson:"experienceId,omitempty"`
	JobTitle     Text               `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
	Company      Text               `json:"company,omitempty" bson:"company,omitempty"`
	Timespan     Text               `json:"timespan,omitempty" bson:"timespan,omitempty"`
	Details      []Text             `json:"details,omitempty" bson:"details,omitempty"`
}

type Education struct {
	ID          primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	ApplicantID Text               `json:"applicantId,omitempty" bson:"applicantId,omitempty"`
	EducationID Text               `json:"educationId,omitempty" bson:"educationId,omitempty"`
	Title       Text               `json:"title,omitempty" bson:"title,omitempty"`
	Institution Text               `json:"institution,omitempty" bson:"institution,omitempty"`
	Timespan    Text               `json:"timespan,omitempty" bson:"timespan,omitempty"`
	Degree      Text               `json:"degree,omitempty" bson:"degree,omitempty"`
	Note        Text               `json:"note,omitempty" bson:"note,omitempty"`
}

type Skill struct {
	ID          primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	ApplicantID Text               `json:"applicantId,omitempty" bson:"applicantId,omitempty"`
	SkillID     Text               `json:"skillId,omitempty" bson:"skillId,omitempty"`
	Skill       Text               `json:"skill,omitempty" bson:"skill,omitempty"`
	Type        Text               `json:"type,omitempty" bson:"type,omitempty"`
	Level       Text               `json:"level,omitempty" bson:"level,omitempty"`
}

// Note is the only record type this service writes.
// Content is always written, even when empty.
type Note struct {
	ID          primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	ApplicantID string             `json:"applicantId" bson:"applicantId"`
	NoteID      string             `json:"noteId" bson:"noteId"`
	Content     string             `json:"content" bson:"content"`
}

func (p PersonalInfo) ApplicantKey() string   { return string(p.ApplicantID) }
func (w WorkExperience) ApplicantKey() string { return string(w.ApplicantID) }
func (e Education) ApplicantKey() string      { return string(e.ApplicantID) }
func (s Skill) ApplicantKey() string          { return string(s.ApplicantID) }
func (n Note) ApplicantKey() string           { return n.ApplicantID }

var (
	_ Document = PersonalInfo{}
	_ Document = WorkExperience{}
	_ Document = Education{}
	_ Document = Skill{}
	_ Document = Note{}
)
