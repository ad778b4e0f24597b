package models

// Collection names a resource collection. The values match the
// collection names of the existing MongoDB deployment.
type Collection string

const (
	CollectionPersonalInfo   Collection = "personalinfos"
	CollectionWorkExperience Collection = "workexperiences"
	CollectionEducation      Collection = "educations"
	CollectionSkills         Collection = "skills"
	CollectionNotes          Collection = "notes"
)

// Description is the human-readable name used in not-found messages.
func (c Collection) Description() string {
	switch c {
	case CollectionPersonalInfo:
		return "personal info"
	case CollectionWorkExperience:
		return "work experience"
	case CollectionEducation:
		return "education"
	case CollectionSkills:
		return "skills"
	case CollectionNotes:
		return "notes"
	default:
		return string(c)
	}
}

func (c Collection) String() string { return string(c) }
