package records

type Category string

const (
	CategoryLabResult    Category = "lab_result"
	CategoryPrescription Category = "prescription"
	CategoryImaging      Category = "imaging"
	CategoryDiagnosis    Category = "diagnosis"
	CategoryVaccination  Category = "vaccination"
	CategoryAllergy      Category = "allergy"
	CategoryNote         Category = "note"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLabResult, CategoryPrescription, CategoryImaging,
		CategoryDiagnosis, CategoryVaccination, CategoryAllergy, CategoryNote:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)
